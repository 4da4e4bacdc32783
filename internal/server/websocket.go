package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

// Request is one console line sent by a client.
type Request struct {
	ID      string `json:"id,omitempty"`
	Command string `json:"command"`
}

// Response answers the request with the same ID.
type Response struct {
	ID     string `json:"id,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

type session struct {
	id        string
	conn      *websocket.Conn
	closeOnce sync.Once
	requests  int64 // atomic
}

func (c *session) close() {
	c.closeOnce.Do(func() { _ = c.conn.Close() })
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	if limit := s.config.MaxClients; limit > 0 && atomic.LoadInt64(&s.clientCount) >= int64(limit) {
		s.logger.Warn("Client rejected", log.Error(ErrMaxClientsReached))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Upgrade failed", log.Error(err))
		return
	}
	if s.config.MaxMessageSize > 0 {
		conn.SetReadLimit(s.config.MaxMessageSize)
	}

	sess := &session{id: uuid.NewString(), conn: conn}
	s.sessions.Store(sess.id, sess)
	atomic.AddInt64(&s.clientCount, 1)
	logger := s.logger.With(log.String("session", sess.id), log.String("remote", r.RemoteAddr))
	logger.Info("Client connected")

	defer func() {
		s.sessions.Delete(sess.id)
		atomic.AddInt64(&s.clientCount, -1)
		sess.close()
		logger.Info("Client disconnected", log.Int64("requests", atomic.LoadInt64(&sess.requests)))
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) && !errors.Is(err, websocket.ErrCloseSent) {
				logger.Debug("Read failed", log.Error(err))
			}
			return
		}
		atomic.AddInt64(&sess.requests, 1)

		resp := s.serve(r.Context(), req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Debug("Write failed", log.Error(err))
			return
		}
	}
}

func (s *Server) serve(parent context.Context, req Request) Response {
	resp := Response{ID: req.ID}
	if req.Command == "" {
		resp.Error = ErrInvalidMessage.Error()
		return resp
	}

	ctx, cancel := context.WithTimeout(parent, s.config.RequestTimeout)
	defer cancel()

	out, err := s.submitter.Submit(ctx, req.Command)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Output = out
	return resp
}
