package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/ontology/internal/core/observability/log"
)

// Submitter executes one console line on behalf of a client.
type Submitter interface {
	Submit(ctx context.Context, line string) (string, error)
}

// Server exposes the console over a websocket endpoint.
type Server struct {
	config    Config
	logger    log.Log
	submitter Submitter
	upgrader  websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener

	// Client management
	sessions    sync.Map // map[string]*session
	clientCount int64    // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	serveErr chan error
}

// Config holds server configuration
type Config struct {
	ListenAddr string
	Path       string
	MaxClients int

	// Message settings
	ReadBufferSize  int
	WriteBufferSize int
	MaxMessageSize  int64
	RequestTimeout  time.Duration

	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		Path:            "/console",
		MaxClients:      64,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MaxMessageSize:  64 * 1024,
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("%w: listen address is required", ErrInvalidConfig)
	case c.Path == "" || c.Path[0] != '/':
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidConfig, c.Path)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	case c.MaxClients < 0:
		return fmt.Errorf("%w: max clients must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewServer creates a console server that forwards every request to submitter.
func NewServer(config Config, submitter Submitter, logger log.Log) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	server := &Server{
		config:    config,
		logger:    logger.With(log.String("component", "server")),
		submitter: submitter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
		},
		serveErr: make(chan error, 1),
	}

	server.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.String("path", config.Path),
		log.Int("max_clients", config.MaxClients))

	return server, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleConsole)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start binds the listener and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %v", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.RequestTimeout,
	}

	go func() {
		err := s.httpServer.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("Serve failed", log.Error(err))
		}
		s.serveErr <- err
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr is the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP server down and closes every console session.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	err := s.httpServer.Shutdown(ctx)
	s.sessions.Range(func(_, value any) bool {
		if sess, ok := value.(*session); ok {
			sess.close()
		}
		return true
	})
	if serveErr := <-s.serveErr; err == nil {
		err = serveErr
	}

	s.logger.Info("Server stopped", log.Error(err))
	return err
}

// Run starts the server and stops it once ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Stop(stopCtx)
}

// Close stops the server if needed and prevents restarts.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}

	s.logger.Info("Closing server")

	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}
	return nil
}

func (s *Server) ClientCount() int64 {
	return atomic.LoadInt64(&s.clientCount)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
