package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/ontology/internal/console"
	"github.com/zeusync/ontology/internal/core/ontology"
)

type echoSubmitter struct{}

func (echoSubmitter) Submit(_ context.Context, line string) (string, error) {
	if line == "fail" {
		return "", errors.New("boom")
	}
	return "echo " + line, nil
}

func newTestServer(t *testing.T, submitter Submitter, mutate func(*Config)) (*Server, string) {
	t.Helper()
	cfg := DefaultServerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	srv, err := NewServer(cfg, submitter, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)
	return srv, "ws" + strings.TrimPrefix(hs.URL, "http") + cfg.Path
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("Could not send request: %v", err)
	}
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("Could not read response: %v", err)
	}
	return resp
}

func TestConsoleRoundTrip(t *testing.T) {
	_, url := newTestServer(t, echoSubmitter{}, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	defer conn.Close()

	resp := roundTrip(t, conn, Request{ID: "1", Command: "count"})
	if resp.ID != "1" || resp.Output != "echo count" || resp.Error != "" {
		t.Errorf("Unexpected response %+v", resp)
	}

	resp = roundTrip(t, conn, Request{ID: "2", Command: "fail"})
	if resp.Error != "boom" || resp.Output != "" {
		t.Errorf("Expected error response, got %+v", resp)
	}

	resp = roundTrip(t, conn, Request{ID: "3"})
	if resp.Error != ErrInvalidMessage.Error() {
		t.Errorf("Expected invalid message, got %+v", resp)
	}
}

func TestConsoleAgainstUniverse(t *testing.T) {
	u := ontology.NewUniverse()
	t.Cleanup(u.Shutdown)
	if _, err := u.Factory().CreateScene(ontology.SceneStruct{GlobalName: "meadow"}); err != nil {
		t.Fatalf("CreateScene: %v", err)
	}

	d := console.NewDispatcher(console.NewInterpreter(u, nil), 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	_, url := newTestServer(t, d, nil)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	defer conn.Close()

	if resp := roundTrip(t, conn, Request{Command: "names"}); resp.Output != "meadow" {
		t.Errorf("Expected meadow, got %+v", resp)
	}
	if resp := roundTrip(t, conn, Request{Command: "destroy /"}); !strings.Contains(resp.Error, ontology.ErrNotErasable.Error()) {
		t.Errorf("Expected not erasable, got %+v", resp)
	}
	if resp := roundTrip(t, conn, Request{Command: "destroy meadow"}); resp.Output != "destroyed 1" {
		t.Errorf("Expected destroyed 1, got %+v", resp)
	}
	if resp := roundTrip(t, conn, Request{Command: "count"}); resp.Output != "1" {
		t.Errorf("Expected 1, got %+v", resp)
	}
}

func TestConsoleMaxClients(t *testing.T) {
	srv, url := newTestServer(t, echoSubmitter{}, func(c *Config) { c.MaxClients = 1 })

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	defer first.Close()
	roundTrip(t, first, Request{Command: "ping"})
	if srv.ClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", srv.ClientCount())
	}

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("Expected second client to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %v", resp)
	}
}

func TestServerLifecycle(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	srv, err := NewServer(cfg, echoSubmitter{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := srv.Start(ctx); !errors.Is(err, ErrServerAlreadyRunning) {
		t.Errorf("Expected ErrServerAlreadyRunning, got %v", err)
	}

	url := "ws://" + srv.Addr().String() + cfg.Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Could not connect: %v", err)
	}
	roundTrip(t, conn, Request{Command: "ping"})

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := srv.Stop(stopCtx); !errors.Is(err, ErrServerNotRunning) {
		t.Errorf("Expected ErrServerNotRunning, got %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Errorf("Expected session to be closed by Stop")
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := srv.Start(ctx); !errors.Is(err, ErrServerClosed) {
		t.Errorf("Expected ErrServerClosed, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Path = "console"
	if _, err := NewServer(cfg, echoSubmitter{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
