package net

import (
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"scenecast/server/internal/assets"
)

type stubHub struct {
	mu           sync.Mutex
	subscribes   int
	disconnects  int
	lastConn     *websocket.Conn
	lastConnName string
}

func (s *stubHub) Subscribe(conn *websocket.Conn) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribes++
	s.lastConn = conn
	s.lastConnName = "conn-1"
	return s.lastConnName
}

func (s *stubHub) Disconnect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnects++
}

func (s *stubHub) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribes - s.disconnects
}

func newTestServer(t *testing.T) (*httptest.Server, *stubHub) {
	t.Helper()
	hub := &stubHub{}
	handler := NewHTTPHandler(hub, HTTPHandlerConfig{Assets: assets.FS})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, hub
}

func TestServesViewerAssets(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/index.html", "/main.min.js", "/favicon.ico"} {
		resp, err := nethttp.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("reading %s failed: %v", path, err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("GET %s returned status %d", path, resp.StatusCode)
		}
		if len(body) == 0 {
			t.Fatalf("GET %s returned an empty body", path)
		}
	}
}

func TestUnknownPathReturnsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := nethttp.Get(srv.URL + "/no/such/asset")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealthAndDiagnostics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := nethttp.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("expected ok, got %q", body)
	}

	resp, err = nethttp.Get(srv.URL + "/diagnostics")
	if err != nil {
		t.Fatalf("GET /diagnostics failed: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected diagnostics payload %q", body)
	}
}

func TestWebsocketUpgradeSubscribesConnection(t *testing.T) {
	srv, hub := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/", nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	waitFor(t, func() bool { return hub.ConnectionCount() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.ConnectionCount() == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not reached before deadline")
}
