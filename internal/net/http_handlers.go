// Package net wires the plain request/response channel and the socket
// upgrade endpoint onto one listener. Viewers connect with a websocket
// upgrade at the root path; plain GETs receive the viewer asset bundle.
package net

import (
	"encoding/json"
	"io/fs"
	"log"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"
)

// ConnectionHub accepts upgraded viewer connections and tracks their
// lifecycle. The concrete hub lives in the root package.
type ConnectionHub interface {
	Subscribe(conn *websocket.Conn) string
	Disconnect(id string)
	ConnectionCount() int
}

type HTTPHandlerConfig struct {
	Assets fs.FS
	Logger *log.Logger
}

// NewHTTPHandler builds the instance's single handler: static assets,
// health and diagnostics endpoints, and websocket upgrades at the root.
func NewHTTPHandler(hub ConnectionHub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status      string `json:"status"`
			ServerTime  int64  `json:"serverTime"`
			Connections int    `json:"connections"`
		}{
			Status:      "ok",
			ServerTime:  time.Now().UnixMilli(),
			Connections: hub.ConnectionCount(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			nethttp.Error(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/main.min.js", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.ServeFileFS(w, r, cfg.Assets, "main.min.js")
	})

	mux.HandleFunc("/favicon.ico", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.ServeFileFS(w, r, cfg.Assets, "favicon.ico")
	})

	mux.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				logger.Printf("upgrade failed: %v", err)
				return
			}
			serveViewer(hub, conn)
			return
		}
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			nethttp.NotFound(w, r)
			return
		}
		nethttp.ServeFileFS(w, r, cfg.Assets, "index.html")
	})

	return mux
}

// serveViewer registers the connection and then blocks reading it. Viewers
// send nothing meaningful; the read loop exists to notice the close.
func serveViewer(hub ConnectionHub, conn *websocket.Conn) {
	id := hub.Subscribe(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Disconnect(id)
			return
		}
	}
}
