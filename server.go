// Package server implements a scene-graph synchronization server: a
// path-addressed tree of visualization primitives mutated by the embedding
// application, with every mutation persisted for replay and streamed live to
// any number of connected viewers. Multiple instances are fully isolated and
// may coexist in one process.
package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	nethttp "net/http"
	"sync"

	servernet "scenecast/server/internal/net"
)

// Server is one instance: one scene tree, one connection hub, one bound
// port.
type Server struct {
	logger     *log.Logger
	hub        *Hub
	httpServer *nethttp.Server
	listener   net.Listener
	port       int
	closeOnce  sync.Once
	closeErr   error
}

// New binds a port per cfg and starts serving. Construction errors (an
// explicit port already bound, or the automatic range exhausted) are fatal
// and reported synchronously; after New returns the producer never blocks on
// network activity.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	viewerFS, err := resolveViewerAssets(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}

	ln, port, err := bindListener(cfg.Port)
	if err != nil {
		return nil, err
	}

	hub := newHub(cfg.QueueSize, logger)
	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		Assets: viewerFS,
		Logger: logger,
	})

	s := &Server{
		logger:     logger,
		hub:        hub,
		httpServer: &nethttp.Server{Handler: handler},
		listener:   ln,
		port:       port,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Printf("server stopped: %v", err)
		}
	}()

	logger.Printf("scenecast listening on %s", s.WebURL())
	return s, nil
}

// Port returns the bound port.
func (s *Server) Port() int { return s.port }

// WebURL returns the plain request/response address of this instance.
func (s *Server) WebURL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// WSURL returns the socket-channel address of this instance.
func (s *Server) WSURL() string {
	return fmt.Sprintf("ws://localhost:%d", s.port)
}

// ConnectionCount reports the number of open viewer connections.
func (s *Server) ConnectionCount() int { return s.hub.ConnectionCount() }

// Close releases the port and closes every live connection. Producer calls
// already in flight complete normally; their effects are simply unobserved.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.httpServer.Close()
		// The serve goroutine may not have picked up the listener yet, in
		// which case httpServer.Close never sees it. Close it directly so
		// the port is released no matter when Close runs.
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) && s.closeErr == nil {
			s.closeErr = err
		}
		s.hub.CloseAll()
	})
	return s.closeErr
}
