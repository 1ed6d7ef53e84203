package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Server wraps http.Server with the timeouts the admin endpoints need.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a server for addr. It does not listen until ListenAndServe
// or Serve is called.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		handler: handler,
	}
}

// ListenAndServe listens on the configured address. It returns nil after
// Shutdown instead of http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return ignoreClosed(s.httpServer.ListenAndServe())
}

// Serve accepts connections on ln. It returns nil after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return ignoreClosed(s.httpServer.Serve(ln))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
