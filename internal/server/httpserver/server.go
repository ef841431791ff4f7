package httpserver

import (
	"context"
	"net/http"

	"github.com/flexnotes/flexnotes-go/internal/server/config"
)

// Server wraps the standard library HTTP server with the configured
// timeouts.
type Server struct {
	httpServer *http.Server
}

// New creates an HTTP server for the given handler.
func New(cfg config.HTTPConfig, h http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      h,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe starts the server. It blocks until the server stops.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
