package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsnclaws/intake-api/internal/auth"
	"github.com/pawsnclaws/intake-api/internal/config"
)

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	handlers *Handlers
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates the API server. authManager may be nil, in which case
// the admin routes are not mounted.
func NewServer(cfg config.ServerConfig, handlers *Handlers, health *HealthChecker, authManager *auth.Manager) *Server {
	return &Server{
		config:   cfg,
		handlers: handlers,
		router:   SetupRoutes(handlers, health, authManager, cfg.AllowedOrigins),
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout(),
		WriteTimeout: s.config.WriteTimeout(),
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}
