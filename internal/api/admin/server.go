package admin

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Server wraps the admin HTTP mux, grounded on the teacher's
// internal/adapters/http.Server shape (httpServer/logger, Start/
// Shutdown).
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds a Server serving router on bindAddress.
func NewServer(bindAddress string, router http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{Addr: bindAddress, Handler: router},
		logger:     logger,
	}
}

// Start begins serving in the background; ListenAndServe errors other
// than a clean shutdown are logged rather than returned, matching the
// teacher's fire-and-forget Start shape.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting admin HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("admin HTTP server error", zap.Error(err))
		}
	}()
}

// Shutdown gracefully stops the admin HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down admin HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin HTTP server shutdown error: %w", err)
	}
	s.logger.Info("admin HTTP server stopped")
	return nil
}
