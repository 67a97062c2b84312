package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/pkg/lifecycle"
)

// httpServer wraps net/http with lifecycle-driven shutdown.
type httpServer struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		logger:          logger.With("system", "http"),
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

// Start launches the listener and registers a shutdown hook that drains
// in-flight requests within the configured timeout.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	go s.serve()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.stop()
	})

	return nil
}

func (s *httpServer) serve() {
	s.logger.Info("server listening", "addr", s.http.Addr)

	err := s.http.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("server error", "error", err)
	}
}

func (s *httpServer) stop() {
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
		return
	}

	s.logger.Info("server shutdown complete")
}
