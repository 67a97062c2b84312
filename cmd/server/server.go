package main

import (
	"context"
	"time"

	"github.com/counterfoil/teller/internal/api"
	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/infrastructure"
)

// Server ties the shared infrastructure to the HTTP front end.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

// NewServer builds the infrastructure, assembles the API handler on top
// of it, and prepares the HTTP server. Nothing listens until Start.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	handler, err := api.New(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start registers lifecycle hooks for every subsystem and opens the
// listener.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go s.announceReady()

	return nil
}

func (s *Server) announceReady() {
	s.infra.Lifecycle.WaitForStartup()
	s.infra.Logger.Info("all subsystems ready")
}

// Shutdown drains every subsystem through the lifecycle coordinator.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
