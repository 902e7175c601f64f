// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phenixis/life-os-sub001/internal/logging"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServiceConfig configures HTTPServerService.
type HTTPServiceConfig struct {
	// Addr is only used in log lines.
	Addr string
	// ShutdownTimeout bounds connection draining. Defaults to 10s.
	ShutdownTimeout time.Duration
	// BeforeShutdown runs when the service is asked to stop, before
	// connections are drained. The API handler uses it to fail readiness.
	BeforeShutdown func()
}

// HTTPServerService serves the API under the api layer of the supervisor
// tree. A listen failure is returned so the supervisor restarts it; context
// cancellation drains in-flight requests first.
type HTTPServerService struct {
	server HTTPServer
	config HTTPServiceConfig
	logger zerolog.Logger
}

// NewHTTPServerService wraps server.
func NewHTTPServerService(server HTTPServer, cfg HTTPServiceConfig) *HTTPServerService {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server: server,
		config: cfg,
		logger: logging.WithComponent("http"),
	}
}

// Serve implements suture.Service.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.server.ListenAndServe() }()
	s.logger.Info().Str("addr", s.config.Addr).Msg("HTTP server listening")

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server on %s: %w", s.config.Addr, err)
	case <-ctx.Done():
	}

	if s.config.BeforeShutdown != nil {
		s.config.BeforeShutdown()
	}

	// ctx is already canceled; draining needs its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info().Dur("timeout", s.config.ShutdownTimeout).Msg("Draining HTTP connections")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	<-errCh
	return ctx.Err()
}

func (s *HTTPServerService) String() string {
	return "http-server"
}
