// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Phenixis/life-os-sub001/internal/api"
	"github.com/Phenixis/life-os-sub001/internal/auth"
	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/library"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/recommend"
	"github.com/Phenixis/life-os-sub001/internal/supervisor"
	"github.com/Phenixis/life-os-sub001/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Life OS recommendation service")

	store, err := library.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open library store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing library store")
		}
	}()

	stack, err := buildMetadataStack(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata cache")
		}
	}()

	aggregator := recommend.NewAggregator(store, stack.provider)

	authMiddleware, err := newAuthMiddleware(&cfg.Security)
	if err != nil {
		return err
	}

	deps := api.HandlerDeps{
		Recommender:    aggregator,
		Library:        store,
		TMDBConfigured: aggregator.Configured(),
		RequestTimeout: cfg.Server.RequestTimeout,
	}
	// Keep Breaker and Cache nil interfaces rather than typed nil pointers.
	if stack.breaker != nil {
		deps.Breaker = stack.breaker
	}
	if stack.cached != nil {
		deps.Cache = stack.cached
	}
	handler := api.NewHandler(deps)
	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)),
		authMiddleware,
	)

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	if stack.cached != nil {
		maintenance := services.NewCacheMaintenanceService(stack.cacheDB, stack.cached, services.CacheMaintenanceConfig{
			Interval:     cfg.Cache.GCInterval,
			DiscardRatio: cfg.Cache.GCDiscardRatio,
		})
		tree.AddDataService(maintenance)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.HTTPServiceConfig{
		Addr:            server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		BeforeShutdown:  handler.SetDraining,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree failed: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	return nil
}

func newAuthMiddleware(cfg *config.SecurityConfig) (*auth.Middleware, error) {
	if cfg.AuthMode == auth.AuthModeNone {
		logging.Warn().Msg("AUTH_MODE=none: caller identity is taken from the X-User-ID header without verification. Development only.")
		return auth.NewMiddleware(nil, auth.AuthModeNone), nil
	}

	verifier, err := auth.NewJWTVerifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT verifier: %w", err)
	}
	logging.Info().Msg("JWT authentication enabled")
	return auth.NewMiddleware(verifier, auth.AuthModeJWT), nil
}
