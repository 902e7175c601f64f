// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package main

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/Phenixis/life-os-sub001/internal/cache"
	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/tmdb"
)

// metadataStack is the assembled TMDB provider chain. provider is nil when
// no credential is configured; breaker and cached are nil when disabled.
type metadataStack struct {
	provider tmdb.Provider
	breaker  *tmdb.CircuitBreakerClient
	cached   *tmdb.CachedClient
	cacheDB  *badger.DB
}

// Close releases the disk cache, if one was opened.
func (s *metadataStack) Close() error {
	if s.cacheDB == nil {
		return nil
	}
	return s.cacheDB.Close()
}

// buildMetadataStack layers client, circuit breaker and cache:
//
//	CachedClient -> CircuitBreakerClient -> Client
//
// so cache hits never count against the breaker.
func buildMetadataStack(cfg *config.Config) (*metadataStack, error) {
	stack := &metadataStack{}

	client, err := tmdb.NewClient(&cfg.TMDB)
	if errors.Is(err, tmdb.ErrMissingAPIKey) {
		logging.Warn().Msg("TMDB_API_KEY is not set; recommendations are disabled until it is configured")
		return stack, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDB client: %w", err)
	}

	var provider tmdb.Provider = client
	if cfg.TMDB.CircuitBreaker.Enabled {
		stack.breaker = tmdb.NewCircuitBreakerClient(provider, &cfg.TMDB.CircuitBreaker)
		provider = stack.breaker
	}

	if cfg.Cache.Enabled {
		var disk *cache.DiskStore
		if cfg.Cache.BadgerInMemory || cfg.Cache.BadgerPath != "" {
			db, err := cache.OpenBadger(cache.DiskOptions{
				Path:     cfg.Cache.BadgerPath,
				InMemory: cfg.Cache.BadgerInMemory,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to open metadata cache: %w", err)
			}
			stack.cacheDB = db
			disk = cache.NewDiskStore(db, "tmdb:")
		}
		stack.cached = tmdb.NewCachedClient(provider, &cfg.Cache, disk)
		provider = stack.cached
	}

	stack.provider = provider
	logging.Info().
		Bool("circuit_breaker", stack.breaker != nil).
		Bool("memory_cache", stack.cached != nil).
		Bool("disk_cache", stack.cacheDB != nil).
		Msg("TMDB provider configured")
	return stack, nil
}
