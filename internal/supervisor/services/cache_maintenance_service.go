// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package services

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/Phenixis/life-os-sub001/internal/cache"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
)

// MemorySweeper drops expired entries from an in-memory cache.
// *tmdb.CachedClient implements it.
type MemorySweeper interface {
	CleanupExpired() int
}

// CacheMaintenanceConfig controls the maintenance cadence.
type CacheMaintenanceConfig struct {
	Interval     time.Duration
	DiscardRatio float64
}

// CacheMaintenanceService periodically sweeps the memory tier and runs
// badger value-log GC on the disk tier. Either tier may be nil.
type CacheMaintenanceService struct {
	db     *badger.DB
	memory MemorySweeper
	config CacheMaintenanceConfig
	logger zerolog.Logger
	name   string
}

// NewCacheMaintenanceService creates the service. Interval defaults to 10
// minutes and DiscardRatio to 0.5.
func NewCacheMaintenanceService(db *badger.DB, memory MemorySweeper, cfg CacheMaintenanceConfig) *CacheMaintenanceService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.DiscardRatio <= 0 || cfg.DiscardRatio >= 1 {
		cfg.DiscardRatio = 0.5
	}
	return &CacheMaintenanceService{
		db:     db,
		memory: memory,
		config: cfg,
		logger: logging.WithComponent("cache-maintenance"),
		name:   "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("disk_tier", s.db != nil).
		Msg("Cache maintenance started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runOnce(); err != nil {
				// Returning hands the failure to the supervisor, which
				// restarts the loop with backoff.
				return err
			}
		}
	}
}

// runOnce performs one maintenance pass.
func (s *CacheMaintenanceService) runOnce() error {
	if s.memory != nil {
		if removed := s.memory.CleanupExpired(); removed > 0 {
			s.logger.Debug().Int("removed", removed).Msg("Swept expired memory cache entries")
		}
	}

	if s.db == nil {
		return nil
	}
	start := time.Now()
	rewrites, err := cache.RunGC(s.db, s.config.DiscardRatio)
	if err != nil {
		metrics.RecordCacheGC("error")
		s.logger.Error().Err(err).Msg("Badger value log GC failed")
		return err
	}
	metrics.RecordCacheGC("success")
	if rewrites > 0 {
		s.logger.Info().
			Int("rewrites", rewrites).
			Dur("duration", time.Since(start)).
			Msg("Badger value log GC completed")
	}
	return nil
}

func (s *CacheMaintenanceService) String() string {
	return s.name
}
