// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Phenixis/life-os-sub001/internal/cache"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) CleanupExpired() int {
	s.calls.Add(1)
	return 1
}

func TestCacheMaintenance_Defaults(t *testing.T) {
	svc := NewCacheMaintenanceService(nil, nil, CacheMaintenanceConfig{DiscardRatio: 1.5})
	if svc.config.Interval != 10*time.Minute {
		t.Errorf("interval = %v", svc.config.Interval)
	}
	if svc.config.DiscardRatio != 0.5 {
		t.Errorf("discard ratio = %v", svc.config.DiscardRatio)
	}
	if err := svc.runOnce(); err != nil {
		t.Errorf("runOnce with no tiers = %v", err)
	}
}

func TestCacheMaintenance_RunsPeriodically(t *testing.T) {
	db, err := cache.OpenBadger(cache.DiskOptions{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sweeper := &countingSweeper{}
	svc := NewCacheMaintenanceService(db, sweeper, CacheMaintenanceConfig{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if sweeper.calls.Load() < 2 {
		t.Errorf("sweeps = %d, want at least 2", sweeper.calls.Load())
	}
}

func TestCacheMaintenance_DiskTier(t *testing.T) {
	db, err := cache.OpenBadger(cache.DiskOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := cache.NewDiskStore(db, "tmdb:")
	if err := store.Set("k", map[string]int{"v": 1}, time.Hour); err != nil {
		t.Fatal(err)
	}

	svc := NewCacheMaintenanceService(db, nil, CacheMaintenanceConfig{Interval: time.Minute})
	if err := svc.runOnce(); err != nil {
		t.Fatalf("runOnce() = %v", err)
	}
	var got map[string]int
	if err := store.Get("k", &got); err != nil || got["v"] != 1 {
		t.Errorf("entry lost after GC: %v %v", got, err)
	}
}

func TestCacheMaintenance_RecordsGCPasses(t *testing.T) {
	db, err := cache.OpenBadger(cache.DiskOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewCacheMaintenanceService(db, nil, CacheMaintenanceConfig{Interval: time.Minute})
	success := metrics.CacheGCRuns.WithLabelValues("success")
	before := testutil.ToFloat64(success)
	for i := 0; i < 3; i++ {
		if err := svc.runOnce(); err != nil {
			t.Fatalf("runOnce() = %v", err)
		}
	}
	if got := testutil.ToFloat64(success) - before; got != 3 {
		t.Errorf("successful GC passes recorded = %v, want 3", got)
	}
}
