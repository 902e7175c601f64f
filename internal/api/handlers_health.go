// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Phenixis/life-os-sub001/internal/tmdb"
)

// readyPingTimeout bounds the database ping in the readiness probe.
const readyPingTimeout = 2 * time.Second

type liveResponse struct {
	Alive         bool    `json:"alive"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type readyResponse struct {
	Status         string           `json:"status"`
	Database       bool             `json:"database"`
	TMDBConfigured bool             `json:"tmdb_configured"`
	CircuitBreaker string           `json:"circuit_breaker"`
	Cache          *tmdb.CacheStats `json:"cache,omitempty"`
}

// HealthLive handles the liveness probe. It answers 200 whenever the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, liveResponse{
		Alive:         true,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles the readiness probe. The service is ready when the
// library database answers and a TMDB credential is configured; an open
// circuit breaker is reported but does not fail the probe, since
// recommendations degrade instead of failing while it is open. Cache
// occupancy is included when the metadata cache is enabled. Once the server
// starts draining the probe reports "draining" with 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
	defer cancel()

	dbOK := h.library != nil && h.library.Ping(ctx) == nil

	breaker := "disabled"
	if h.breaker != nil {
		breaker = h.breaker.State()
	}

	resp := readyResponse{
		Status:         "ready",
		Database:       dbOK,
		TMDBConfigured: h.tmdbConfigured,
		CircuitBreaker: breaker,
	}
	if h.cache != nil {
		stats := h.cache.Stats()
		resp.Cache = &stats
	}
	status := http.StatusOK
	switch {
	case h.draining.Load():
		resp.Status = "draining"
		status = http.StatusServiceUnavailable
	case !dbOK || !h.tmdbConfigured:
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
