// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Phenixis/life-os-sub001/internal/models"
	"github.com/Phenixis/life-os-sub001/internal/recommend"
	"github.com/Phenixis/life-os-sub001/internal/tmdb"
)

// Recommender produces recommendations. *recommend.Aggregator implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID string, page int, filter models.MediaFilter) (*recommend.Result, error)
}

// LibraryStore is the per-user library. *library.Store implements it.
type LibraryStore interface {
	Ping(ctx context.Context) error
	ListItems(ctx context.Context, userID string, status models.LibraryStatus) ([]models.LibraryItem, error)
	UpsertItem(ctx context.Context, userID string, item *models.LibraryItem) error
	RemoveItem(ctx context.Context, userID string, mediaType models.MediaType, externalID int) error
	ListNotInterested(ctx context.Context, userID string) ([]models.NotInterestedItem, error)
	MarkNotInterested(ctx context.Context, userID string, mediaType models.MediaType, externalID int) error
	ClearNotInterested(ctx context.Context, userID string, mediaType models.MediaType, externalID int) error
}

// BreakerStater reports the metadata provider's circuit breaker state.
type BreakerStater interface {
	State() string
}

// CacheStater reports metadata cache occupancy. *tmdb.CachedClient
// implements it.
type CacheStater interface {
	Stats() tmdb.CacheStats
}

// HandlerDeps are the handler's collaborators. Breaker and Cache may be nil
// when the circuit breaker or the metadata cache is disabled.
type HandlerDeps struct {
	Recommender    Recommender
	Library        LibraryStore
	Breaker        BreakerStater
	Cache          CacheStater
	TMDBConfigured bool
	RequestTimeout time.Duration
}

// Handler serves the API routes.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendations
//   - handlers_library.go: library and not-interested lists
//   - handlers_health.go: probes
type Handler struct {
	recommender    Recommender
	library        LibraryStore
	breaker        BreakerStater
	cache          CacheStater
	tmdbConfigured bool
	requestTimeout time.Duration
	startTime      time.Time
	draining       atomic.Bool
}

// NewHandler creates a handler.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		recommender:    deps.Recommender,
		library:        deps.Library,
		breaker:        deps.Breaker,
		cache:          deps.Cache,
		tmdbConfigured: deps.TMDBConfigured,
		requestTimeout: deps.RequestTimeout,
		startTime:      time.Now(),
	}
}

// SetDraining makes the readiness probe fail from now on, so load balancers
// stop routing here while the server drains.
func (h *Handler) SetDraining() {
	h.draining.Store(true)
}

// withTimeout bounds a request by the configured timeout, if any.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}
