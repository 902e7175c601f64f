// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package tmdb is the metadata provider backed by The Movie Database API.

Three layers implement Provider and are stacked by the server:

	Client               - REST calls, auth, language, rate limiting
	CircuitBreakerClient - gobreaker protection and state metrics
	CachedClient         - memory LRU, then badger, then the wrapped provider

API Reference: https://developer.themoviedb.org/reference
*/
package tmdb

import (
	"context"

	"github.com/Phenixis/life-os-sub001/internal/models"
)

// Provider is the set of TMDB lookups the recommendation aggregator needs.
type Provider interface {
	PopularMovies(ctx context.Context, page int) (*models.MediaPage, error)
	PopularTV(ctx context.Context, page int) (*models.MediaPage, error)
	Trending(ctx context.Context, filter models.MediaFilter, window models.TimeWindow) (*models.MediaPage, error)
	MovieRecommendations(ctx context.Context, movieID, page int) (*models.MediaPage, error)
	TVRecommendations(ctx context.Context, tvID, page int) (*models.MediaPage, error)
	DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error)
	DiscoverTV(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error)
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = (*CircuitBreakerClient)(nil)
	_ Provider = (*CachedClient)(nil)
)
