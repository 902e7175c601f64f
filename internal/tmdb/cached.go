// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package tmdb

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phenixis/life-os-sub001/internal/cache"
	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// CachedClient serves provider pages from an in-memory LRU, then from the
// disk store, and only then from the wrapped provider. Only successful
// responses are cached.
type CachedClient struct {
	next        Provider
	memory      *cache.LRU[*models.MediaPage]
	disk        *cache.DiskStore
	ttl         time.Duration
	trendingTTL time.Duration
	logger      zerolog.Logger
}

// NewCachedClient wraps next. disk may be nil to run with the memory tier only.
func NewCachedClient(next Provider, cfg *config.CacheConfig, disk *cache.DiskStore) *CachedClient {
	return &CachedClient{
		next:        next,
		memory:      cache.NewLRU[*models.MediaPage](cfg.MemoryCapacity, cfg.TTL),
		disk:        disk,
		ttl:         cfg.TTL,
		trendingTTL: cfg.TrendingTTL,
		logger:      logging.WithComponent("tmdb-cache"),
	}
}

// CleanupExpired drops expired entries from the memory tier.
func (c *CachedClient) CleanupExpired() int {
	return c.memory.CleanupExpired()
}

// CacheStats summarizes both tiers. DiskEntries is -1 when there is no disk
// tier or it could not be counted.
type CacheStats struct {
	MemoryEntries int   `json:"memory_entries"`
	MemoryHits    int64 `json:"memory_hits"`
	MemoryMisses  int64 `json:"memory_misses"`
	DiskEntries   int   `json:"disk_entries"`
}

// Stats reports the current cache occupancy.
func (c *CachedClient) Stats() CacheStats {
	hits, misses, size := c.memory.Stats()
	stats := CacheStats{MemoryEntries: size, MemoryHits: hits, MemoryMisses: misses, DiskEntries: -1}
	if c.disk != nil {
		n, err := c.disk.Count()
		if err != nil {
			c.logger.Warn().Err(err).Msg("Disk cache count failed")
		} else {
			stats.DiskEntries = n
		}
	}
	return stats
}

func (c *CachedClient) cached(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (*models.MediaPage, error)) (*models.MediaPage, error) {
	if page, ok := c.memory.Get(key); ok {
		metrics.RecordCacheHit("memory")
		return clonePage(page), nil
	}

	if c.disk != nil {
		var page models.MediaPage
		err := c.disk.Get(key, &page)
		switch {
		case err == nil:
			metrics.RecordCacheHit("disk")
			c.memory.SetWithTTL(key, &page, ttl)
			return clonePage(&page), nil
		case !errors.Is(err, cache.ErrNotFound):
			// An entry that cannot be decoded would miss forever; drop it.
			c.logger.Warn().Err(err).Str("key", key).Msg("Disk cache read failed")
			if delErr := c.disk.Delete(key); delErr != nil {
				c.logger.Warn().Err(delErr).Str("key", key).Msg("Disk cache delete failed")
			}
		}
	}

	metrics.RecordCacheMiss()
	page, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.memory.SetWithTTL(key, clonePage(page), ttl)
	if c.disk != nil {
		if err := c.disk.Set(key, page, ttl); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Disk cache write failed")
		}
	}
	return page, nil
}

// clonePage copies the page and its result slice so callers can reorder or
// trim results without touching the cached copy.
func clonePage(p *models.MediaPage) *models.MediaPage {
	out := *p
	out.Results = append([]models.MediaItem(nil), p.Results...)
	return &out
}

// PopularMovies returns a cached /movie/popular page.
func (c *CachedClient) PopularMovies(ctx context.Context, page int) (*models.MediaPage, error) {
	key := cache.GenerateKey("PopularMovies", map[string]int{"page": page})
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.PopularMovies(ctx, page)
	})
}

// PopularTV returns a cached /tv/popular page.
func (c *CachedClient) PopularTV(ctx context.Context, page int) (*models.MediaPage, error) {
	key := cache.GenerateKey("PopularTV", map[string]int{"page": page})
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.PopularTV(ctx, page)
	})
}

// Trending is cached with the shorter trending TTL.
func (c *CachedClient) Trending(ctx context.Context, filter models.MediaFilter, window models.TimeWindow) (*models.MediaPage, error) {
	key := cache.GenerateKey("Trending", map[string]string{"filter": string(filter), "window": string(window)})
	return c.cached(ctx, key, c.trendingTTL, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.Trending(ctx, filter, window)
	})
}

// MovieRecommendations returns cached recommendations for a movie.
func (c *CachedClient) MovieRecommendations(ctx context.Context, movieID, page int) (*models.MediaPage, error) {
	key := cache.GenerateKey("MovieRecommendations", map[string]int{"id": movieID, "page": page})
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.MovieRecommendations(ctx, movieID, page)
	})
}

// TVRecommendations returns cached recommendations for a show.
func (c *CachedClient) TVRecommendations(ctx context.Context, tvID, page int) (*models.MediaPage, error) {
	key := cache.GenerateKey("TVRecommendations", map[string]int{"id": tvID, "page": page})
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.TVRecommendations(ctx, tvID, page)
	})
}

// DiscoverMovies returns a cached /discover/movie page.
func (c *CachedClient) DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	key := cache.GenerateKey("DiscoverMovies", filters)
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.DiscoverMovies(ctx, filters)
	})
}

// DiscoverTV returns a cached /discover/tv page.
func (c *CachedClient) DiscoverTV(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	key := cache.GenerateKey("DiscoverTV", filters)
	return c.cached(ctx, key, c.ttl, func(ctx context.Context) (*models.MediaPage, error) {
		return c.next.DiscoverTV(ctx, filters)
	})
}
