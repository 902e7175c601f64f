// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// degrade runs fn and, on error, logs it against the strategy and returns
// the zero value so the strategy contributes nothing.
func degrade[T any](logger *zerolog.Logger, strategy Source, fn func() (T, error)) T {
	v, err := fn()
	if err != nil {
		metrics.RecordStrategyDegraded(string(strategy))
		logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("Recommendation strategy degraded")
		var zero T
		return zero
	}
	return v
}

// sample returns up to k distinct items chosen uniformly at random, using a
// partial Fisher-Yates shuffle over a copy of items.
func (a *Aggregator) sample(items []models.WatchedItem, k int) []models.WatchedItem {
	pool := make([]models.WatchedItem, len(items))
	copy(pool, items)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + a.intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// similarToRated takes provider recommendations for a random sample of
// high-rated titles. Items inherit the sampled title's media type, so a
// sample outside the filter cannot contribute and is not queried.
func (a *Aggregator) similarToRated(ctx context.Context, c *collector, highRated []models.WatchedItem, filter models.MediaFilter, logger *zerolog.Logger) {
	for _, seed := range a.sample(highRated, SampleSize) {
		if c.full() {
			return
		}
		if !filter.Matches(seed.MediaType) {
			continue
		}

		results := degrade(logger, SourceSimilarToRated, func() ([]models.MediaItem, error) {
			var page *models.MediaPage
			var err error
			switch seed.MediaType {
			case models.MediaTypeMovie:
				page, err = a.metadata.MovieRecommendations(ctx, seed.ExternalID, 1)
			case models.MediaTypeTV:
				page, err = a.metadata.TVRecommendations(ctx, seed.ExternalID, 1)
			default:
				return nil, fmt.Errorf("%w: %q", models.ErrInvalidMediaType, seed.MediaType)
			}
			if err != nil {
				return nil, fmt.Errorf("recommendations for %s %d: %w", seed.MediaType, seed.ExternalID, err)
			}
			return page.Results, nil
		})

		c.addUpTo(toItems(results, seed.MediaType, SourceSimilarToRated, 0), PerSampleCap)
	}
}

// genreDiscovery takes well-rated titles matching every top genre. Movies
// come before TV. A failure on either call drops the whole strategy.
func (a *Aggregator) genreDiscovery(ctx context.Context, c *collector, topGenres []int, filter models.MediaFilter, logger *zerolog.Logger) {
	if c.full() || len(topGenres) == 0 {
		return
	}
	withGenres := joinGenres(topGenres)

	items := degrade(logger, SourceGenreDiscovery, func() ([]Item, error) {
		var out []Item
		if filter.IncludesMovies() {
			page, err := a.metadata.DiscoverMovies(ctx, models.DiscoverFilters{
				WithGenres:     withGenres,
				VoteAverageGTE: discoverMinVoteAverage,
				VoteCountGTE:   discoverMovieMinVotes,
				SortBy:         discoverSortBy,
				Page:           1,
			})
			if err != nil {
				return nil, fmt.Errorf("discover movies: %w", err)
			}
			out = append(out, toItems(page.Results, models.MediaTypeMovie, SourceGenreDiscovery, PerCallCap)...)
		}
		if filter.IncludesTV() {
			page, err := a.metadata.DiscoverTV(ctx, models.DiscoverFilters{
				WithGenres:     withGenres,
				VoteAverageGTE: discoverMinVoteAverage,
				VoteCountGTE:   discoverTVMinVotes,
				SortBy:         discoverSortBy,
				Page:           1,
			})
			if err != nil {
				return nil, fmt.Errorf("discover tv: %w", err)
			}
			out = append(out, toItems(page.Results, models.MediaTypeTV, SourceGenreDiscovery, PerCallCap)...)
		}
		return out, nil
	})

	c.addAll(items)
}

// trending takes the weekly trending list for the filter.
func (a *Aggregator) trending(ctx context.Context, c *collector, filter models.MediaFilter, logger *zerolog.Logger) {
	if c.full() {
		return
	}

	items := degrade(logger, SourceTrending, func() ([]Item, error) {
		page, err := a.metadata.Trending(ctx, filter, models.TimeWindowWeek)
		if err != nil {
			return nil, fmt.Errorf("trending %s: %w", filter, err)
		}
		return toItems(page.Results, "", SourceTrending, PerCallCap), nil
	})

	c.addAll(items)
}

// popularFillup tops the list up with popular content.
func (a *Aggregator) popularFillup(ctx context.Context, c *collector, filter models.MediaFilter, logger *zerolog.Logger) {
	if c.full() {
		return
	}

	items := degrade(logger, SourcePopularFillup, func() ([]Item, error) {
		pages, err := a.fetchPopular(ctx, 1, filter)
		if err != nil {
			return nil, err
		}
		return pages.items(SourcePopularFillup, PerCallCap), nil
	})

	c.addAll(items)
}

// popularPages holds one page of popular movies and/or TV.
type popularPages struct {
	movies *models.MediaPage
	tv     *models.MediaPage
}

// fetchPopular loads popular content for the filter. For "all" the two
// calls run concurrently and either failure fails the fetch.
func (a *Aggregator) fetchPopular(ctx context.Context, page int, filter models.MediaFilter) (*popularPages, error) {
	var out popularPages

	g, gctx := errgroup.WithContext(ctx)
	if filter.IncludesMovies() {
		g.Go(func() error {
			p, err := a.metadata.PopularMovies(gctx, page)
			if err != nil {
				return fmt.Errorf("popular movies: %w", err)
			}
			out.movies = p
			return nil
		})
	}
	if filter.IncludesTV() {
		g.Go(func() error {
			p, err := a.metadata.PopularTV(gctx, page)
			if err != nil {
				return fmt.Errorf("popular tv: %w", err)
			}
			out.tv = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// items converts the pages to tagged items, interleaving movies and TV
// position by position when both are present. perList caps the items taken
// from each page; 0 means no cap.
func (p *popularPages) items(source Source, perList int) []Item {
	var movies, tv []Item
	if p.movies != nil {
		movies = toItems(p.movies.Results, models.MediaTypeMovie, source, perList)
	}
	if p.tv != nil {
		tv = toItems(p.tv.Results, models.MediaTypeTV, source, perList)
	}
	return interleave(movies, tv)
}

// totals returns the paging totals to report. With both pages present the
// larger page count and the summed result count are used.
func (p *popularPages) totals() (totalPages, totalResults int) {
	for _, page := range []*models.MediaPage{p.movies, p.tv} {
		if page == nil {
			continue
		}
		if page.TotalPages > totalPages {
			totalPages = page.TotalPages
		}
		totalResults += page.TotalResults
	}
	return totalPages, totalResults
}

// interleave merges a and b as a[0], b[0], a[1], b[1], ... and appends the
// tail of the longer list.
func interleave(a, b []Item) []Item {
	out := make([]Item, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// toItems converts up to limit provider titles (0 means all).
func toItems(results []models.MediaItem, mediaType models.MediaType, source Source, limit int) []Item {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out := make([]Item, 0, len(results))
	for i := range results {
		out = append(out, newItem(&results[i], mediaType, source))
	}
	return out
}
