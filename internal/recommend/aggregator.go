// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// Aggregator produces recommendations for one user per call. It holds no
// per-request state and is safe for concurrent use.
type Aggregator struct {
	history  HistoryProvider
	metadata MetadataProvider
	intn     func(n int) int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithIntn replaces the random source used to sample high-rated titles.
// intn must return a value in [0, n) and be safe for concurrent use if the
// aggregator is shared.
func WithIntn(intn func(n int) int) Option {
	return func(a *Aggregator) { a.intn = intn }
}

// NewAggregator creates an aggregator. metadata may be nil when the provider
// credential is missing, in which case every call fails with
// ErrConfiguration.
func NewAggregator(history HistoryProvider, metadata MetadataProvider, opts ...Option) *Aggregator {
	a := &Aggregator{
		history:  history,
		metadata: metadata,
		intn:     rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured reports whether a metadata provider is present.
func (a *Aggregator) Configured() bool {
	return a.metadata != nil
}

// userHistory is what one request knows about the user.
type userHistory struct {
	highRated []models.WatchedItem
	excluded  map[int]struct{}
}

// Recommend returns recommendations for userID. page below 1 is treated as 1
// and an empty filter as all.
//
// Errors: ErrConfiguration when no provider is configured,
// models.ErrInvalidMediaType for an unknown filter, and
// ErrProviderUnavailable when history or the cold-start popular fetch fails.
func (a *Aggregator) Recommend(ctx context.Context, userID string, page int, filter models.MediaFilter) (*Result, error) {
	if !a.Configured() {
		return nil, ErrConfiguration
	}
	filter, err := models.ParseMediaFilter(string(filter))
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	start := time.Now()
	logger := logging.CtxWith(ctx).
		Str("component", "recommend").
		Str("media_type", string(filter)).
		Int("page", page).
		Logger()

	hist, err := a.loadHistory(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load user history")
		metrics.RecordRecommendation("error", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	var result *Result
	if len(hist.highRated) == 0 {
		result, err = a.coldStart(ctx, hist, page, filter)
		if err != nil {
			logger.Error().Err(err).Msg("Popular fallback failed")
			metrics.RecordRecommendation("error", time.Since(start))
			return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
		}
	} else {
		result = a.personalized(ctx, hist, page, filter, &logger)
	}

	metrics.RecordRecommendation(string(result.Method), time.Since(start))
	logger.Debug().
		Str("method", string(result.Method)).
		Int("high_rated", len(hist.highRated)).
		Int("recommendations", len(result.Recommendations)).
		Int("buffer", len(result.Buffer)).
		Dur("duration", time.Since(start)).
		Msg("Recommendations built")

	return result, nil
}

// loadHistory reads the watched items, library and not-interested marks.
func (a *Aggregator) loadHistory(ctx context.Context, userID string) (*userHistory, error) {
	watched, err := a.history.GetWatchedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("watched items: %w", err)
	}
	library, err := a.history.GetAllLibraryItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("library items: %w", err)
	}
	notInterested, err := a.history.GetNotInterestedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("not-interested ids: %w", err)
	}

	hist := &userHistory{
		highRated: make([]models.WatchedItem, 0),
		excluded:  make(map[int]struct{}, len(library)+len(notInterested)),
	}
	for i := range watched {
		if r := watched[i].UserRating; r != nil && *r >= HighRatingThreshold {
			hist.highRated = append(hist.highRated, watched[i])
		}
	}
	for i := range library {
		hist.excluded[library[i].ExternalID] = struct{}{}
	}
	for _, id := range notInterested {
		hist.excluded[id] = struct{}{}
	}
	return hist, nil
}

// coldStart returns one page of popular content for a user without any
// high-rated title.
func (a *Aggregator) coldStart(ctx context.Context, hist *userHistory, page int, filter models.MediaFilter) (*Result, error) {
	pages, err := a.fetchPopular(ctx, page, filter)
	if err != nil {
		return nil, err
	}

	c := newCollector(hist.excluded, FetchedCount)
	c.addAll(pages.items(SourcePopularFallback, 0))
	recordSources(c)

	totalPages, totalResults := pages.totals()
	recs, buffer := c.split()
	return &Result{
		Recommendations: recs,
		Buffer:          buffer,
		Page:            page,
		TotalPages:      totalPages,
		TotalResults:    totalResults,
		Method:          MethodPopularFallback,
		BasedOn: BasedOn{
			HighRatedCount: 0,
			TopGenres:      []int{},
			StrategiesUsed: []Source{SourcePopularFallback},
		},
	}, nil
}

// personalized runs the four strategies in priority order. The whole
// personalized list is one page; later pages are empty.
func (a *Aggregator) personalized(ctx context.Context, hist *userHistory, page int, filter models.MediaFilter, logger *zerolog.Logger) *Result {
	topGenres := rankGenres(hist.highRated, TopGenreCount, logger)
	c := newCollector(hist.excluded, FetchedCount)

	if page == 1 {
		a.similarToRated(ctx, c, hist.highRated, filter, logger)
		a.genreDiscovery(ctx, c, topGenres, filter, logger)
		a.trending(ctx, c, filter, logger)
		a.popularFillup(ctx, c, filter, logger)
		recordSources(c)
	}

	counts := c.sourceCounts()
	used := []Source{SourceSimilarToRated, SourceGenreDiscovery}
	for _, s := range []Source{SourceTrending, SourcePopularFillup} {
		if counts[s] > 0 {
			used = append(used, s)
		}
	}

	recs, buffer := c.split()
	return &Result{
		Recommendations: recs,
		Buffer:          buffer,
		Page:            page,
		TotalPages:      1,
		TotalResults:    len(recs) + len(buffer),
		Method:          MethodPersonalized,
		BasedOn: BasedOn{
			HighRatedCount: len(hist.highRated),
			TopGenres:      topGenres,
			StrategiesUsed: used,
		},
	}
}

func recordSources(c *collector) {
	for source, n := range c.sourceCounts() {
		metrics.RecordRecommendationItems(string(source), n)
	}
}
