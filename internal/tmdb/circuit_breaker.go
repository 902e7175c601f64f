// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package tmdb

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// BreakerName labels the TMDB circuit breaker in metrics and logs.
const BreakerName = "tmdb-api"

// CircuitBreakerClient wraps a Provider with a circuit breaker so a failing
// TMDB stops receiving traffic until the open timeout passes.
//
// Client errors (4xx other than 429) and caller cancellations are not
// counted as failures.
type CircuitBreakerClient struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*models.MediaPage]
	name string
}

// NewCircuitBreakerClient wraps next using the breaker settings from cfg.
func NewCircuitBreakerClient(next Provider, cfg *config.CircuitBreakerConfig) *CircuitBreakerClient {
	name := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[*models.MediaPage](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerClient{next: next, cb: cb, name: name}
}

// State returns "closed", "half-open" or "open".
func (c *CircuitBreakerClient) State() string {
	return stateToString(c.cb.State())
}

func (c *CircuitBreakerClient) execute(fn func() (*models.MediaPage, error)) (*models.MediaPage, error) {
	page, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", c.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return page, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// PopularMovies calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) PopularMovies(ctx context.Context, page int) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.PopularMovies(ctx, page) })
}

// PopularTV calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) PopularTV(ctx context.Context, page int) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.PopularTV(ctx, page) })
}

// Trending calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) Trending(ctx context.Context, filter models.MediaFilter, window models.TimeWindow) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.Trending(ctx, filter, window) })
}

// MovieRecommendations calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) MovieRecommendations(ctx context.Context, movieID, page int) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.MovieRecommendations(ctx, movieID, page) })
}

// TVRecommendations calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) TVRecommendations(ctx context.Context, tvID, page int) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.TVRecommendations(ctx, tvID, page) })
}

// DiscoverMovies calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.DiscoverMovies(ctx, filters) })
}

// DiscoverTV calls the wrapped provider through the breaker.
func (c *CircuitBreakerClient) DiscoverTV(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	return c.execute(func() (*models.MediaPage, error) { return c.next.DiscoverTV(ctx, filters) })
}
