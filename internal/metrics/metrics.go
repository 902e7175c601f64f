// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

// Package metrics holds the Prometheus collectors for the service.
//
// Collectors are registered on the default registry through promauto and
// exposed by the /metrics endpoint. Callers use the Record* helpers rather
// than touching the vectors directly.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Library store (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of failed DuckDB queries",
		},
		[]string{"operation"},
	)

	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Metadata provider (TMDB)
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_provider_requests_total",
			Help: "Total number of metadata provider calls",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "error"
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metadata_provider_request_duration_seconds",
			Help:    "Metadata provider call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Metadata cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Total number of metadata cache hits by tier",
		},
		[]string{"tier"}, // tier: "memory", "disk"
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Total number of metadata cache misses (network fetches)",
		},
	)

	CacheGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_cache_gc_runs_total",
			Help: "Total number of badger value log GC passes",
		},
		[]string{"result"}, // result: "rewritten", "noop", "error"
	)

	// Recommendation pipeline
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation results by method",
		},
		[]string{"method"}, // method: "personalized", "popular_fallback", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to build a recommendation result",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	RecommendationItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_items_total",
			Help: "Total number of items produced per recommendation source",
		},
		[]string{"source"},
	)

	StrategyDegradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_strategy_degraded_total",
			Help: "Total number of strategy calls that failed and contributed nothing",
		},
		[]string{"strategy"},
	)

	GenreParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_genre_parse_failures_total",
			Help: "Total number of library items whose stored genres could not be parsed",
		},
	)
)

// RecordDBQuery records a library store query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordProviderRequest records a metadata provider call.
func RecordProviderRequest(endpoint string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheHit counts a hit on the given tier ("memory" or "disk").
func RecordCacheHit(tier string) {
	CacheHits.WithLabelValues(tier).Inc()
}

// RecordCacheMiss counts a lookup that fell through to the network.
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheGC records one badger value log GC pass.
func RecordCacheGC(result string) {
	CacheGCRuns.WithLabelValues(result).Inc()
}

// RecordRecommendation records a completed (or failed) recommendation request.
func RecordRecommendation(method string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(method).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRecommendationItems adds n items attributed to source.
func RecordRecommendationItems(source string, n int) {
	if n <= 0 {
		return
	}
	RecommendationItems.WithLabelValues(source).Add(float64(n))
}

// RecordStrategyDegraded counts a strategy that failed and was skipped.
func RecordStrategyDegraded(strategy string) {
	StrategyDegradations.WithLabelValues(strategy).Inc()
}

// RecordGenreParseFailure counts an unparseable stored genre list.
func RecordGenreParseFailure() {
	GenreParseFailures.Inc()
}
