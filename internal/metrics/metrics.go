// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package metrics holds the Prometheus collectors for MovieMate.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Poster Resolver Metrics
	PosterFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_fetch_total",
			Help: "Total number of uncached poster resolutions by outcome kind",
		},
		[]string{"kind"}, // ok, no_poster, not_found, network_error, server_error, ...
	)

	PosterFetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_fetch_attempts_total",
			Help: "Total number of HTTP attempts made against the metadata API",
		},
		[]string{"result"}, // success, retryable, failure, network_error
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_fetch_duration_seconds",
			Help:    "Duration of an uncached poster resolution including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	PosterCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_cache_lookups_total",
			Help: "Poster cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	PosterCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "poster_cache_entries",
			Help: "Number of movie ids with a memoized poster URL",
		},
	)

	// Recommender Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by result",
		},
		[]string{"result"}, // ok, not_found, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of a recommendation including poster resolution",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
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

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
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
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// RecordPosterFetch records the outcome of an uncached poster resolution.
func RecordPosterFetch(kind string, duration time.Duration) {
	PosterFetchTotal.WithLabelValues(kind).Inc()
	PosterFetchDuration.Observe(duration.Seconds())
}

// RecordPosterAttempt records one HTTP attempt against the metadata API.
func RecordPosterAttempt(result string) {
	PosterFetchAttempts.WithLabelValues(result).Inc()
}

// RecordPosterCacheLookup records a poster cache hit or miss.
func RecordPosterCacheLookup(hit bool) {
	if hit {
		PosterCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	PosterCacheLookups.WithLabelValues("miss").Inc()
}

// SetPosterCacheEntries updates the poster cache size gauge.
func SetPosterCacheEntries(n int) {
	PosterCacheEntries.Set(float64(n))
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(result string, duration time.Duration) {
	RecommendRequests.WithLabelValues(result).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
