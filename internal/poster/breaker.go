// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package poster

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviemate/internal/metrics"
)

// BreakerName labels the metadata API circuit breaker in metrics and logs.
const BreakerName = "tmdb-api"

// BreakerFetcher guards a MovieFetcher with a circuit breaker so a dead
// metadata API is not hammered with MaxAttempts requests per movie.
//
// Only failures that indicate an unhealthy upstream count against the
// breaker: a 404 or other client error means the API answered correctly.
type BreakerFetcher struct {
	next   MovieFetcher
	cb     *gobreaker.CircuitBreaker[*MovieDetails]
	logger zerolog.Logger
}

// NewBreakerFetcher wraps next.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerFetcher(next MovieFetcher, cfg BreakerConfig, logger zerolog.Logger) *BreakerFetcher {
	logger = logger.With().Str("component", "breaker").Str("breaker", BreakerName).Logger()
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[*MovieDetails](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= ratio {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
				return true
			}
			return false
		},

		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			switch Classify(err) {
			case KindNotFound, KindClientError:
				return true
			default:
				return false
			}
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerFetcher{next: next, cb: cb, logger: logger}
}

// Movie implements MovieFetcher.
func (b *BreakerFetcher) Movie(ctx context.Context, movieID int64) (*MovieDetails, error) {
	details, err := b.cb.Execute(func() (*MovieDetails, error) {
		return b.next.Movie(ctx, movieID)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "rejected").Inc()
		b.logger.Debug().Err(err).Int64("movie_id", movieID).Msg("Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "failure").Inc()
	}
	return details, err
}

// State returns the breaker's current state.
func (b *BreakerFetcher) State() gobreaker.State {
	return b.cb.State()
}

// Close closes the wrapped fetcher when it supports it.
func (b *BreakerFetcher) Close() {
	if c, ok := b.next.(interface{ Close() }); ok {
		c.Close()
	}
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
