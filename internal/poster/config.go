// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package poster

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the TMDb v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultImageBaseURL is the CDN prefix for w500 poster renditions.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	// DefaultNoPosterURL is shown when the movie exists but has no poster.
	DefaultNoPosterURL = "https://via.placeholder.com/500?text=No+Poster"

	// DefaultErrorURL is shown when the poster could not be resolved.
	DefaultErrorURL = "https://via.placeholder.com/500?text=Error"
)

// Config controls the metadata client, its retry policy and the URLs the
// resolver hands out.
type Config struct {
	BaseURL      string
	APIKey       string
	Language     string
	ImageBaseURL string
	NoPosterURL  string
	ErrorURL     string

	// Timeout caps each individual HTTP attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts, the first one included.
	MaxAttempts int

	// BackoffFactor is the wait before the second attempt. Each further
	// attempt doubles it.
	BackoffFactor time.Duration

	// MaxBackoff caps a single wait, Retry-After included. Zero means no cap.
	MaxBackoff time.Duration

	// RetryStatuses are the HTTP status codes that trigger another attempt.
	RetryStatuses []int

	// RespectRetryAfter lets a Retry-After header replace the computed wait.
	RespectRetryAfter bool

	CircuitBreaker BreakerConfig
}

// BreakerConfig configures the circuit breaker in front of the client.
type BreakerConfig struct {
	Enabled bool

	// MinRequests is the number of requests in an interval before the
	// failure ratio is considered.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// Interval is the cyclic period in which counts are cleared while closed.
	Interval time.Duration

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration

	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Language:     "en-US",
		ImageBaseURL: DefaultImageBaseURL,
		NoPosterURL:  DefaultNoPosterURL,
		ErrorURL:     DefaultErrorURL,

		Timeout:       8 * time.Second,
		MaxAttempts:   3,
		BackoffFactor: time.Second,
		MaxBackoff:    30 * time.Second,
		RetryStatuses: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		RespectRetryAfter: true,

		CircuitBreaker: BreakerConfig{
			Enabled:          true,
			MinRequests:      10,
			FailureRatio:     0.6,
			Interval:         time.Minute,
			OpenTimeout:      2 * time.Minute,
			HalfOpenRequests: 3,
		},
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("tmdb.base_url is invalid: %w", err)
	}
	if c.ImageBaseURL == "" {
		return fmt.Errorf("tmdb.image_base_url is required")
	}
	if c.NoPosterURL == "" || c.ErrorURL == "" {
		return fmt.Errorf("tmdb.no_poster_url and tmdb.error_url are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("tmdb.max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.BackoffFactor < 0 {
		return fmt.Errorf("tmdb.backoff_factor must not be negative, got %v", c.BackoffFactor)
	}
	if c.MaxBackoff < 0 {
		return fmt.Errorf("tmdb.max_backoff must not be negative, got %v", c.MaxBackoff)
	}
	for _, code := range c.RetryStatuses {
		if code < 400 || code > 599 {
			return fmt.Errorf("tmdb.retry_statuses contains non-error status %d", code)
		}
	}
	if cb := c.CircuitBreaker; cb.Enabled {
		if cb.FailureRatio <= 0 || cb.FailureRatio > 1 {
			return fmt.Errorf("tmdb.breaker.failure_ratio must be in (0, 1], got %v", cb.FailureRatio)
		}
		if cb.OpenTimeout <= 0 {
			return fmt.Errorf("tmdb.breaker.open_timeout must be positive, got %v", cb.OpenTimeout)
		}
	}
	return nil
}

func (c *Config) retryStatus(code int) bool {
	for _, s := range c.RetryStatuses {
		if s == code {
			return true
		}
	}
	return false
}
