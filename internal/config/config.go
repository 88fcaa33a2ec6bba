// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package config loads MovieMate's configuration.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults
//  2. A YAML file (CONFIG_PATH, or config.yaml / /etc/moviemate/config.yaml)
//  3. Environment variables, optionally seeded from a .env file
//
// Example config.yaml:
//
//	catalog:
//	  movies_path: /data/movies.json
//	  similarity_path: /data/similarity.json.gz
//	tmdb:
//	  api_key: xxxxxxxx
//	  timeout: 8s
//	  max_attempts: 3
package config

import (
	"time"

	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/poster"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// StatsInterval is how often runtime counters are logged.
	StatsInterval   time.Duration `koanf:"stats_interval"`
}

// CatalogConfig points at the precomputed artifacts loaded at startup.
type CatalogConfig struct {
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`
}

// RecommendConfig configures the recommender.
type RecommendConfig struct {
	K int `koanf:"k"`
}

// TMDBConfig configures the metadata API client and poster URLs.
type TMDBConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Language          string        `koanf:"language"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	NoPosterURL       string        `koanf:"no_poster_url"`
	ErrorURL          string        `koanf:"error_url"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxAttempts       int           `koanf:"max_attempts"`
	BackoffFactor     time.Duration `koanf:"backoff_factor"`
	MaxBackoff        time.Duration `koanf:"max_backoff"`
	RetryStatuses     []int         `koanf:"retry_statuses"`
	RespectRetryAfter bool          `koanf:"respect_retry_after"`
	Breaker           BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the metadata API circuit breaker.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MinRequests      uint32        `koanf:"min_requests"`
	FailureRatio     float64       `koanf:"failure_ratio"`
	Interval         time.Duration `koanf:"interval"`
	OpenTimeout      time.Duration `koanf:"open_timeout"`
	HalfOpenRequests uint32        `koanf:"half_open_requests"`
}

// SecurityConfig configures the HTTP surface's CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Poster converts the tmdb section into the resolver's config.
func (c *Config) Poster() poster.Config {
	t := c.TMDB
	return poster.Config{
		BaseURL:           t.BaseURL,
		APIKey:            t.APIKey,
		Language:          t.Language,
		ImageBaseURL:      t.ImageBaseURL,
		NoPosterURL:       t.NoPosterURL,
		ErrorURL:          t.ErrorURL,
		Timeout:           t.Timeout,
		MaxAttempts:       t.MaxAttempts,
		BackoffFactor:     t.BackoffFactor,
		MaxBackoff:        t.MaxBackoff,
		RetryStatuses:     append([]int(nil), t.RetryStatuses...),
		RespectRetryAfter: t.RespectRetryAfter,
		CircuitBreaker: poster.BreakerConfig{
			Enabled:          t.Breaker.Enabled,
			MinRequests:      t.Breaker.MinRequests,
			FailureRatio:     t.Breaker.FailureRatio,
			Interval:         t.Breaker.Interval,
			OpenTimeout:      t.Breaker.OpenTimeout,
			HalfOpenRequests: t.Breaker.HalfOpenRequests,
		},
	}
}

// Recommender converts the recommend section into the engine's config.
func (c *Config) Recommender() *recommend.Config {
	return &recommend.Config{K: c.Recommend.K}
}

// LogConfig converts the logging section into the logger's config.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
