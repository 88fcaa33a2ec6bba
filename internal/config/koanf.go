// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/moviemate/internal/poster"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviemate/config.yaml",
	"/etc/moviemate/config.yml",
}

const (
	// ConfigPathEnvVar names an explicit config file.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvPathEnvVar names the .env file; defaults to ".env".
	DotEnvPathEnvVar = "DOTENV_PATH"
)

func defaultConfig() *Config {
	p := poster.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    150 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			StatsInterval:   5 * time.Minute,
		},
		Catalog: CatalogConfig{
			MoviesPath:     "data/movies.json",
			SimilarityPath: "data/similarity.json",
		},
		Recommend: RecommendConfig{
			K: recommend.DefaultK,
		},
		TMDB: TMDBConfig{
			BaseURL:           p.BaseURL,
			APIKey:            "",
			Language:          p.Language,
			ImageBaseURL:      p.ImageBaseURL,
			NoPosterURL:       p.NoPosterURL,
			ErrorURL:          p.ErrorURL,
			Timeout:           p.Timeout,
			MaxAttempts:       p.MaxAttempts,
			BackoffFactor:     p.BackoffFactor,
			MaxBackoff:        p.MaxBackoff,
			RetryStatuses:     p.RetryStatuses,
			RespectRetryAfter: p.RespectRetryAfter,
			Breaker: BreakerConfig{
				Enabled:          p.CircuitBreaker.Enabled,
				MinRequests:      p.CircuitBreaker.MinRequests,
				FailureRatio:     p.CircuitBreaker.FailureRatio,
				Interval:         p.CircuitBreaker.Interval,
				OpenTimeout:      p.CircuitBreaker.OpenTimeout,
				HalfOpenRequests: p.CircuitBreaker.HalfOpenRequests,
			},
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, the optional config file and
// the environment, then validates it.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv copies a .env file into the process environment. Variables that
// are already set win, and a missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first default
// path that exists, else "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"tmdb.retry_statuses",
}

// processSliceFields splits comma-separated strings for known slice fields.
// YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"stats_interval":        "server.stats_interval",

	"movies_path":     "catalog.movies_path",
	"similarity_path": "catalog.similarity_path",

	"recommend_k": "recommend.k",

	"tmdb_base_url":            "tmdb.base_url",
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_language":            "tmdb.language",
	"tmdb_image_base_url":      "tmdb.image_base_url",
	"tmdb_no_poster_url":       "tmdb.no_poster_url",
	"tmdb_error_url":           "tmdb.error_url",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_max_attempts":        "tmdb.max_attempts",
	"tmdb_backoff_factor":      "tmdb.backoff_factor",
	"tmdb_max_backoff":         "tmdb.max_backoff",
	"tmdb_retry_statuses":      "tmdb.retry_statuses",
	"tmdb_respect_retry_after": "tmdb.respect_retry_after",
	"tmdb_breaker_enabled":     "tmdb.breaker.enabled",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to a koanf path, or "" to
// ignore it.
//
//	TMDB_API_KEY -> tmdb.api_key
//	HTTP_PORT    -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
