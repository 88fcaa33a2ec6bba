// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points the file-based layers at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "absent.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "absent.env"))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.TMDB.Timeout != 8*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 8s", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.MaxAttempts != 3 {
		t.Errorf("TMDB.MaxAttempts = %d, want 3", cfg.TMDB.MaxAttempts)
	}
	if !reflect.DeepEqual(cfg.TMDB.RetryStatuses, []int{429, 500, 502, 503, 504}) {
		t.Errorf("TMDB.RetryStatuses = %v", cfg.TMDB.RetryStatuses)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q", cfg.TMDB.Language)
	}
	if cfg.Recommend.K != 5 {
		t.Errorf("Recommend.K = %d, want 5", cfg.Recommend.K)
	}

	// Slowest recommendation: every poster exhausts its attempts and backoffs.
	var backoff time.Duration
	for n := 2; n <= cfg.TMDB.MaxAttempts; n++ {
		backoff += cfg.TMDB.BackoffFactor << (n - 2)
	}
	perPoster := time.Duration(cfg.TMDB.MaxAttempts)*cfg.TMDB.Timeout + backoff
	if worst := time.Duration(cfg.Recommend.K) * perPoster; cfg.Server.WriteTimeout < worst {
		t.Errorf("Server.WriteTimeout = %v, below worst-case recommendation time %v", cfg.Server.WriteTimeout, worst)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q", cfg.TMDB.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TMDB_API_KEY", "k-123")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("TMDB_MAX_ATTEMPTS", "5")
	t.Setenv("TMDB_RETRY_STATUSES", "429, 503")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_K", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "k-123" {
		t.Errorf("TMDB.APIKey = %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Timeout != 3*time.Second {
		t.Errorf("TMDB.Timeout = %v", cfg.TMDB.Timeout)
	}
	if cfg.TMDB.MaxAttempts != 5 {
		t.Errorf("TMDB.MaxAttempts = %d", cfg.TMDB.MaxAttempts)
	}
	if !reflect.DeepEqual(cfg.TMDB.RetryStatuses, []int{429, 503}) {
		t.Errorf("TMDB.RetryStatuses = %v", cfg.TMDB.RetryStatuses)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.K != 8 {
		t.Errorf("Recommend.K = %d", cfg.Recommend.K)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
catalog:
  movies_path: /srv/movies.json.gz
  similarity_path: /srv/similarity.json.gz
tmdb:
  api_key: from-file
  backoff_factor: 250ms
  breaker:
    enabled: false
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("TMDB_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Catalog.MoviesPath != "/srv/movies.json.gz" {
		t.Errorf("Catalog.MoviesPath = %q", cfg.Catalog.MoviesPath)
	}
	if cfg.TMDB.BackoffFactor != 250*time.Millisecond {
		t.Errorf("TMDB.BackoffFactor = %v", cfg.TMDB.BackoffFactor)
	}
	if cfg.TMDB.Breaker.Enabled {
		t.Error("breaker should be disabled by the file")
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Errorf("env should override file, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
	// Untouched keys keep their defaults.
	if cfg.TMDB.MaxAttempts != 3 {
		t.Errorf("TMDB.MaxAttempts = %d, want default 3", cfg.TMDB.MaxAttempts)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("MOVIEMATE_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envFile)
	t.Setenv("MOVIEMATE_TEST_DOTENV", "")
	os.Unsetenv("MOVIEMATE_TEST_DOTENV")

	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("MOVIEMATE_TEST_DOTENV"); got != "loaded" {
		t.Errorf("expected .env value to reach the environment, got %q", got)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("TMDB_MAX_ATTEMPTS", "0")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "tmdb.max_attempts") {
		t.Errorf("expected max_attempts validation error, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"TMDB_API_KEY":        "tmdb.api_key",
		"HTTP_PORT":           "server.port",
		"MOVIES_PATH":         "catalog.movies_path",
		"RATE_LIMIT_REQUESTS": "security.rate_limit_reqs",
		"log_level":           "logging.level",
		"PATH":                "",
		"HOME":                "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
