// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tomtom215/moviemate/internal/api"
	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/poster"
	"github.com/tomtom215/moviemate/internal/recommend"
	"github.com/tomtom215/moviemate/internal/supervisor"
	"github.com/tomtom215/moviemate/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LogConfig())

	logging.Info().
		Str("movies_path", cfg.Catalog.MoviesPath).
		Str("similarity_path", cfg.Catalog.SimilarityPath).
		Int("k", cfg.Recommend.K).
		Bool("circuit_breaker", cfg.TMDB.Breaker.Enabled).
		Msg("Starting MovieMate")

	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY is not set; poster lookups will fall back to placeholders")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := catalog.Load(ctx, cfg.Catalog.MoviesPath, cfg.Catalog.SimilarityPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}
	logging.Info().
		Int("movies", store.Len()).
		Int("titles", len(store.Titles())).
		Msg("Catalog loaded")

	resolver := poster.New(cfg.Poster(), logging.Logger())

	engine, err := recommend.NewEngine(cfg.Recommender(), store, resolver, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler, err := api.NewHandler(engine, store, resolver)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	listener := services.NewAPIListenerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger())
	listener.OnDrained(resolver.Close)
	tree.AddAPIService(listener)
	tree.AddMaintenanceService(services.NewStatsReporterService(
		runtimeStats(engine, resolver),
		cfg.Server.StatsInterval,
		logging.Logger(),
	))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server configured")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("MovieMate stopped gracefully")
}

// runtimeStats gathers the counters logged by the stats reporter.
func runtimeStats(engine *recommend.Engine, resolver *poster.Resolver) services.StatsFunc {
	return func() map[string]interface{} {
		es := engine.Stats()
		cs := resolver.Memo().Stats()
		return map[string]interface{}{
			"recommend_requests":    es.Requests,
			"recommend_misses":      es.Misses,
			"recommend_errors":      es.Errors,
			"poster_cache_entries":  cs.Entries,
			"poster_cache_hit_rate": cs.HitRate(),
			"circuit_breaker":       resolver.BreakerState(),
		}
	}
}
