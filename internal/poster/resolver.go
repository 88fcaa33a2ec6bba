// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package poster turns movie ids into display-ready poster image URLs.
//
// A Resolver consults a write-once memo table first and only calls the
// metadata API on a miss. Whatever the call produces, a real poster URL or
// one of the two placeholders, is memoized for the rest of the process
// lifetime, so a given id costs at most one logical fetch. Failures never
// escape: Resolve always returns a usable URL together with a Kind that says
// how it was obtained.
package poster

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/moviemate/internal/cache"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// MovieFetcher fetches movie details from the metadata API.
type MovieFetcher interface {
	Movie(ctx context.Context, movieID int64) (*MovieDetails, error)
}

// Outcome is the result of resolving one movie id.
type Outcome struct {
	MovieID int64  `json:"movie_id"`
	URL     string `json:"url"`
	Kind    Kind   `json:"kind"`
	Cached  bool   `json:"cached"`
}

// Memo is the poster cache type.
type Memo = cache.Memo[int64, Outcome]

// NewMemo returns an empty poster cache wired to the Prometheus collectors.
func NewMemo() *Memo {
	return cache.NewMemoWithHooks[int64, Outcome](cache.Hooks{
		OnHit:   func() { metrics.RecordPosterCacheLookup(true) },
		OnMiss:  func() { metrics.RecordPosterCacheLookup(false) },
		OnWrite: metrics.SetPosterCacheEntries,
	})
}

// Resolver resolves poster URLs through a memo table and a MovieFetcher.
type Resolver struct {
	fetcher MovieFetcher
	memo    *Memo
	flight  singleflight.Group
	cfg     Config
	logger  zerolog.Logger
}

// NewResolver creates a resolver. Both the fetcher and the memo are owned by
// the caller's lifecycle; Close releases the fetcher's resources.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResolver(fetcher MovieFetcher, memo *Memo, cfg Config, logger zerolog.Logger) *Resolver {
	if memo == nil {
		memo = NewMemo()
	}
	return &Resolver{
		fetcher: fetcher,
		memo:    memo,
		cfg:     cfg,
		logger:  logger.With().Str("component", "poster").Logger(),
	}
}

// New builds the production stack: an HTTP client, optionally behind a
// circuit breaker, and a fresh memo table.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) *Resolver {
	var fetcher MovieFetcher = NewClient(cfg, nil, logger)
	if cfg.CircuitBreaker.Enabled {
		fetcher = NewBreakerFetcher(fetcher, cfg.CircuitBreaker, logger)
	}
	return NewResolver(fetcher, NewMemo(), cfg, logger)
}

// FetchPoster returns a display-ready image URL for movieID. It never fails.
func (r *Resolver) FetchPoster(ctx context.Context, movieID int64) string {
	return r.Resolve(ctx, movieID).URL
}

// Resolve returns the memoized outcome for movieID, fetching it on first use.
//
// Concurrent callers for the same uncached id share one fetch. The fetch is
// detached from any single caller's cancellation so that its result can be
// memoized; a caller whose context ends first gets an unmemoized error
// placeholder. Circuit-open outcomes are returned but not memoized.
func (r *Resolver) Resolve(ctx context.Context, movieID int64) Outcome {
	if out, ok := r.memo.Get(movieID); ok {
		out.Cached = true
		return out
	}

	ch := r.flight.DoChan(strconv.FormatInt(movieID, 10), func() (interface{}, error) {
		if out, ok := r.memo.Peek(movieID); ok {
			return out, nil
		}
		out := r.fetch(context.WithoutCancel(ctx), movieID)
		if out.Kind == KindCircuitOpen {
			// Never reached upstream; the id stays eligible once the breaker closes.
			return out, nil
		}
		stored, _ := r.memo.SetIfAbsent(movieID, out)
		return stored, nil
	})

	select {
	case res := <-ch:
		out, _ := res.Val.(Outcome)
		return out
	case <-ctx.Done():
		logger := logging.FromContext(ctx, r.logger)
		logger.Debug().
			Int64("movie_id", movieID).
			Err(ctx.Err()).
			Msg("Caller gave up waiting for poster")
		return Outcome{MovieID: movieID, URL: r.cfg.ErrorURL, Kind: KindNetworkError}
	}
}

// fetch performs one logical fetch and classifies the result.
func (r *Resolver) fetch(ctx context.Context, movieID int64) Outcome {
	start := time.Now()
	details, err := r.fetcher.Movie(ctx, movieID)

	out := Outcome{MovieID: movieID, Kind: Classify(err)}
	switch {
	case err != nil:
		out.URL = r.cfg.ErrorURL
		logger := logging.FromContext(ctx, r.logger)
		logger.Warn().
			Err(err).
			Int64("movie_id", movieID).
			Str("kind", out.Kind.String()).
			Msg("Poster fetch failed, using error placeholder")
	case details == nil:
		out.Kind = KindInvalidResponse
		out.URL = r.cfg.ErrorURL
	case strings.TrimSpace(details.PosterPath) == "":
		out.Kind = KindNoPoster
		out.URL = r.cfg.NoPosterURL
	default:
		out.URL = PosterURL(r.cfg.ImageBaseURL, details.PosterPath)
	}

	metrics.RecordPosterFetch(out.Kind.String(), time.Since(start))
	return out
}

// Memo exposes the cache for stats reporting.
func (r *Resolver) Memo() *Memo {
	return r.memo
}

// BreakerState reports the circuit breaker state, or "disabled" when the
// fetcher is not wrapped in one.
func (r *Resolver) BreakerState() string {
	if b, ok := r.fetcher.(*BreakerFetcher); ok {
		return b.State().String()
	}
	return "disabled"
}

// Close releases the fetcher's HTTP resources. The memo is left intact.
func (r *Resolver) Close() {
	if c, ok := r.fetcher.(interface{ Close() }); ok {
		c.Close()
	}
}

// PosterURL joins the CDN base and a poster path with exactly one slash.
//
//	PosterURL("https://image.tmdb.org/t/p/w500", "/abc.jpg")
//	// https://image.tmdb.org/t/p/w500/abc.jpg
func PosterURL(imageBase, posterPath string) string {
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(strings.TrimSpace(posterPath), "/")
}
