// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// Engine answers "movies like this one" from the similarity store.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	store   *catalog.Store
	posters PosterSource
	logger  zerolog.Logger

	requestCount atomic.Int64
	missCount    atomic.Int64
	errorCount   atomic.Int64
}

// Stats are the engine's lifetime counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Misses   int64 `json:"misses"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates a recommendation engine over store. posters may be nil,
// in which case Recommend leaves the poster fields empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store *catalog.Store, posters PosterSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("catalog store is required")
	}

	return &Engine{
		config:  cfg,
		store:   store,
		posters: posters,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend returns up to K neighbours of title with their posters.
//
// Any failure (unknown title, misaligned matrix row) is logged and turned
// into an empty Result; callers show a generic message instead. Posters are
// resolved one at a time in ranked order.
func (e *Engine) Recommend(ctx context.Context, title string) Result {
	start := time.Now()
	e.requestCount.Add(1)
	logger := logging.FromContext(ctx, e.logger)

	items, err := e.Neighbors(title)
	if err != nil {
		result := "error"
		if errors.Is(err, ErrTitleNotFound) {
			e.missCount.Add(1)
			result = "not_found"
			logger.Info().Str("title", title).Msg("No movie with this title")
		} else {
			e.errorCount.Add(1)
			logger.Error().Err(err).Str("title", title).Msg("Recommendation lookup failed")
		}
		metrics.RecordRecommendation(result, time.Since(start))
		return Result{Items: []Recommendation{}}
	}

	if e.posters != nil {
		for i := range items {
			out := e.posters.Resolve(ctx, items[i].MovieID)
			items[i].Poster = out.URL
			items[i].PosterKind = out.Kind
		}
	}

	metrics.RecordRecommendation("ok", time.Since(start))
	logger.Debug().
		Str("title", title).
		Int("returned", len(items)).
		Dur("latency", time.Since(start)).
		Msg("Recommendation complete")

	return Result{Items: items}
}

// Neighbors is the strict lookup behind Recommend: it returns the K movies
// most similar to title, without posters, or an error.
//
// Scores are ranked descending; equal scores keep catalogue order (lower
// index first). The query movie itself is never returned.
func (e *Engine) Neighbors(title string) ([]Recommendation, error) {
	idx, ok := e.store.IndexOf(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, title)
	}

	row, err := e.store.Row(idx)
	if err != nil {
		return nil, fmt.Errorf("similarity row for %q: %w", title, err)
	}

	ranked := rank(row, idx)
	if len(ranked) > e.config.K {
		ranked = ranked[:e.config.K]
	}

	items := make([]Recommendation, 0, len(ranked))
	for i, j := range ranked {
		movie, err := e.store.Movie(j)
		if err != nil {
			return nil, err
		}
		items = append(items, Recommendation{
			Rank:    i + 1,
			Index:   j,
			MovieID: movie.ID,
			Title:   movie.Title,
			Score:   row[j],
		})
	}
	return items, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Misses:   e.missCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// Store returns the underlying similarity store.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// rank orders every index of row except self by score descending, then by
// index ascending. NaN scores sort after every number.
func rank(row []float64, self int) []int {
	order := make([]int, 0, len(row))
	for i := range row {
		if i != self {
			order = append(order, i)
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := row[order[a]], row[order[b]]
		na, nb := math.IsNaN(sa), math.IsNaN(sb)
		switch {
		case na != nb:
			return nb
		case !na && sa != sb:
			return sa > sb
		default:
			return order[a] < order[b]
		}
	})
	return order
}
