// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/moviemate/internal/poster"
)

// ErrTitleNotFound is returned when no movie record carries the requested title.
var ErrTitleNotFound = errors.New("title not found")

// PosterSource resolves a movie id to a display-ready poster. It never fails;
// *poster.Resolver is the production implementation.
type PosterSource interface {
	Resolve(ctx context.Context, movieID int64) poster.Outcome
}

// Recommendation is one ranked neighbour of the query movie.
type Recommendation struct {
	// Rank is 1-based among the returned neighbours.
	Rank       int         `json:"rank"`
	Index      int         `json:"-"`
	MovieID    int64       `json:"movie_id"`
	Title      string      `json:"title"`
	Score      float64     `json:"score"`
	Poster     string      `json:"poster"`
	PosterKind poster.Kind `json:"poster_kind"`
}

// Result is the outcome of a recommendation request. An empty Result is the
// soft-failure value.
type Result struct {
	Items []Recommendation `json:"items"`
}

// Empty reports whether the result has no items.
func (r Result) Empty() bool {
	return len(r.Items) == 0
}

// Titles returns the recommended titles in ranked order. Never nil.
func (r Result) Titles() []string {
	out := make([]string, len(r.Items))
	for i := range r.Items {
		out[i] = r.Items[i].Title
	}
	return out
}

// Posters returns the poster URLs parallel to Titles. Never nil.
func (r Result) Posters() []string {
	out := make([]string, len(r.Items))
	for i := range r.Items {
		out[i] = r.Items[i].Poster
	}
	return out
}
