// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package catalog holds the read-only similarity store: the movie records and
// the precomputed pairwise similarity matrix, indexed identically.
//
// A Store is built once at startup and never mutated afterwards, so it can be
// shared freely between request goroutines.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TitleMarker is the single leading character stripped from titles at load time.
const TitleMarker = "#"

var (
	// ErrShapeMismatch is returned when the matrix does not line up with the records.
	ErrShapeMismatch = errors.New("similarity matrix does not match movie records")

	// ErrRowOutOfRange is returned for an index outside the store.
	ErrRowOutOfRange = errors.New("movie index out of range")

	// ErrEmptyCatalog is returned when no movie records were supplied.
	ErrEmptyCatalog = errors.New("catalog has no movies")
)

// Movie is one movie record. ID is the external metadata provider's id.
type Movie struct {
	ID    int64  `json:"movie_id"`
	Title string `json:"title"`
}

// Store is the immutable similarity store.
type Store struct {
	movies []Movie
	matrix [][]float64
	titles []string
}

// NormalizeTitle strips one leading TitleMarker. Applying it twice to a title
// that started with a single marker is the same as applying it once.
func NormalizeTitle(title string) string {
	return strings.TrimPrefix(title, TitleMarker)
}

// NewStore normalizes every title and checks that there is exactly one
// matrix row per record. Row widths are checked lazily by Row.
func NewStore(movies []Movie, matrix [][]float64) (*Store, error) {
	if len(movies) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(matrix) != len(movies) {
		return nil, fmt.Errorf("%w: %d rows for %d movies", ErrShapeMismatch, len(matrix), len(movies))
	}

	normalized := make([]Movie, len(movies))
	for i, m := range movies {
		normalized[i] = Movie{ID: m.ID, Title: NormalizeTitle(m.Title)}
	}

	return &Store{
		movies: normalized,
		matrix: matrix,
		titles: uniqueSortedTitles(normalized),
	}, nil
}

// Len returns the number of movies.
func (s *Store) Len() int {
	return len(s.movies)
}

// Movie returns the record at index i.
func (s *Store) Movie(i int) (Movie, error) {
	if i < 0 || i >= len(s.movies) {
		return Movie{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return s.movies[i], nil
}

// IndexOf returns the index of the first record whose normalized title
// equals title exactly. The input itself is not normalized.
func (s *Store) IndexOf(title string) (int, bool) {
	for i := range s.movies {
		if s.movies[i].Title == title {
			return i, true
		}
	}
	return -1, false
}

// Row returns the similarity row for index i. The returned slice is shared
// with the store and must not be modified.
func (s *Store) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(s.matrix) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	row := s.matrix[i]
	if len(row) != len(s.movies) {
		return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), len(s.movies))
	}
	return row, nil
}

// Titles returns the distinct titles in ascending order.
func (s *Store) Titles() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

func uniqueSortedTitles(movies []Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.Title]; ok {
			continue
		}
		seen[m.Title] = struct{}{}
		titles = append(titles, m.Title)
	}
	sort.Strings(titles)
	return titles
}
