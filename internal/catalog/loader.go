// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// Load reads the movie table and the similarity matrix from local files and
// builds a Store.
//
// The movie table is a JSON array of {"movie_id", "title"} objects and the
// matrix is a JSON array of numeric arrays in the same order. Files whose name
// ends in ".gz" are gunzipped on the fly.
func Load(ctx context.Context, moviesPath, similarityPath string) (*Store, error) {
	var movies []Movie
	if err := decodeFile(ctx, moviesPath, &movies); err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	var matrix [][]float64
	if err := decodeFile(ctx, similarityPath, &matrix); err != nil {
		return nil, fmt.Errorf("load similarity matrix: %w", err)
	}

	store, err := NewStore(movies, matrix)
	if err != nil {
		return nil, fmt.Errorf("build catalog from %s and %s: %w", moviesPath, similarityPath, err)
	}
	return store, nil
}

func decodeFile(ctx context.Context, path string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
