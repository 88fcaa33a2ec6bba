// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/moviemate/internal/poster"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// posterTimeout bounds a single poster lookup.
const posterTimeout = 30 * time.Second

// Recommender produces ranked neighbours for a title. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, title string) recommend.Result
}

// Catalog exposes the selectable titles. *catalog.Store implements it.
type Catalog interface {
	Len() int
	Titles() []string
}

// PosterResolver resolves one poster. *poster.Resolver implements it.
type PosterResolver interface {
	Resolve(ctx context.Context, movieID int64) poster.Outcome
}

// Handler serves the MovieMate endpoints.
type Handler struct {
	recommender Recommender
	catalog     Catalog
	posters     PosterResolver
	startTime   time.Time
}

// NewHandler creates a Handler. All dependencies are required.
func NewHandler(recommender Recommender, catalog Catalog, posters PosterResolver) (*Handler, error) {
	switch {
	case recommender == nil:
		return nil, errors.New("recommender is required")
	case catalog == nil:
		return nil, errors.New("catalog is required")
	case posters == nil:
		return nil, errors.New("poster resolver is required")
	}

	return &Handler{
		recommender: recommender,
		catalog:     catalog,
		posters:     posters,
		startTime:   time.Now(),
	}, nil
}
