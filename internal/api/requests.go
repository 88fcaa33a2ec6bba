// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RecommendationRequest holds the query parameters of GET /recommendations.
type RecommendationRequest struct {
	Title string `json:"title" validate:"required,notblank,max=512"`
}

func parseRecommendationRequest(r *http.Request) RecommendationRequest {
	return RecommendationRequest{Title: r.URL.Query().Get("title")}
}

// PosterRequest holds the path parameters of GET /posters/{movieID}.
type PosterRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}

// parsePosterRequest returns ok=false when the path segment is not an integer.
// Range checks are left to the validator.
func parsePosterRequest(r *http.Request) (PosterRequest, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		return PosterRequest{}, false
	}
	return PosterRequest{MovieID: id}, true
}
