// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"

	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/recommend"
	"github.com/tomtom215/moviemate/internal/validation"
)

// MoviesResponse lists the titles a client may ask recommendations for.
type MoviesResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// RecommendationsResponse carries the ranked neighbours of Title.
// Titles and Posters are parallel and in rank order.
type RecommendationsResponse struct {
	Title   string                     `json:"title"`
	Items   []recommend.Recommendation `json:"items"`
	Titles  []string                   `json:"titles"`
	Posters []string                   `json:"posters"`
}

// Movies handles GET /api/v1/movies.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	titles := h.catalog.Titles()
	if titles == nil {
		titles = []string{}
	}
	WriteSuccess(w, r, MoviesResponse{Titles: titles, Count: len(titles)})
}

// Recommendations handles GET /api/v1/recommendations?title=...
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseRecommendationRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	// Each poster lookup is already bounded by the client's per-attempt timeout
	// and retry budget; only a client disconnect ends the request early.
	result := h.recommender.Recommend(r.Context(), req.Title)
	if result.Empty() {
		logging.Ctx(r.Context()).Debug().Str("title", req.Title).Msg("No recommendations")
		rw.NotFound(ErrCodeNoRecommendations, msgNoRecommendations)
		return
	}

	rw.Success(RecommendationsResponse{
		Title:   req.Title,
		Items:   result.Items,
		Titles:  result.Titles(),
		Posters: result.Posters(),
	})
}
