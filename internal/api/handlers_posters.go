// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/moviemate/internal/validation"
)

// Poster handles GET /api/v1/posters/{movieID}. Lookup failures are not
// errors here: the outcome carries a placeholder URL and its kind.
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, ok := parsePosterRequest(r)
	if !ok {
		rw.BadRequest(ErrCodeInvalidMovieID, "movie_id must be an integer")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.BadRequest(ErrCodeInvalidMovieID, "movie_id must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), posterTimeout)
	defer cancel()

	rw.Success(h.posters.Resolve(ctx, req.MovieID))
}
