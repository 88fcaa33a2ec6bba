// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests. It always answers 200 while
// the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 503 until the catalog holds at least one movie.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	movies := h.catalog.Len()
	ready := movies > 0

	data := map[string]interface{}{
		"ready":  ready,
		"movies": movies,
		"uptime": time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog not loaded", data)
		return
	}
	rw.Success(data)
}
