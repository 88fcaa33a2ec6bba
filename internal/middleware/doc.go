// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package middleware provides HTTP middleware shared by the MovieMate API.

Key Components:

  - RequestID: assigns an X-Request-ID and a correlation ID to every request
    and stores both in the request context for the logging package
  - PrometheusMetrics: records request counts, latency and in-flight requests

Both components use the func(http.Handler) http.Handler shape so they can be
mounted directly with chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/recommendations", h.Recommendations)
	})

PrometheusMetrics labels requests with the matched chi route pattern rather
than the raw URL path, so /api/v1/posters/{movieID} is one series no matter
how many movie IDs are requested. Requests that never matched a route are
labelled "unmatched".
*/
package middleware
