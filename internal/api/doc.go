// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package api provides the MovieMate HTTP API.

Routes are served by a chi router built in SetupChi:

	GET /api/v1/health/live           liveness probe
	GET /api/v1/health/ready          readiness probe (catalog loaded)
	GET /api/v1/movies                sorted unique titles for the selector
	GET /api/v1/recommendations       ?title=... top neighbours with posters
	GET /api/v1/posters/{movieID}     resolve one poster
	GET /metrics                      Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{
	  "success": true,
	  "data": {...},
	  "metadata": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors carry a machine-readable code:

	{
	  "success": false,
	  "error": {"code": "VALIDATION_ERROR", "message": "title is required"},
	  "metadata": {...}
	}

A recommendation request that yields nothing (unknown title, misaligned
similarity data) answers 404 NO_RECOMMENDATIONS with a generic message. The
cause is only written to the server log.

Middleware:

  - Request ID and correlation ID (internal/middleware)
  - chi RealIP and Recoverer
  - CORS via go-chi/cors
  - Per-IP rate limiting via go-chi/httprate on /api/v1
  - Prometheus request metrics (internal/middleware)
*/
package api
