// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package main is the entry point for the MovieMate server.

MovieMate answers "movies like this one" from a precomputed similarity matrix
and decorates each recommendation with a poster resolved through the TMDb
movie-details API.

# Application Architecture

	RootSupervisor ("moviemate")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server (chi router)
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── Stats reporter

Component initialization order:

 1. Configuration: koanf v2 (defaults, YAML file, environment, optional .env)
 2. Logging: zerolog with JSON or console output
 3. Catalog: movie records and similarity matrix loaded from JSON artifacts
 4. Poster resolver: TMDb client with retries, circuit breaker and memo cache
 5. Recommendation engine
 6. Supervisor tree with the HTTP server and stats reporter

# Configuration

The most common environment variables:

	TMDB_API_KEY      TMDb v3 API key (posters fall back to placeholders without it)
	MOVIES_PATH       movie records artifact (default data/movies.json)
	SIMILARITY_PATH   similarity matrix artifact (default data/similarity.json)
	HTTP_PORT         listen port (default 8501)
	LOG_LEVEL         trace, debug, info, warn, error (default info)
	CONFIG_PATH       optional YAML config file

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor then shuts the
HTTP server down gracefully within server.shutdown_timeout.
*/
package main
