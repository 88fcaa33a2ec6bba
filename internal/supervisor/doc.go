// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package supervisor provides process supervision for MovieMate using suture v4.

The supervisor tree keeps long-running services in two layers so a failure in
one layer never restarts the other:

	RootSupervisor ("moviemate")
	├── APISupervisor ("api-layer")
	│   └── APIListenerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── StatsReporterService

Crashed services are restarted with backoff. Context cancellation triggers an
orderly shutdown bounded by TreeConfig.ShutdownTimeout, and
UnstoppedServiceReport lists anything that failed to stop in time.

Supervisor events are logged through sutureslog, fed by the zerolog-backed
slog handler from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	listener := services.NewAPIListenerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger())
	listener.OnDrained(resolver.Close)
	tree.AddAPIService(listener)
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
