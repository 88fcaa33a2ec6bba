// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package services holds the suture.Service implementations run by the
// MovieMate supervisor tree.
//
// Every service follows the suture v4 contract: Serve blocks until its
// context is canceled, returns ctx.Err() on a clean stop and any other error
// to request a restart. String names the service in supervisor logs.
package services
