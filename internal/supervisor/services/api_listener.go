// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// APIServer is the part of *http.Server the API listener drives.
type APIServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// APIListenerService serves the MovieMate chi router from the api-layer
// supervisor.
//
// A listener that dies on its own is reported as an error so suture restarts
// it; the poster memo lives outside the listener and survives the restart.
// On a supervisor stop the listener drains in-flight recommendation requests
// for up to drainTimeout, then runs the release hooks (main registers the
// poster client's Close there).
type APIListenerService struct {
	server       APIServer
	addr         string
	drainTimeout time.Duration
	logger       zerolog.Logger
	onDrained    []func()
	starts       atomic.Int32
}

// NewAPIListenerService wraps server, which listens on addr. A non-positive
// drainTimeout defaults to 10 seconds.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAPIListenerService(server APIServer, addr string, drainTimeout time.Duration, logger zerolog.Logger) *APIListenerService {
	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	return &APIListenerService{
		server:       server,
		addr:         addr,
		drainTimeout: drainTimeout,
		logger:       logger.With().Str("service", "api-listener").Str("addr", addr).Logger(),
	}
}

// OnDrained registers fn to run after a graceful drain. Hooks run in
// registration order and must be safe to call more than once.
func (s *APIListenerService) OnDrained(fn func()) {
	s.onDrained = append(s.onDrained, fn)
}

// Starts reports how many times Serve has been entered.
func (s *APIListenerService) Starts() int {
	return int(s.starts.Load())
}

// Serve implements suture.Service.
func (s *APIListenerService) Serve(ctx context.Context) error {
	if n := s.starts.Add(1); n > 1 {
		s.logger.Warn().Int32("start", n).Msg("Restarting API listener")
	} else {
		s.logger.Info().Msg("API listener starting")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api listener on %s failed: %w", s.addr, err)
		}
		return fmt.Errorf("api listener on %s closed without a stop request", s.addr)

	case <-ctx.Done():
		start := time.Now()
		// ctx is already done, so the drain gets its own deadline.
		drainCtx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
		defer cancel()

		if err := s.server.Shutdown(drainCtx); err != nil {
			s.logger.Error().Err(err).Dur("drain_timeout", s.drainTimeout).Msg("API listener did not drain in time")
			return fmt.Errorf("api listener drain failed: %w", err)
		}
		<-errCh

		for _, fn := range s.onDrained {
			fn()
		}
		s.logger.Info().Dur("drained_in", time.Since(start)).Msg("API listener drained")
		return ctx.Err()
	}
}

// String names the service in supervisor logs.
func (s *APIListenerService) String() string {
	return "api-listener"
}
