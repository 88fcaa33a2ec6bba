// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultStatsInterval is used when no positive interval is configured.
const DefaultStatsInterval = 5 * time.Minute

// StatsFunc returns a snapshot of counters to log.
type StatsFunc func() map[string]interface{}

// StatsReporterService periodically logs runtime counters such as the
// recommendation totals and poster cache hit rate.
type StatsReporterService struct {
	stats    StatsFunc
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStatsReporterService creates the reporter.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsReporterService(stats StatsFunc, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &StatsReporterService{
		stats:    stats,
		interval: interval,
		logger:   logger.With().Str("service", "stats").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service. A final snapshot is logged on shutdown.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("stats reporter running")

	for {
		select {
		case <-ctx.Done():
			s.report("final runtime stats")
			return ctx.Err()

		case <-ticker.C:
			s.report("runtime stats")
		}
	}
}

func (s *StatsReporterService) report(msg string) {
	if s.stats == nil {
		return
	}
	s.logger.Info().Fields(s.stats()).Msg(msg)
}

// String implements fmt.Stringer for suture logging.
func (s *StatsReporterService) String() string {
	return s.name
}
