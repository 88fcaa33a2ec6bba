// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import "fmt"

// DefaultK is the number of recommendations returned per title.
const DefaultK = 5

// Config holds recommender settings.
type Config struct {
	// K is the maximum number of neighbours returned.
	K int
}

// DefaultConfig returns a Config with K=DefaultK.
func DefaultConfig() *Config {
	return &Config{K: DefaultK}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("recommend.k must be positive, got %d", c.K)
	}
	return nil
}
