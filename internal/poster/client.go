// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moviemate/internal/metrics"
)

const (
	// maxBodySize bounds how much of a successful response is read.
	maxBodySize = 1 << 20

	// maxErrorBodySize bounds how much of an error response is kept.
	maxErrorBodySize = 512
)

// MovieDetails is the subset of the TMDb movie resource MovieMate uses.
type MovieDetails struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// Client is a TMDb movie-details client with a retry policy.
//
// Only GET requests are issued, so every attempt is safe to repeat. A
// request is retried on transport failures and on the configured retry
// statuses; any other non-2xx status fails immediately with *StatusError.
type Client struct {
	cfg      Config
	http     *http.Client
	logger   zerolog.Logger
	attempts atomic.Int64
}

// NewClient creates a client. A nil httpClient gets a dedicated client whose
// Timeout is cfg.Timeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Attempts returns the number of HTTP attempts issued so far.
func (c *Client) Attempts() int64 {
	return c.attempts.Load()
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Movie fetches the details of one movie.
func (c *Client) Movie(ctx context.Context, movieID int64) (*MovieDetails, error) {
	reqURL, err := c.movieURL(movieID)
	if err != nil {
		return nil, err
	}

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, err)
	}

	var details MovieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("movie %d: %w: %v", movieID, ErrInvalidResponse, err)
	}
	return &details, nil
}

func (c *Client) movieURL(movieID int64) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	base.Path += "/movie/" + strconv.FormatInt(movieID, 10)

	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// getWithRetry performs up to cfg.MaxAttempts GET attempts.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, retryAfter, err := c.get(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !c.retryable(ctx, err) || attempt == c.cfg.MaxAttempts {
			break
		}

		delay := c.backoff(attempt+1, retryAfter)
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", c.cfg.MaxAttempts).
			Dur("delay", delay).
			Msg("Retrying metadata request")

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}
	}

	if c.cfg.MaxAttempts > 1 && c.retryable(ctx, lastErr) {
		return nil, fmt.Errorf("giving up after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
	}
	return nil, lastErr
}

// get performs a single attempt. On a non-2xx response it also returns the
// server's Retry-After hint, if any.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, time.Duration, error) {
	c.attempts.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordPosterAttempt("network_error")
		return nil, 0, redact(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			metrics.RecordPosterAttempt("network_error")
			return nil, 0, fmt.Errorf("read response body: %w", err)
		}
		metrics.RecordPosterAttempt("success")
		return body, 0, nil
	}

	if c.cfg.retryStatus(resp.StatusCode) {
		metrics.RecordPosterAttempt("retryable")
	} else {
		metrics.RecordPosterAttempt("failure")
	}

	errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	return nil, parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()), &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(errBody)),
	}
}

// retryable reports whether another attempt may help. Cancellation of the
// caller's context never is.
func (c *Client) retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return c.cfg.retryStatus(statusErr.StatusCode)
	}
	return true
}

// backoff returns the wait before the given attempt (2 or later):
// BackoffFactor * 2^(attempt-2), or the server's Retry-After hint when
// enabled. The result is capped by MaxBackoff.
func (c *Client) backoff(attempt int, retryAfter time.Duration) time.Duration {
	if attempt < 2 {
		return 0
	}
	delay := c.cfg.BackoffFactor * time.Duration(1<<uint(attempt-2))
	if c.cfg.RespectRetryAfter && retryAfter > 0 {
		delay = retryAfter
	}
	if c.cfg.MaxBackoff > 0 && delay > c.cfg.MaxBackoff {
		delay = c.cfg.MaxBackoff
	}
	return delay
}

// parseRetryAfter understands both the delay-seconds and the HTTP-date form.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// redact strips the query string from transport errors so the API key never
// reaches the logs.
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: "<redacted>", Err: urlErr.Err}
	}
	u.RawQuery = ""
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
