// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package poster

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
)

// Kind says how a poster URL was obtained. Every kind other than KindOK maps
// to a placeholder URL.
type Kind int

const (
	KindOK Kind = iota
	KindNoPoster
	KindNotFound
	KindClientError
	KindNetworkError
	KindServerError
	KindInvalidResponse
	KindCircuitOpen
)

var kindNames = [...]string{
	KindOK:              "ok",
	KindNoPoster:        "no_poster",
	KindNotFound:        "not_found",
	KindClientError:     "client_error",
	KindNetworkError:    "network_error",
	KindServerError:     "server_error",
	KindInvalidResponse: "invalid_response",
	KindCircuitOpen:     "circuit_open",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText lets Kind appear by name in JSON responses.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown poster kind %q", text)
}

// Placeholder reports whether the kind resolves to a placeholder image.
func (k Kind) Placeholder() bool {
	return k != KindOK
}

// ErrInvalidResponse wraps a body that could not be decoded.
var ErrInvalidResponse = errors.New("invalid metadata response")

// StatusError is a non-2xx response from the metadata API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("metadata request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("metadata request failed with status %d: %s", e.StatusCode, e.Body)
}

// Classify maps an error returned by a MovieFetcher to a Kind. A nil error
// is KindOK.
func Classify(err error) Kind {
	if err == nil {
		return KindOK
	}

	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			return KindNotFound
		case statusErr.StatusCode == http.StatusTooManyRequests, statusErr.StatusCode >= 500:
			return KindServerError
		default:
			return KindClientError
		}
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return KindCircuitOpen
	case errors.Is(err, ErrInvalidResponse):
		return KindInvalidResponse
	}

	// Transport failures, timeouts and anything unrecognised.
	return KindNetworkError
}
