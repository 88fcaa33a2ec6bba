// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviemate/internal/logging"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}

	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Error != nil {
		t.Errorf("expected success envelope, got %+v", resp)
	}
	if resp.Metadata == nil || resp.Metadata.RequestID != "req-42" {
		t.Errorf("expected request ID in metadata, got %+v", resp.Metadata)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("expected timestamp in metadata")
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad request",
			write:      func(rw *ResponseWriter) { rw.BadRequest(ErrCodeInvalidMovieID, "bad id") },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeInvalidMovieID,
		},
		{
			name:       "not found",
			write:      func(rw *ResponseWriter) { rw.NotFound(ErrCodeNoRecommendations, msgNoRecommendations) },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNoRecommendations,
		},
		{
			name:       "validation",
			write:      func(rw *ResponseWriter) { rw.ValidationError("title is required", map[string]string{"field": "title"}) },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "rate limited",
			write:      func(rw *ResponseWriter) { rw.TooManyRequests("slow down") },
			wantStatus: http.StatusTooManyRequests,
			wantCode:   ErrCodeTooManyRequests,
		},
		{
			name:       "unavailable",
			write:      func(rw *ResponseWriter) { rw.ServiceUnavailable("not ready") },
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp APIResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Success {
				t.Error("expected success=false")
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %+v", tt.wantCode, resp.Error)
			}
		})
	}
}
