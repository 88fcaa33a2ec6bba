// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moviemate/internal/poster"
	"github.com/tomtom215/moviemate/internal/recommend"
)

type mockRecommender struct {
	mu        sync.Mutex
	result    recommend.Result
	titles    []string
	deadlines []bool
}

func (m *mockRecommender) Recommend(ctx context.Context, title string) recommend.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles = append(m.titles, title)
	_, hasDeadline := ctx.Deadline()
	m.deadlines = append(m.deadlines, hasDeadline)
	return m.result
}

type mockCatalog struct {
	titles []string
}

func (m *mockCatalog) Len() int         { return len(m.titles) }
func (m *mockCatalog) Titles() []string { return m.titles }

type mockPosters struct {
	outcome poster.Outcome
}

func (m *mockPosters) Resolve(_ context.Context, id int64) poster.Outcome {
	out := m.outcome
	out.MovieID = id
	return out
}

func newTestHandler(t *testing.T, rec Recommender, cat Catalog, posters PosterResolver) *Handler {
	t.Helper()
	h, err := NewHandler(rec, cat, posters)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", body["error"])
	}
	code, _ := errObj["code"].(string)
	return code
}

func sampleResult() recommend.Result {
	return recommend.Result{Items: []recommend.Recommendation{
		{Rank: 1, MovieID: 101, Title: "Beta", Score: 0.9, Poster: "https://img.test/101.jpg", PosterKind: poster.KindOK},
		{Rank: 2, MovieID: 103, Title: "Delta", Score: 0.9, Poster: poster.DefaultNoPosterURL, PosterKind: poster.KindNoPoster},
	}}
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(nil, &mockCatalog{}, &mockPosters{}); err == nil {
		t.Error("expected error for nil recommender")
	}
	if _, err := NewHandler(&mockRecommender{}, nil, &mockPosters{}); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := NewHandler(&mockRecommender{}, &mockCatalog{}, nil); err == nil {
		t.Error("expected error for nil poster resolver")
	}
}

func TestRecommendations_Success(t *testing.T) {
	t.Parallel()

	mr := &mockRecommender{result: sampleResult()}
	h := newTestHandler(t, mr, &mockCatalog{}, &mockPosters{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?title=%23Alpha", nil)
	rec := httptest.NewRecorder()
	h.Recommendations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                    `json:"success"`
		Data    RecommendationsResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Data.Title != "#Alpha" {
		t.Errorf("expected echoed title #Alpha, got %q", resp.Data.Title)
	}
	if got := strings.Join(resp.Data.Titles, ","); got != "Beta,Delta" {
		t.Errorf("unexpected titles %q", got)
	}
	if len(resp.Data.Posters) != 2 || resp.Data.Posters[1] != poster.DefaultNoPosterURL {
		t.Errorf("unexpected posters %v", resp.Data.Posters)
	}
	if len(mr.titles) != 1 || mr.titles[0] != "#Alpha" {
		t.Errorf("recommender called with %v", mr.titles)
	}
}

func TestRecommendations_NoHandlerDeadline(t *testing.T) {
	t.Parallel()

	mr := &mockRecommender{result: sampleResult()}
	h := newTestHandler(t, mr, &mockCatalog{}, &mockPosters{})

	rec := httptest.NewRecorder()
	h.Recommendations(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?title=Alpha", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if len(mr.deadlines) != 1 || mr.deadlines[0] {
		t.Errorf("recommender context deadlines = %v, want none", mr.deadlines)
	}
}

func TestRecommendations_EmptyResult(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &mockRecommender{result: recommend.Result{Items: []recommend.Recommendation{}}}, &mockCatalog{}, &mockPosters{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?title=Unknown", nil)
	rec := httptest.NewRecorder()
	h.Recommendations(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Error("expected success=false")
	}
	if code := errorCode(t, body); code != ErrCodeNoRecommendations {
		t.Errorf("expected %s, got %s", ErrCodeNoRecommendations, code)
	}
}

func TestRecommendations_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing", query: ""},
		{name: "blank", query: "?title=%20%20"},
		{name: "too_long", query: "?title=" + strings.Repeat("a", 513)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mr := &mockRecommender{result: sampleResult()}
			h := newTestHandler(t, mr, &mockCatalog{}, &mockPosters{})

			rec := httptest.NewRecorder()
			h.Recommendations(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations"+tt.query, nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			if code := errorCode(t, decodeEnvelope(t, rec)); code != ErrCodeValidationFailed {
				t.Errorf("expected %s, got %s", ErrCodeValidationFailed, code)
			}
			if len(mr.titles) != 0 {
				t.Error("recommender must not be called for invalid input")
			}
		})
	}
}

func TestMovies(t *testing.T) {
	t.Parallel()

	t.Run("lists titles", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(t, &mockRecommender{}, &mockCatalog{titles: []string{"Alpha", "Beta"}}, &mockPosters{})

		rec := httptest.NewRecorder()
		h.Movies(rec, httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))

		var resp struct {
			Data MoviesResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Data.Count != 2 || strings.Join(resp.Data.Titles, ",") != "Alpha,Beta" {
			t.Errorf("unexpected movies response %+v", resp.Data)
		}
	})

	t.Run("empty catalog yields empty list", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(t, &mockRecommender{}, &mockCatalog{}, &mockPosters{})

		rec := httptest.NewRecorder()
		h.Movies(rec, httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))

		if !strings.Contains(rec.Body.String(), `"titles":[]`) {
			t.Errorf("expected empty titles array, got %s", rec.Body.String())
		}
	})
}

func TestPoster(t *testing.T) {
	t.Parallel()

	posters := &mockPosters{outcome: poster.Outcome{URL: "https://img.test/p.jpg", Kind: poster.KindOK}}

	tests := []struct {
		name       string
		movieID    string
		wantStatus int
	}{
		{name: "valid", movieID: "550", wantStatus: http.StatusOK},
		{name: "non_numeric", movieID: "abc", wantStatus: http.StatusBadRequest},
		{name: "zero", movieID: "0", wantStatus: http.StatusBadRequest},
		{name: "negative", movieID: "-4", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, &mockRecommender{}, &mockCatalog{}, posters)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/posters/"+tt.movieID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("movieID", tt.movieID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			h.Poster(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			if tt.wantStatus != http.StatusOK {
				if code := errorCode(t, body); code != ErrCodeInvalidMovieID {
					t.Errorf("expected %s, got %s", ErrCodeInvalidMovieID, code)
				}
				return
			}
			data := body["data"].(map[string]interface{})
			if data["kind"] != "ok" || data["url"] != "https://img.test/p.jpg" || data["movie_id"] != float64(550) {
				t.Errorf("unexpected poster data %v", data)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(t, &mockRecommender{}, &mockCatalog{}, &mockPosters{})
		rec := httptest.NewRecorder()
		h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("ready with catalog", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(t, &mockRecommender{}, &mockCatalog{titles: []string{"Alpha"}}, &mockPosters{})
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}
		data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
		if data["movies"] != float64(1) {
			t.Errorf("expected movies=1, got %v", data["movies"])
		}
	})

	t.Run("not ready without catalog", func(t *testing.T) {
		t.Parallel()
		h := newTestHandler(t, &mockRecommender{}, &mockCatalog{}, &mockPosters{})
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
		}
	})
}
