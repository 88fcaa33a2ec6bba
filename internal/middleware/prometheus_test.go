// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/moviemate/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	t.Run("labels requests with the route pattern", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/test/items/{itemID}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test/items/{itemID}", "200")
		before := testutil.ToFloat64(counter)

		for _, id := range []string{"1", "2", "3"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/items/"+id, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		}

		if got := testutil.ToFloat64(counter) - before; got != 3 {
			t.Errorf("expected 3 requests on one series, got %v", got)
		}
	})

	t.Run("captures error status", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Post("/test/fail", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		})

		counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/test/fail", "500")
		before := testutil.ToFloat64(counter)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test/fail", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("expected 1 request recorded, got %v", got)
		}
	})

	t.Run("uses unmatched label outside chi", func(t *testing.T) {
		t.Parallel()
		handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPut, unmatchedRoute, "418")
		before := testutil.ToFloat64(counter)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/anything", nil))

		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("expected 1 unmatched request, got %v", got)
		}
	})
}

func TestMetricsResponseWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("expected first status to win, got %d", rw.statusCode)
	}
	if rw.Unwrap() != rec {
		t.Error("expected Unwrap to return the underlying writer")
	}
}
