// MovieMate - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Collectors are process-global, so assertions compare deltas.

func TestRecordPosterFetch(t *testing.T) {
	before := testutil.ToFloat64(PosterFetchTotal.WithLabelValues("no_poster"))
	RecordPosterFetch("no_poster", 120*time.Millisecond)
	after := testutil.ToFloat64(PosterFetchTotal.WithLabelValues("no_poster"))

	if after-before != 1 {
		t.Errorf("poster_fetch_total{kind=no_poster} grew by %v, want 1", after-before)
	}
}

func TestRecordPosterCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(PosterCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(PosterCacheLookups.WithLabelValues("miss"))

	RecordPosterCacheLookup(true)
	RecordPosterCacheLookup(false)
	RecordPosterCacheLookup(false)

	if d := testutil.ToFloat64(PosterCacheLookups.WithLabelValues("hit")) - hits; d != 1 {
		t.Errorf("hit delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(PosterCacheLookups.WithLabelValues("miss")) - misses; d != 2 {
		t.Errorf("miss delta = %v, want 2", d)
	}
}

func TestSetPosterCacheEntries(t *testing.T) {
	SetPosterCacheEntries(42)
	if got := testutil.ToFloat64(PosterCacheEntries); got != 42 {
		t.Errorf("poster_cache_entries = %v, want 42", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues("not_found"))
	RecordRecommendation("not_found", time.Millisecond)
	if d := testutil.ToFloat64(RecommendRequests.WithLabelValues("not_found")) - before; d != 1 {
		t.Errorf("recommend_requests_total delta = %v, want 1", d)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies", "200"))
	RecordAPIRequest("GET", "/api/v1/movies", "200", 5*time.Millisecond)
	if d := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies", "200")) - before; d != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", d)
	}
}
