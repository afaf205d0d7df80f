package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func noSleep(context.Context, time.Duration) error { return nil }

func TestAdzunaFetch_PagesAndNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("app_id"); got != "id" {
			t.Errorf("app_id = %q", got)
		}
		if got := r.URL.Query().Get("what"); got != "data engineer" {
			t.Errorf("what = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"title":        "Data Engineer",
					"company":      map[string]any{"display_name": "Acme"},
					"location":     map[string]any{"display_name": "New York, NY"},
					"description":  "Build pipelines",
					"redirect_url": "https://example.com/1",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewAdzunaClient("id", "key", "us")
	c.baseURL = srv.URL
	c.sleep = noSleep

	got, err := c.Fetch(context.Background(), Query{What: "data engineer", Where: "New York", Pages: 2, PerPage: 5})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 1 posting per page over 2 pages, got %d", len(got))
	}
	want := Posting{
		Title:       "Data Engineer",
		Company:     "Acme",
		Location:    "New York, NY",
		Description: "Build pipelines",
		URL:         "https://example.com/1",
		Source:      "adzuna",
	}
	if got[0] != want {
		t.Errorf("posting = %+v, want %+v", got[0], want)
	}
}

func TestAdzunaFetch_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"title": "Engineer"}},
		})
	}))
	defer srv.Close()

	c := NewAdzunaClient("id", "key", "us")
	c.baseURL = srv.URL
	c.sleep = noSleep

	got, err := c.Fetch(context.Background(), Query{Pages: 1, PerPage: 5})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 posting after retries, got %d", len(got))
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts (2 rate-limited), got %d", calls.Load())
	}
}

func TestAdzunaFetch_SkipsPageAfterRetryBudget(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewAdzunaClient("id", "key", "us")
	c.baseURL = srv.URL
	c.sleep = noSleep

	got, err := c.Fetch(context.Background(), Query{Pages: 1, PerPage: 5})
	if err != nil {
		t.Fatalf("Fetch should skip a dead page, got error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no postings, got %d", len(got))
	}
	if calls.Load() != int64(MaxRetries)+1 {
		t.Errorf("expected %d attempts, got %d", MaxRetries+1, calls.Load())
	}
}

func TestAdzunaFetch_NonRetryableStops(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewAdzunaClient("id", "bad-key", "us")
	c.baseURL = srv.URL
	c.sleep = noSleep

	if _, err := c.Fetch(context.Background(), Query{Pages: 1, PerPage: 5}); err != nil {
		t.Fatalf("page errors are skipped, not returned: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("401 must not be retried, got %d attempts", calls.Load())
	}
}
