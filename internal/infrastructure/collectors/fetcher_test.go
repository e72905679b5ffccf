package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(cacheSize int) *Fetcher {
	return NewFetcher(nil, FetcherOptions{UserAgent: "trend-test", CacheSize: cacheSize})
}

func TestFetcherCachesSuccessfulGets(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("User-Agent") != "trend-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	f := newTestFetcher(8)
	for range 3 {
		var out struct {
			OK bool `json:"ok"`
		}
		if err := f.GetJSON(context.Background(), srv.URL, &out); err != nil {
			t.Fatalf("get: %v", err)
		}
		if !out.OK {
			t.Fatalf("unexpected payload")
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", hits.Load())
	}
}

func TestFetcherReportsStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := newTestFetcher(0).GetJSON(context.Background(), srv.URL, &struct{}{})
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
}

func TestFetcherPostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_, _ = w.Write([]byte(`{"echo": "pong"}`))
	}))
	defer srv.Close()

	var out struct {
		Echo string `json:"echo"`
	}
	if err := newTestFetcher(0).PostJSON(context.Background(), srv.URL, map[string]string{"ping": "x"}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out.Echo != "pong" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func weeklyServer(week *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"week": %d}`, week.Load())
	}))
}

func TestFetcherCacheExpires(t *testing.T) {
	t.Parallel()

	var week atomic.Int32
	week.Store(1)
	srv := weeklyServer(&week)
	defer srv.Close()

	f := NewFetcher(srv.Client(), FetcherOptions{CacheSize: 8, CacheTTL: 50 * time.Millisecond})
	url := srv.URL + "/r/backpain/top.json?t=week"

	var out struct {
		Week int `json:"week"`
	}
	if err := f.GetJSON(context.Background(), url, &out); err != nil || out.Week != 1 {
		t.Fatalf("first get: week %d, err %v", out.Week, err)
	}

	week.Store(2)
	time.Sleep(150 * time.Millisecond)
	if err := f.GetJSON(context.Background(), url, &out); err != nil || out.Week != 2 {
		t.Fatalf("expired entry should be refetched: week %d, err %v", out.Week, err)
	}
}

func TestFetcherPurge(t *testing.T) {
	t.Parallel()

	var week atomic.Int32
	week.Store(1)
	srv := weeklyServer(&week)
	defer srv.Close()

	f := NewFetcher(srv.Client(), FetcherOptions{CacheSize: 8})
	url := srv.URL + "/r/backpain/top.json?t=week"

	var out struct {
		Week int `json:"week"`
	}
	if err := f.GetJSON(context.Background(), url, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	week.Store(2)
	if err := f.GetJSON(context.Background(), url, &out); err != nil || out.Week != 1 {
		t.Fatalf("cached body expected before purge: week %d, err %v", out.Week, err)
	}

	f.Purge()
	if err := f.GetJSON(context.Background(), url, &out); err != nil || out.Week != 2 {
		t.Fatalf("purge should force a refetch: week %d, err %v", out.Week, err)
	}
	newTestFetcher(0).Purge() // no cache configured
}
