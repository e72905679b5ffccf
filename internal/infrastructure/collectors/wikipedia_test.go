package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
)

func TestWikipediaCollect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/daily/2026100200/2026101500") {
			t.Errorf("unexpected range in %s", r.URL.Path)
		}
		if strings.Contains(r.URL.Path, "/Missing_article/") {
			http.NotFound(w, r)
			return
		}
		type item struct {
			Timestamp string `json:"timestamp"`
			Views     int    `json:"views"`
		}
		var items []item
		// Served newest first to check ordering.
		for day := 15; day >= 2; day-- {
			views := 100
			if day >= 9 {
				views = 150
			}
			items = append(items, item{Timestamp: fmt.Sprintf("202610%02d00", day), Views: views})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
	defer srv.Close()

	c := NewWikipedia(newTestFetcher(0), nil)
	snap, err := c.Collect(context.Background(), collector.Request{
		Day:     time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Targets: []string{"Low back pain", "Missing_article"},
		Options: map[string]string{config.OptionBaseURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	pv, ok := snap.ReferencePageviews["Low back pain"]
	if !ok || len(snap.ReferencePageviews) != 1 {
		t.Fatalf("unexpected articles: %+v", snap.ReferencePageviews)
	}
	if pv.PriorWeekAvg != 100 || pv.CurrentWeekAvg != 150 || pv.WeekOverWeekPct == nil || *pv.WeekOverWeekPct != 50 {
		t.Fatalf("unexpected summary: %+v", pv)
	}
	if pv.Daily[0].Date != "2026-10-02" || len(pv.Daily) != 14 {
		t.Fatalf("daily series not sorted: %+v", pv.Daily[0])
	}
	if snap.ForumPosts != nil || snap.SearchMetrics != nil {
		t.Fatalf("collector must not touch other sections")
	}
}

func TestWikipediaCollectNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewWikipedia(newTestFetcher(0), nil)
	_, err := c.Collect(context.Background(), collector.Request{
		Day:     time.Now(),
		Targets: []string{"Sciatica"},
		Options: map[string]string{config.OptionBaseURL: srv.URL},
	})
	if err == nil {
		t.Fatalf("expected error when no article returned data")
	}
}

func TestSummarizePageviewsShortSeries(t *testing.T) {
	t.Parallel()

	got := summarizePageviews(nil)
	if got.CurrentWeekAvg != 0 || got.WeekOverWeekPct != nil {
		t.Fatalf("unexpected summary for empty series: %+v", got)
	}
}
