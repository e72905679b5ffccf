package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
)

const mainFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<item><title>New study links sitting to back pain - Health Daily</title><link>https://news/1</link><pubDate>Mon, 12 Oct 2026 08:00:00 GMT</pubDate></item>
<item><title>Desk yoga routine</title><link>https://news/2</link><source url="https://wellness">Wellness Weekly</source></item>
<item><title>Untitled briefing</title><link>https://news/3</link></item>
</channel></rss>`

const supplementalFeed = `<rss version="2.0"><channel>
<item><title>new study links sitting to back pain - Other Outlet</title><link>https://news/dup</link></item>
<item><title>Yoga therapy for runners - Runner World</title><link>https://news/4</link></item>
<item><title>Mobility after 40 - Longevity Now</title><link>https://news/5</link></item>
<item><title>Extra item - Feed</title><link>https://news/6</link></item>
<item><title>One too many - Feed</title><link>https://news/7</link></item>
</channel></rss>`

func TestNewsCollect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hl") != "en-US" || q.Get("ceid") != "US:en" {
			t.Errorf("unexpected feed request %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		if q.Get("q") == "back pain when:7d" {
			_, _ = w.Write([]byte(mainFeed))
			return
		}
		_, _ = w.Write([]byte(supplementalFeed))
	}))
	defer srv.Close()

	c := NewNews(newTestFetcher(0), nil)
	snap, err := c.Collect(context.Background(), collector.Request{
		Targets: []string{"back pain when:7d", "yoga therapy when:7d"},
		Options: map[string]string{config.OptionBaseURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if len(snap.News) != 6 {
		t.Fatalf("expected 3 main and 3 supplemental headlines, got %+v", snap.News)
	}
	first := snap.News[0]
	if first.Title != "New study links sitting to back pain" || first.Source != "Health Daily" || first.Date != "Mon, 12 Oct 2026 08:00:00 GMT" {
		t.Fatalf("unexpected headline %+v", first)
	}
	if second := snap.News[1]; second.Source != "Wellness Weekly" || second.Date != "Unknown" {
		t.Fatalf("source element fallback not applied: %+v", second)
	}
	if third := snap.News[2]; third.Source != "Unknown" {
		t.Fatalf("unexpected source fallback %+v", third)
	}
	if last := snap.News[5]; last.URL != "https://news/6" {
		t.Fatalf("duplicate title should not use a supplemental slot: %+v", snap.News)
	}
}

func TestNewsLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(mainFeed))
	}))
	defer srv.Close()

	c := NewNews(newTestFetcher(0), nil)
	snap, err := c.Collect(context.Background(), collector.Request{
		Targets: []string{"a", "b"},
		Options: map[string]string{config.OptionBaseURL: srv.URL, config.OptionLimit: "2"},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(snap.News) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(snap.News))
	}
}
