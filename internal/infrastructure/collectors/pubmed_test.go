package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
)

func TestPubMedCollect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/esearch.fcgi":
			if q.Get("db") != "pubmed" || q.Get("sort") != "date" || q.Get("retmax") != "2" || q.Get("term") != "sciatica exercise" {
				t.Errorf("unexpected search %s", r.URL)
			}
			_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["41000002","41000001"]}}`))
		case "/esummary.fcgi":
			if q.Get("id") != "41000002,41000001" {
				t.Errorf("unexpected summary ids %s", q.Get("id"))
			}
			_, _ = w.Write([]byte(`{"result":{"uids":["41000002","41000001"],
				"41000002":{"title":"Walking programs for sciatica.","fulljournalname":"Spine","pubdate":"2026 Oct 9"},
				"41000001":{"title":"","fulljournalname":"","pubdate":"2026 Oct"}}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewPubMed(newTestFetcher(0), nil)
	snap, err := c.Collect(context.Background(), collector.Request{
		Day:     time.Now(),
		Targets: []string{"sciatica exercise"},
		Options: map[string]string{config.OptionBaseURL: srv.URL, config.OptionLimit: "2"},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(snap.Research) != 2 {
		t.Fatalf("expected two studies, got %+v", snap.Research)
	}
	first := snap.Research[0]
	if first.Title != "Walking programs for sciatica." || first.Journal != "Spine" || first.URL != "https://pubmed.ncbi.nlm.nih.gov/41000002/" {
		t.Fatalf("unexpected study %+v", first)
	}
	if fallback := snap.Research[1]; fallback.Title != "No title" || fallback.Journal != "Unknown journal" {
		t.Fatalf("unexpected fallback study %+v", fallback)
	}
}

func TestPubMedNoResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	defer srv.Close()

	c := NewPubMed(newTestFetcher(0), nil)
	_, err := c.Collect(context.Background(), collector.Request{
		Targets: []string{"nothing"},
		Options: map[string]string{config.OptionBaseURL: srv.URL},
	})
	if err == nil {
		t.Fatalf("expected an error when no studies match")
	}
}
