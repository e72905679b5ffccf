package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"TrendEngine/internal/config"
)

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	text := "aaaa\nbbbb\ncccccccccc\n"
	got := SplitMessage(text, 6)
	want := []string{"aaaa\n", "bbbb\n", "cccccc", "cccc\n"}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if strings.Join(got, "") != text {
		t.Fatalf("chunks should reassemble the text")
	}

	if got := SplitMessage("short", MaxMessageLength); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short text should be a single chunk: %q", got)
	}
}

func TestPublishBrief(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		texts []string
		modes []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("chat_id") != "42" {
			t.Errorf("unexpected chat id %q", r.PostForm.Get("chat_id"))
		}
		mu.Lock()
		defer mu.Unlock()
		texts = append(texts, r.PostForm.Get("text"))
		modes = append(modes, r.PostForm.Get("parse_mode"))
		if strings.Contains(r.PostForm.Get("text"), "bad_markdown") && r.PostForm.Get("parse_mode") != "" {
			http.Error(w, `{"ok":false}`, http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	n := NewNotifier(config.TelegramConfig{BotToken: "TOKEN", ChatID: "42", APIBase: srv.URL + "/"})
	brief := strings.Repeat("line\n", 1000) + "bad_markdown\n"
	if err := n.PublishBrief(context.Background(), brief); err != nil {
		t.Fatalf("publish: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	// 5000 runes of lines fit in two chunks; the second is retried as plain text.
	if len(texts) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(texts))
	}
	if modes[0] != "Markdown" || modes[1] != "Markdown" || modes[2] != "" {
		t.Fatalf("unexpected parse modes %q", modes)
	}
	if texts[0]+texts[2] != brief {
		t.Fatalf("sent chunks should cover the brief")
	}
}

func TestPublishBriefErrors(t *testing.T) {
	t.Parallel()

	if err := NewNotifier(config.TelegramConfig{}).PublishBrief(context.Background(), "x"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewNotifier(config.TelegramConfig{BotToken: "t", ChatID: "c", APIBase: srv.URL})
	err := n.PublishBrief(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
