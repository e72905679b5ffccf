package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"TrendEngine/internal/config"
)

type fakeMessages struct {
	response *anthropic.Message
	err      error
	calls    []anthropic.MessageNewParams
}

func (f *fakeMessages) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestAnthropicGenerate(t *testing.T) {
	t.Parallel()

	fake := &fakeMessages{response: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: `{"theme_narrative":`},
			{Type: "thinking", Text: "ignored"},
			{Type: "text", Text: `"x"}`},
		},
	}}
	gen := NewAnthropicGeneratorWithClient(fake, "claude-sonnet-4-5-20250929", 0)

	out, err := gen.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"theme_narrative":"x"}` {
		t.Fatalf("unexpected output %q", out)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(fake.calls))
	}
	call := fake.calls[0]
	if call.MaxTokens != defaultMaxTokens || string(call.Model) != "claude-sonnet-4-5-20250929" {
		t.Fatalf("unexpected params %+v", call)
	}
	if len(call.System) != 1 || call.System[0].Text != "system prompt" {
		t.Fatalf("system prompt not forwarded")
	}
}

func TestAnthropicGenerateErrors(t *testing.T) {
	t.Parallel()

	failing := NewAnthropicGeneratorWithClient(&fakeMessages{err: errors.New("overloaded")}, "m", 100)
	if _, err := failing.Generate(context.Background(), "", "p"); err == nil {
		t.Fatalf("expected API error")
	}

	empty := NewAnthropicGeneratorWithClient(&fakeMessages{response: &anthropic.Message{}}, "m", 100)
	if _, err := empty.Generate(context.Background(), "", "p"); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		var body struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.Model != "gpt-4o-mini" || len(body.Messages) != 2 || body.Messages[1]["content"] != "plan my week" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(config.StrategyConfig{
		OpenAI: config.OpenAIConfig{Endpoint: srv.URL, Model: "gpt-4o-mini", APIKey: "sk-test"},
	})
	out, err := gen.Generate(context.Background(), "", "plan my week")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenAIGenerateFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(config.StrategyConfig{
		OpenAI: config.OpenAIConfig{Endpoint: srv.URL, Model: "m", APIKey: "k"},
	})
	if _, err := gen.Generate(context.Background(), "", "p"); err == nil {
		t.Fatalf("expected status error")
	}

	if _, err := NewOpenAIGenerator(config.StrategyConfig{}).Generate(context.Background(), "", "p"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}
