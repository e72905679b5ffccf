package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/usecase"
)

func testConfig() config.Config {
	return config.Config{
		Storage:  config.StorageConfig{Driver: "sqlite", DSN: ":memory:"},
		Strategy: config.StrategyConfig{Provider: config.ProviderTemplate},
		Sources: []config.SourceConfig{
			{Name: "reddit", Collector: config.CollectorReddit, Targets: []string{"backpain"}},
			{Name: "hn", Collector: config.CollectorHackerNews, Targets: []string{"standing desk"}},
		},
		Analysis: config.AnalysisConfig{EngagementTopN: 5},
	}
}

func TestGenerators(t *testing.T) {
	t.Parallel()

	openAI := config.OpenAIConfig{Endpoint: "http://localhost", APIKey: "o"}
	cases := []struct {
		name string
		cfg  config.StrategyConfig
		want []string
	}{
		{"auto prefers anthropic then openai", config.StrategyConfig{Provider: config.ProviderAuto, AnthropicAPIKey: "a", OpenAI: openAI}, []string{"anthropic", "openai"}},
		{"auto without keys", config.StrategyConfig{Provider: config.ProviderAuto}, nil},
		{"empty provider behaves like auto", config.StrategyConfig{OpenAI: openAI}, []string{"openai"}},
		{"anthropic only", config.StrategyConfig{Provider: config.ProviderAnthropic, AnthropicAPIKey: "a", OpenAI: openAI}, []string{"anthropic"}},
		{"openai only", config.StrategyConfig{Provider: config.ProviderOpenAI, AnthropicAPIKey: "a", OpenAI: openAI}, []string{"openai"}},
		{"template ignores keys", config.StrategyConfig{Provider: config.ProviderTemplate, AnthropicAPIKey: "a"}, nil},
	}
	for _, tc := range cases {
		gens := Generators(tc.cfg)
		var names []string
		for _, g := range gens {
			names = append(names, g.Name())
		}
		if strings.Join(names, ",") != strings.Join(tc.want, ",") {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, names)
		}
	}
}

func TestRunPreviewWithSkippedSources(t *testing.T) {
	t.Parallel()

	application := New(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer application.Close()

	ctx := context.Background()
	var out bytes.Buffer
	opts := RunOptions{
		RunOptions:  usecase.RunOptions{Preview: true},
		SkipSources: []string{"reddit", config.CollectorHackerNews},
		Output:      &out,
	}

	first, err := application.Run(ctx, time.Date(2026, 10, 4, 22, 0, 0, 0, time.UTC), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Brief.Analysis.Theme != "General Pain Management" || first.Brief.StrategySource != domain.StrategySourceTemplate {
		t.Fatalf("unexpected first brief: theme %q source %q", first.Brief.Analysis.Theme, first.Brief.StrategySource)
	}
	if !strings.Contains(out.String(), "# Weekly Trend Brief #1 (2026-10-04)") {
		t.Fatalf("preview missing header:\n%s", out.String())
	}

	out.Reset()
	second, err := application.Run(ctx, time.Date(2026, 10, 11, 22, 0, 0, 0, time.UTC), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Brief.BriefNumber != 2 || second.Brief.PriorTheme != "General Pain Management" {
		t.Fatalf("second run should follow the first: #%d prior %q", second.Brief.BriefNumber, second.Brief.PriorTheme)
	}
}

func TestAnalyzeOffline(t *testing.T) {
	t.Parallel()

	application := New(testConfig(), nil)
	wow := 40.0
	brief, text, err := application.Analyze(context.Background(), AnalyzeInput{
		Current: domain.Snapshot{
			SearchMetrics: map[string]domain.KeywordMetric{
				"sciatica": {Current: 70, PriorWeek: 50, WeekOverWeekPct: &wow, FourWeekAverage: 55, TrendDirection: "rising"},
			},
		},
		Day:          time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		WithStrategy: true,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if brief.Analysis.Theme != "sciatica" || brief.Strategy == nil {
		t.Fatalf("unexpected brief: theme %q strategy %v", brief.Analysis.Theme, brief.Strategy)
	}
	if !strings.Contains(text, "*Top mover:* sciatica at 70 (+40% WoW)") {
		t.Fatalf("rendered brief missing top mover:\n%s", text)
	}
}
