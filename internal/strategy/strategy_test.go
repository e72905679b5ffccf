package strategy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"TrendEngine/internal/analysis"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

const validPlaybook = `{
	"theme_narrative": "Sciatica is surging.",
	"monday_video": {"title": "Sciatica: 3 Exercises", "hook": "h", "talking_points": ["a"], "exercises": [{"name": "Piriformis stretch", "form_cue": "slow"}], "end_cta": "c"},
	"wednesday_post": {"linkedin_draft": "d", "blog_title": "b", "blog_meta_description": "m"},
	"friday_card": {"stat_headline": "s", "tip": "t", "engagement_ask": "e"},
	"seo_notes": {"target_keyword": "sciatica exercises", "secondary_keywords": ["x"]}
}`

func sampleBrief() domain.Brief {
	wow := 42.0
	isNew := true
	return domain.Brief{
		GeneratedAt: time.Date(2026, 10, 11, 22, 0, 0, 0, time.UTC),
		PriorTheme:  "Neck Pain",
		Analysis: domain.Analysis{
			Theme: "sciatica",
			SearchMetrics: map[string]domain.KeywordMetric{
				"sciatica": {Current: 60, WeekOverWeekPct: &wow, TrendDirection: "rising"},
			},
			SuggestionQueries: map[string]domain.KeywordSuggestions{
				"sciatica": {Rising: []domain.SuggestionQuery{{Query: "sciatica pillow"}}},
			},
			ForumPosts: map[string][]domain.ForumPost{
				"Sciatica": {{Title: "Flare after sitting", Score: 30, Comments: 4, IsNew: &isNew}},
			},
			Questions: []domain.Question{{Question: "is walking good for sciatica"}},
			Research:  []domain.ResearchStudy{{Title: "Walking programs for sciatica", Journal: "Spine", Date: "2026 Oct"}},
			News:      []domain.NewsHeadline{{Title: "Desk yoga routine", Source: "Wellness Weekly"}},
		},
		Emerging: domain.EmergingResult{
			NewSuggestionQueries: []domain.NewSuggestionQuery{{Query: "sciatica pillow"}},
		},
		Engagement: []domain.EngagementOpportunity{{Rank: 1, Platform: "forum", Title: "Flare after sitting", EngagementScore: 0.61}},
		Seasonal:   domain.SeasonalContext{SeasonName: "Fall Reset", ContextNote: "Back to routines", SuggestedAngles: []string{"desk setup"}},
		Exercises:  []string{"Piriformis stretch", "Nerve flossing", "Figure-4 stretch"},
	}
}

func TestParsePlaybook(t *testing.T) {
	t.Parallel()

	pb, err := ParsePlaybook(validPlaybook)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pb.ThemeNarrative != "Sciatica is surging." || pb.MondayVideo.Exercises[0].Name != "Piriformis stretch" {
		t.Fatalf("unexpected playbook %+v", pb)
	}

	wrapped := "Here is the plan:\n```json\n" + validPlaybook + "\n```\nEnjoy!"
	if _, err := ParsePlaybook(wrapped); err != nil {
		t.Fatalf("wrapped output should parse: %v", err)
	}
}

func TestParsePlaybookRejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no json":      "I cannot help with that.",
		"missing keys": `{"theme_narrative": "x", "monday_video": {}}`,
		"broken":       `{"theme_narrative": `,
	}
	for name, raw := range cases {
		if _, err := ParsePlaybook(raw); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := ParsePlaybook(`{"theme_narrative": "x", "monday_video": {}}`)
	if err == nil || !strings.Contains(err.Error(), "friday_card, seo_notes") {
		t.Fatalf("missing keys should be listed, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(sampleBrief(), analysis.TopicSolutions)
	for _, want := range []string{
		"THIS WEEK'S THEME: sciatica",
		"SEASONAL CONTEXT (Fall Reset)",
		"sciatica: sciatica pillow",
		"  - Sciatica: Flare after sitting (score 30, 4 comments) [NEW]",
		"QUESTIONS:\n  - is walking good for sciatica",
		"New rising queries: sciatica pillow",
		"Last week's theme was 'Neck Pain'",
		`"contraindication": "Recent hip replacement"`,
		"ENGAGEMENT OPPORTUNITIES",
		"NEW RESEARCH:\n  - Walking programs for sciatica (Spine, 2026 Oct)",
		"IN THE NEWS:\n  - Desk yoga routine (Wellness Weekly)",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "REFERENCE ARTICLE TRAFFIC") || strings.Contains(prompt, "LIFESTYLE LEADS") || strings.Contains(prompt, "first weekly run") {
		t.Fatalf("absent sections should be skipped")
	}
	if !strings.HasSuffix(prompt, outputSchema) {
		t.Fatalf("schema should come last")
	}
}

func TestTemplatePlaybook(t *testing.T) {
	t.Parallel()

	pb := TemplatePlaybook(sampleBrief(), analysis.TopicSolutions)
	if pb.MondayVideo.Title != "Sciatica: 3 Exercises That Actually Work (2026)" {
		t.Fatalf("unexpected title %q", pb.MondayVideo.Title)
	}
	if ex := pb.MondayVideo.Exercises[0]; ex.Sets != "3x30s each side" || ex.FormCue != ex.Sets || ex.Contraindication == "" {
		t.Fatalf("protocol detail not used: %+v", ex)
	}
	if pb.FridayCard.Tip != "Start with Piriformis stretch, 30 seconds, twice a day." {
		t.Fatalf("unexpected tip %q", pb.FridayCard.Tip)
	}
	if len(pb.EngagementReplies) != 1 || pb.EngagementReplies[0].PostTitle != "Flare after sitting" {
		t.Fatalf("unexpected replies %+v", pb.EngagementReplies)
	}
	if len([]rune(pb.WednesdayPost.BlogMetaDescription)) > metaDescriptionLimit {
		t.Fatalf("meta description too long")
	}
}

func TestTemplatePlaybookWithoutProtocol(t *testing.T) {
	t.Parallel()

	brief := domain.Brief{Analysis: domain.Analysis{Theme: "runner's knee"}}
	pb := TemplatePlaybook(brief, analysis.TopicSolutions)
	if pb.MondayVideo.Exercises[0].Name != "Terminal knee extension" || pb.MondayVideo.Exercises[0].FormCue != formCuePlaceholder {
		t.Fatalf("unexpected exercises %+v", pb.MondayVideo.Exercises)
	}
	if !strings.HasPrefix(pb.MondayVideo.Title, "Runner's Knee: 4 Exercises") {
		t.Fatalf("unexpected title %q", pb.MondayVideo.Title)
	}
	if pb.EngagementReplies[0].PostTitle != "[Top engagement opportunity title]" {
		t.Fatalf("expected placeholder reply")
	}
}

type scriptedGenerator struct {
	name    string
	outputs []string
	errs    []error
	calls   int
}

func (s *scriptedGenerator) Name() string { return s.name }

func (s *scriptedGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.outputs) {
		return s.outputs[i], nil
	}
	return "", errors.New("exhausted")
}

func TestPlannerRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{name: "anthropic", errs: []error{errors.New("overloaded")}, outputs: []string{"", validPlaybook}}
	pb, source := NewPlanner([]ports.StrategyGenerator{gen}, analysis.TopicSolutions, nil).Plan(context.Background(), sampleBrief())
	if source != "anthropic" || pb == nil || gen.calls != 2 {
		t.Fatalf("expected generated playbook on retry, got %s after %d calls", source, gen.calls)
	}
}

func TestPlannerFallsBack(t *testing.T) {
	t.Parallel()

	bad := &scriptedGenerator{name: "anthropic", outputs: []string{"nope", "still nope"}}
	down := &scriptedGenerator{name: "openai", errs: []error{errors.New("down"), errors.New("down")}}
	pb, source := NewPlanner([]ports.StrategyGenerator{bad, down}, analysis.TopicSolutions, nil).Plan(context.Background(), sampleBrief())
	if source != domain.StrategySourceTemplate || pb == nil {
		t.Fatalf("expected template fallback, got %s", source)
	}
	if bad.calls != 2 || down.calls != 2 {
		t.Fatalf("each generator should get two attempts, got %d and %d", bad.calls, down.calls)
	}

	_, source = NewPlanner(nil, analysis.TopicSolutions, nil).Plan(context.Background(), sampleBrief())
	if source != domain.StrategySourceTemplate {
		t.Fatalf("no generators should template, got %s", source)
	}
}
