package rendering

import (
	"strings"
	"testing"
	"time"

	"TrendEngine/internal/domain"
)

func TestMarkdownRender(t *testing.T) {
	t.Parallel()

	wow := 25.0
	brief := domain.Brief{
		BriefNumber: 3,
		GeneratedAt: time.Date(2026, 10, 11, 22, 0, 0, 0, time.UTC),
		PriorTheme:  "Neck Pain",
		Analysis: domain.Analysis{
			Theme:    "Sciatica",
			TopMover: &domain.TopMover{Keyword: "sciatica", Current: 60, WeekOverWeekPct: 25},
			GroupRankings: []domain.GroupRanking{
				{Label: "Sciatica & Nerve", GroupComposite: 0.42, LeadKeyword: "sciatica", LeadWeekOverWeekPct: &wow, MemberCount: 2},
				{Label: "Other", GroupComposite: 0.1, LeadKeyword: "golf"},
			},
			Research: []domain.ResearchStudy{{Title: "Walking for sciatica", Journal: "Spine", Date: "2026 Oct", URL: "https://pubmed.ncbi.nlm.nih.gov/1/"}},
			News:     []domain.NewsHeadline{{Title: "Desk yoga", Source: "Wellness Weekly", URL: "https://news/2"}},
			Leads:    []domain.CommunityLead{{Type: "EXEC LIFESTYLE LEAD", Source: "r/startups", Title: "Standing desk worth it?", URL: "https://reddit.com/x"}},
		},
		Emerging: domain.EmergingResult{
			Summary:            "1 reference breakouts",
			ReferenceBreakouts: []domain.ReferenceBreakout{{Article: "Low_back_pain", WeekOverWeekPct: 55.5}},
		},
		Declining:  []domain.DecliningSignal{{Keyword: "Neck_pain", WeekOverWeekPct: -20, Source: "reference_pageviews"}},
		Engagement: []domain.EngagementOpportunity{{Rank: 1, Platform: "forum", Title: "Help", URL: "https://r/1", EngagementScore: 0.61, IsNew: true}},
		Assessment: domain.AssessmentSuggestion{AssessmentName: "Slump Test", Instructions: "Sit and slump."},
		Seasonal:   domain.SeasonalContext{SeasonName: "Fall Reset", ContextNote: "Routines return.", SuggestedAngles: []string{"desk setup"}},
		Exercises:  []string{"Piriformis stretch"},
		Strategy: &domain.Playbook{
			ThemeNarrative: "Sciatica is up.",
			MondayVideo:    domain.VideoPlan{Title: "Fix Sciatica", Exercises: []domain.PlaybookExercise{{Name: "Nerve flossing", Sets: "2x10"}}},
			SEONotes:       domain.SEONotes{TargetKeyword: "sciatica exercises", SecondaryKeywords: []string{"a", "b"}},
		},
		StrategySource: domain.StrategySourceTemplate,
	}

	out, err := NewMarkdown().Render(brief)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"# Weekly Trend Brief #3 (2026-10-11)",
		"*Last week:* Neck Pain",
		"*Top mover:* sciatica at 60 (+25% WoW)",
		`- Sciatica & Nerve: composite 0.42, lead "sciatica" (+25% WoW, 2 keywords)`,
		`lead "golf" (n/a WoW`,
		"- Reference breakout: Low back pain (+55.5%)",
		"- Neck pain (-20%, reference_pageviews)",
		"1. [forum] Help (score 0.61) NEW",
		"## New research\n- Walking for sciatica (Spine, 2026 Oct) https://pubmed.ncbi.nlm.nih.gov/1/",
		"## In the news\n- Desk yoga (Wellness Weekly) https://news/2",
		"- [EXEC LIFESTYLE LEAD] r/startups: Standing desk worth it?\n   https://reddit.com/x",
		"## Self-assessment: Slump Test",
		"## Season: Fall Reset\nRoutines return.\n- desk setup",
		"## Content plan (template)",
		"- Nerve flossing (2x10)",
		"*SEO:* sciatica exercises / a, b",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownRenderMinimal(t *testing.T) {
	t.Parallel()

	out, err := NewMarkdown().Render(domain.Brief{
		Analysis: domain.Analysis{Date: "2026-10-04", Theme: "General Pain Management"},
		Emerging: domain.EmergingResult{Summary: "No new emerging signals detected"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "## Content plan") || strings.Contains(out, "## Declining") || strings.Contains(out, "## In the news") || strings.Contains(out, "#0") {
		t.Fatalf("empty sections should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "No new emerging signals detected") {
		t.Fatalf("summary missing:\n%s", out)
	}
}
