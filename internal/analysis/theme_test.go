package analysis

import (
	"testing"
	"time"

	"TrendEngine/internal/domain"
)

func TestSelectThemeFromReferenceBreakout(t *testing.T) {
	t.Parallel()

	pageviews := map[string]domain.ArticlePageviews{
		"Low_back_pain": {CurrentWeekAvg: 1200, PriorWeekAvg: 1000, WeekOverWeekPct: ptr(20.0)},
	}
	got := SelectTheme(DefaultRegistry(), nil, pageviews, nil, "")
	if got != "Low back pain" {
		t.Fatalf("expected article title, got %q", got)
	}
}

func TestSelectThemeVarietyRule(t *testing.T) {
	t.Parallel()

	metrics := map[string]domain.KeywordMetric{
		"sciatica":  {Current: 90, WeekOverWeekPct: ptr(30.0), FourWeekAverage: 80},
		"neck pain": {Current: 40, WeekOverWeekPct: ptr(5.0), FourWeekAverage: 40},
	}
	reg := DefaultRegistry()

	if got := SelectTheme(reg, metrics, nil, nil, ""); got != "sciatica" {
		t.Fatalf("expected sciatica, got %q", got)
	}
	if got := SelectTheme(reg, metrics, nil, nil, "sciatica"); got != "neck pain" {
		t.Fatalf("expected runner-up after repeat, got %q", got)
	}

	single := map[string]domain.KeywordMetric{"sciatica": metrics["sciatica"]}
	if got := SelectTheme(reg, single, nil, nil, "sciatica"); got != "sciatica" {
		t.Fatalf("repeat allowed without runner-up, got %q", got)
	}
}

func TestSelectThemeArticleVariety(t *testing.T) {
	t.Parallel()

	pageviews := map[string]domain.ArticlePageviews{
		"Sciatica":  {WeekOverWeekPct: ptr(50.0)},
		"Neck_pain": {WeekOverWeekPct: ptr(25.0)},
		"Knee_pain": {WeekOverWeekPct: ptr(10.0)},
	}
	if got := SelectTheme(DefaultRegistry(), nil, pageviews, nil, "Sciatica"); got != "Neck pain" {
		t.Fatalf("expected Neck pain, got %q", got)
	}
}

func TestSelectThemeFromForum(t *testing.T) {
	t.Parallel()

	forum := map[string][]domain.ForumPost{
		"backpain": {
			{Title: "Herniated disc and sciatica relief", Score: 120},
			{Title: "Quiet week", Score: 3},
		},
		"yoga": {
			{Title: "Morning flow ideas", Score: 60},
		},
	}
	if got := SelectTheme(DefaultRegistry(), nil, nil, forum, ""); got != "herniated" {
		t.Fatalf("expected longest domain word, got %q", got)
	}

	forum["yoga"] = []domain.ForumPost{{Title: "Morning flow ideas", Score: 500}}
	if got := SelectTheme(DefaultRegistry(), nil, nil, forum, ""); got != "yoga" {
		t.Fatalf("expected community fallback, got %q", got)
	}
}

func TestSelectThemeFallback(t *testing.T) {
	t.Parallel()

	pageviews := map[string]domain.ArticlePageviews{
		"Sciatica": {WeekOverWeekPct: ptr(15.0)},
	}
	if got := SelectTheme(DefaultRegistry(), nil, pageviews, nil, ""); got != FallbackTheme {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestTopMover(t *testing.T) {
	t.Parallel()

	metrics := map[string]domain.KeywordMetric{
		"neck pain": {Current: 40, WeekOverWeekPct: ptr(5.0)},
		"sciatica":  {Current: 60, WeekOverWeekPct: ptr(45.5)},
		"posture":   {Current: 70},
	}
	top := TopMover(metrics, nil)
	if top == nil || top.Keyword != "sciatica" || top.WeekOverWeekPct != 45.5 {
		t.Fatalf("unexpected top mover: %+v", top)
	}

	pageviews := map[string]domain.ArticlePageviews{
		"Plantar_fasciitis": {CurrentWeekAvg: 300, WeekOverWeekPct: ptr(12.0)},
	}
	top = TopMover(nil, pageviews)
	if top == nil || top.Keyword != "Plantar fasciitis" || top.Current != 300 {
		t.Fatalf("unexpected article top mover: %+v", top)
	}

	if TopMover(nil, nil) != nil {
		t.Fatalf("expected no top mover")
	}
}

func TestBuildAnalysisPassesSectionsThrough(t *testing.T) {
	t.Parallel()

	snapshot := domain.Snapshot{
		SearchMetrics: map[string]domain.KeywordMetric{
			"sciatica": {Current: 60, WeekOverWeekPct: ptr(20.0), FourWeekAverage: 50},
		},
		Questions: []domain.Question{{Question: "How to fix sciatica", URL: "https://q/1"}},
	}
	day := time.Date(2026, time.October, 11, 22, 0, 0, 0, time.UTC)

	result := BuildAnalysis(DefaultRegistry(), snapshot, "", day)
	if result.Date != "2026-10-11" {
		t.Fatalf("unexpected date: %s", result.Date)
	}
	if result.Theme != "sciatica" {
		t.Fatalf("unexpected theme: %s", result.Theme)
	}
	if len(result.GroupRankings) != 1 || result.TopMover == nil {
		t.Fatalf("missing rankings or top mover: %+v", result)
	}
	if len(result.Questions) != 1 || result.ForumPosts != nil {
		t.Fatalf("sections not passed through: %+v", result)
	}
}

func TestAnalyzeBundle(t *testing.T) {
	t.Parallel()

	current := domain.Snapshot{
		SearchMetrics: map[string]domain.KeywordMetric{
			"sciatica": {Current: 60, WeekOverWeekPct: ptr(20.0), FourWeekAverage: 50},
		},
		ForumPosts: map[string][]domain.ForumPost{
			"sciatica": {{Title: "Sciatica pain for months, any tips?", Score: 40, Comments: 12, URL: "https://r/1"}},
		},
	}
	day := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	brief := Analyze(DefaultRegistry(), Input{Current: current, Day: day})
	if brief.Analysis.Theme != "sciatica" {
		t.Fatalf("unexpected theme: %s", brief.Analysis.Theme)
	}
	if brief.Assessment.MatchedKey != "sciatica" {
		t.Fatalf("unexpected assessment: %s", brief.Assessment.MatchedKey)
	}
	if brief.Seasonal.SeasonName != "Spring Activity Surge" {
		t.Fatalf("unexpected season: %s", brief.Seasonal.SeasonName)
	}
	if !brief.Emerging.IsFirstRun || len(brief.Emerging.NewForumTopics) != 1 {
		t.Fatalf("unexpected emerging: %+v", brief.Emerging)
	}
	if len(brief.Engagement) != 1 || brief.Engagement[0].Rank != 1 {
		t.Fatalf("unexpected engagement: %+v", brief.Engagement)
	}
	if len(brief.Exercises) == 0 || brief.Exercises[0] != "Piriformis stretch" {
		t.Fatalf("unexpected exercises: %v", brief.Exercises)
	}
}

func TestSeasonalCoversEveryMonth(t *testing.T) {
	t.Parallel()

	want := map[time.Month]string{
		time.January:   "New Year Resolution Rush",
		time.April:     "Spring Activity Surge",
		time.July:      "Summer Activity Peak",
		time.September: "RTO Wave",
		time.December:  "Holiday Stress & Travel",
	}
	for m := time.January; m <= time.December; m++ {
		ctx := Seasonal(time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC))
		if ctx.SeasonName == "" || len(ctx.SuggestedAngles) == 0 {
			t.Fatalf("month %s has no season", m)
		}
		if ctx.Month != int(m) {
			t.Fatalf("month %s reported as %d", m, ctx.Month)
		}
		if name, ok := want[m]; ok && ctx.SeasonName != name {
			t.Fatalf("month %s: expected %q, got %q", m, name, ctx.SeasonName)
		}
	}
}
