package analysis

import (
	"reflect"
	"slices"
	"testing"

	"TrendEngine/internal/domain"
)

func engagementFixture() (map[string][]domain.ForumPost, []domain.Question) {
	returning := false
	forum := map[string][]domain.ForumPost{
		"sciatica": {
			{Title: "Sciatica for months, nothing works, any tips?", Score: 80, Comments: 45, URL: "https://r/1"},
			{Title: "Same title", Score: 10, Comments: 2, URL: "https://r/2"},
			{Title: "Same title", Score: 10, Comments: 2, URL: "https://r/3"},
		},
		"posture": {
			{Title: "Desk posture check", Score: 30, Comments: 5, URL: "https://r/4", IsNew: &returning},
			{Title: "Long body", Score: 12, Comments: 0, URL: "https://r/5", Body: "I need help with chronic neck pain please"},
		},
	}
	questions := []domain.Question{
		{Question: "What should I do about chronic back pain?", URL: "https://q/1"},
		{Question: "Is yoga good for the back?", URL: "https://q/2"},
	}
	return forum, questions
}

func TestRankEngagementStableUnderReordering(t *testing.T) {
	t.Parallel()

	forum, questions := engagementFixture()
	first := RankEngagement(forum, questions, 10)

	reversedForum := map[string][]domain.ForumPost{}
	for community, posts := range forum {
		reversed := slices.Clone(posts)
		slices.Reverse(reversed)
		reversedForum[community] = reversed
	}
	reversedQuestions := slices.Clone(questions)
	slices.Reverse(reversedQuestions)

	second := RankEngagement(reversedForum, reversedQuestions, 10)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ranking depends on input order:\n%+v\n%+v", first, second)
	}
}

func TestRankEngagementOrderingAndRanks(t *testing.T) {
	t.Parallel()

	forum, questions := engagementFixture()
	got := RankEngagement(forum, questions, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, op := range got {
		if op.Rank != i+1 {
			t.Fatalf("rank %d at position %d", op.Rank, i)
		}
		if i > 0 && got[i-1].EngagementScore < op.EngagementScore {
			t.Fatalf("not sorted by score: %+v", got)
		}
	}
	if got[0].URL != "https://r/1" {
		t.Fatalf("expected the help-seeking sciatica post first, got %+v", got[0])
	}
	if !slices.Contains(got[0].MatchedHelpSignals, "nothing works") {
		t.Fatalf("expected matched help signal, got %v", got[0].MatchedHelpSignals)
	}
}

func TestRankEngagementCandidates(t *testing.T) {
	t.Parallel()

	forum, questions := engagementFixture()
	all := RankEngagement(forum, questions, 100)
	if len(all) != 7 {
		t.Fatalf("expected 7 candidates, got %d", len(all))
	}

	byURL := map[string]domain.EngagementOpportunity{}
	for _, op := range all {
		byURL[op.URL] = op
	}
	if op := byURL["https://r/4"]; op.IsNew {
		t.Fatalf("returning post marked new")
	}
	if op := byURL["https://r/5"]; op.Snippet != "I need help with chronic neck pain please" {
		t.Fatalf("body should be the snippet, got %q", op.Snippet)
	}
	if op := byURL["https://r/2"]; op.Snippet != "Same title" {
		t.Fatalf("title should be the snippet, got %q", op.Snippet)
	}
	q := byURL["https://q/1"]
	if q.Platform != PlatformQuestion || q.Community != "" || q.Popularity != 0 || !q.IsNew {
		t.Fatalf("unexpected question candidate: %+v", q)
	}
	if byURL["https://r/2"].Rank > byURL["https://r/3"].Rank {
		t.Fatalf("tied posts should fall back to URL order")
	}
}

func TestRankEngagementEmpty(t *testing.T) {
	t.Parallel()

	if got := RankEngagement(nil, nil, 5); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestEngagementScoreFormula(t *testing.T) {
	t.Parallel()

	// "help pain" matches two signals in four words; title relevance 1/2.
	got := engagementScore("help pain help pain", "help pain", 0, true, 2)
	want := round(0.30*0.5+0.25*0+0.20*1+0.15*0.5+0.10*1, 4)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSuggestAssessment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		theme string
		key   string
	}{
		{"my sciatica is killing me", "sciatica"},
		{"Lower Back Pain", "lower back pain"},
		{"sciatic nerve flare", "sciatica"},
		{"elbow tendon issue", DefaultAssessmentKey},
		{"", DefaultAssessmentKey},
		{"runner's knee after marathon", "runner's knee"},
	}
	for _, tc := range cases {
		got := SuggestAssessment(tc.theme)
		if got.MatchedKey != tc.key {
			t.Fatalf("theme %q: expected %q, got %q", tc.theme, tc.key, got.MatchedKey)
		}
		if got.InputTheme != tc.theme || got.AssessmentName == "" {
			t.Fatalf("theme %q: incomplete suggestion %+v", tc.theme, got)
		}
	}
}

func TestTokenOverlapPartialCredit(t *testing.T) {
	t.Parallel()

	got := tokenOverlap(newWordSet("hips", "ache"), newWordSet("hip", "pain"))
	if got != 0.375 {
		t.Fatalf("expected 0.375, got %v", got)
	}
}
