package analysis

import (
	"testing"

	"TrendEngine/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestCompositeScoreNeutral(t *testing.T) {
	t.Parallel()

	if got := CompositeScore(0, nil, 0); got != 0.175 {
		t.Fatalf("expected 0.175, got %v", got)
	}
	if got := CompositeScore(0, ptr(0.0), 0); got != 0.175 {
		t.Fatalf("explicit 0%% should equal absent change, got %v", got)
	}
}

func TestCompositeScoreClampsNegatives(t *testing.T) {
	t.Parallel()

	if got := CompositeScore(-50, nil, -3); got != 0.175 {
		t.Fatalf("negative inputs should clamp to zero, got %v", got)
	}
}

func TestCompositeScoreVolumeMonotonic(t *testing.T) {
	t.Parallel()

	prev := CompositeScore(0, ptr(12.0), 20)
	for current := 1.0; current <= 1000; current += 7 {
		got := CompositeScore(current, ptr(12.0), 20)
		if got < prev {
			t.Fatalf("score dropped at current=%v: %v < %v", current, got, prev)
		}
		prev = got
	}
}

func TestCompositeScoreBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		current, wow, avg float64
	}{
		{100, 500, 100},
		{100, -500, 100},
		{1e6, 1e6, 1e6},
		{3, -99, 0},
	}
	for _, tc := range cases {
		got := CompositeScore(tc.current, ptr(tc.wow), tc.avg)
		if got < 0 || got > 1 {
			t.Fatalf("score out of range for %+v: %v", tc, got)
		}
	}
}

func TestCompositeScoreLargeAudienceWins(t *testing.T) {
	t.Parallel()

	small := CompositeScore(10, ptr(233.0), 3)
	large := CompositeScore(1000, ptr(2.0), 1000)
	if small >= large {
		t.Fatalf("3->10 jump (%v) should not outrank 1000 steady (%v)", small, large)
	}
}

func TestGroupKeywordsSingleMember(t *testing.T) {
	t.Parallel()

	metrics := map[string]domain.KeywordMetric{
		"sciatica": {Current: 40, PriorWeek: 30, WeekOverWeekPct: ptr(33.3), FourWeekAverage: 35, TrendDirection: "rising"},
	}
	groups := GroupKeywords(DefaultRegistry(), metrics)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.GroupComposite != g.LeadComposite {
		t.Fatalf("single member group composite %v != member composite %v", g.GroupComposite, g.LeadComposite)
	}
	if g.MemberCount != 1 || g.LeadKeyword != "sciatica" {
		t.Fatalf("unexpected group: %+v", g)
	}
}

func TestGroupKeywordsOrdering(t *testing.T) {
	t.Parallel()

	metrics := map[string]domain.KeywordMetric{
		"neck pain":        {Current: 80, WeekOverWeekPct: ptr(10.0), FourWeekAverage: 70},
		"stiff neck":       {Current: 20, WeekOverWeekPct: ptr(-5.0), FourWeekAverage: 25},
		"knee pain":        {Current: 5, WeekOverWeekPct: ptr(-40.0), FourWeekAverage: 8},
		"underwater yodel": {Current: 50, FourWeekAverage: 50},
	}
	groups := GroupKeywords(DefaultRegistry(), metrics)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for i := 1; i < len(groups); i++ {
		if groups[i-1].GroupComposite < groups[i].GroupComposite {
			t.Fatalf("groups not sorted: %v before %v", groups[i-1].GroupComposite, groups[i].GroupComposite)
		}
	}

	var neck, other *domain.GroupRanking
	for i := range groups {
		switch groups[i].GroupKey {
		case "neck":
			neck = &groups[i]
		case OtherGroupKey:
			other = &groups[i]
		}
	}
	if neck == nil || other == nil {
		t.Fatalf("missing neck or other group: %+v", groups)
	}
	if other.Label != OtherGroupLabel {
		t.Fatalf("unexpected other label: %s", other.Label)
	}
	if neck.Members[0].Keyword != "neck pain" || neck.Members[1].Keyword != "stiff neck" {
		t.Fatalf("members not sorted by composite: %+v", neck.Members)
	}
	if other.Members[0].TrendDirection != "stable" {
		t.Fatalf("empty trend should default to stable, got %q", other.Members[0].TrendDirection)
	}

	scores := []float64{neck.Members[0].Composite, neck.Members[1].Composite}
	want := round(scores[0]*0.6+(scores[0]+scores[1])/2*0.4, 4)
	if neck.GroupComposite != want {
		t.Fatalf("group composite %v, want %v", neck.GroupComposite, want)
	}
}

func TestNewRegistryRejectsDuplicateKeyword(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry([]TopicGroup{
		{Key: "a", Label: "A", Keywords: []string{"Neck Pain"}},
		{Key: "b", Label: "B", Keywords: []string{"neck pain"}},
	})
	if err == nil {
		t.Fatalf("expected duplicate keyword error")
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	key, ok := reg.GroupFor("IT Band Syndrome")
	if !ok || key != "running_recovery" {
		t.Fatalf("expected running_recovery, got %q (%v)", key, ok)
	}
	if reg.Label("nope") != OtherGroupLabel {
		t.Fatalf("unknown key should label as other")
	}
}

func TestExercisesForGroupDeduplicates(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry([]TopicGroup{
		{Key: "back", Label: "Back", Keywords: []string{"back pain"}, ExerciseKeys: []string{"back pain", "lower back pain"}},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got := ExercisesForGroup(reg, "back", TopicSolutions)
	want := []string{"Cat-cow", "Bird dog", "McGill big 3", "Glute bridges"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if ExercisesForGroup(reg, "missing", TopicSolutions) != nil {
		t.Fatalf("unknown group should yield nil")
	}
}
