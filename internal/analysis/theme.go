package analysis

import (
	"cmp"
	"slices"
	"strings"

	"TrendEngine/internal/domain"
)

// FallbackTheme is used when no source yields a theme.
const FallbackTheme = "General Pain Management"

// breakoutThreshold is the week-over-week percentage above which a
// reference article counts as a breakout.
const breakoutThreshold = 15.0

var painKeywords = newWordSet(
	"pain", "back", "neck", "hip", "knee", "shoulder",
	"posture", "sciatica", "headache", "ankle", "wrist",
	"spine", "disc", "herniated", "plantar", "fasciitis",
	"tendonitis", "fibromyalgia", "arthritis", "scoliosis",
)

// SelectTheme picks the week's theme. It tries, in order, the lead keyword
// of the top group, the top reference-article breakout, a domain word from
// the most popular forum post, and finally FallbackTheme. The first two
// steps skip last week's theme when a runner-up exists.
func SelectTheme(
	reg *Registry,
	metrics map[string]domain.KeywordMetric,
	pageviews map[string]domain.ArticlePageviews,
	forum map[string][]domain.ForumPost,
	priorTheme string,
) string {
	if groups := GroupKeywords(reg, metrics); len(groups) > 0 {
		if theme := themeFromGroups(groups, priorTheme); theme != FallbackTheme {
			return theme
		}
	}

	var significant []articleMover
	for _, mover := range articleMovers(pageviews) {
		if mover.wow > breakoutThreshold {
			significant = append(significant, mover)
		}
	}
	if len(significant) > 0 {
		candidate := underscoresToSpaces(significant[0].article)
		if candidate == priorTheme && len(significant) > 1 {
			return underscoresToSpaces(significant[1].article)
		}
		return candidate
	}

	if keyword := forumKeyword(forum); keyword != "" {
		return keyword
	}

	return FallbackTheme
}

func themeFromGroups(groups []domain.GroupRanking, priorTheme string) string {
	if len(groups) == 0 {
		return FallbackTheme
	}
	candidate := groups[0].LeadKeyword
	if candidate == priorTheme && len(groups) > 1 {
		return groups[1].LeadKeyword
	}
	return candidate
}

type articleMover struct {
	article    string
	wow        float64
	currentAvg float64
	priorAvg   float64
}

// articleMovers lists articles with a known change, fastest growing first.
func articleMovers(pageviews map[string]domain.ArticlePageviews) []articleMover {
	var movers []articleMover
	for _, article := range sortedKeys(pageviews) {
		pv := pageviews[article]
		if pv.WeekOverWeekPct == nil {
			continue
		}
		movers = append(movers, articleMover{
			article:    article,
			wow:        *pv.WeekOverWeekPct,
			currentAvg: pv.CurrentWeekAvg,
			priorAvg:   pv.PriorWeekAvg,
		})
	}
	slices.SortStableFunc(movers, func(a, b articleMover) int {
		return cmp.Compare(b.wow, a.wow)
	})
	return movers
}

// forumKeyword takes the highest-scored post and returns its longest domain
// word, or its community when the title has none.
func forumKeyword(forum map[string][]domain.ForumPost) string {
	bestScore := -1
	bestCommunity := ""
	bestTitle := ""
	found := false

	for _, community := range sortedKeys(forum) {
		for _, post := range forum[community] {
			if post.Score > bestScore {
				bestScore = post.Score
				bestCommunity = community
				bestTitle = post.Title
				found = true
			}
		}
	}
	if !found {
		return ""
	}

	best := ""
	for _, word := range strings.Fields(strings.ToLower(bestTitle)) {
		if !painKeywords.has(word) {
			continue
		}
		if len(word) > len(best) || (len(word) == len(best) && word < best) {
			best = word
		}
	}
	if best != "" {
		return best
	}
	return bestCommunity
}

// TopMover returns the keyword with the largest week-over-week growth, or
// the fastest-growing reference article when no keyword has a change.
func TopMover(metrics map[string]domain.KeywordMetric, pageviews map[string]domain.ArticlePageviews) *domain.TopMover {
	var top *domain.TopMover
	for _, keyword := range sortedKeys(metrics) {
		m := metrics[keyword]
		if m.WeekOverWeekPct == nil {
			continue
		}
		if top == nil || *m.WeekOverWeekPct > top.WeekOverWeekPct {
			top = &domain.TopMover{
				Keyword:         keyword,
				Current:         m.Current,
				WeekOverWeekPct: *m.WeekOverWeekPct,
			}
		}
	}
	if top != nil {
		return top
	}

	if movers := articleMovers(pageviews); len(movers) > 0 {
		return &domain.TopMover{
			Keyword:         underscoresToSpaces(movers[0].article),
			Current:         movers[0].currentAvg,
			WeekOverWeekPct: movers[0].wow,
		}
	}
	return nil
}
