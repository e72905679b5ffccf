package analysis

import (
	"cmp"
	"slices"
	"strings"

	"TrendEngine/internal/domain"
)

// Declining signal sources.
const (
	SourceSearchTrends       = "search_trends"
	SourceReferencePageviews = "reference_pageviews"
)

const (
	decliningKeywordPct     = -10.0
	decliningKeywordMinimum = 15.0
	decliningArticlePct     = -15.0
	decliningArticleMinimum = 50.0
)

// DetectDeclining flags keywords and reference articles that lost interest
// this week, most negative first. Low-volume entries are ignored. An article
// whose title matches an already flagged keyword is skipped.
func DetectDeclining(current domain.Snapshot) []domain.DecliningSignal {
	out := []domain.DecliningSignal{}

	for _, keyword := range sortedKeys(current.SearchMetrics) {
		m := current.SearchMetrics[keyword]
		if m.WeekOverWeekPct == nil {
			continue
		}
		if *m.WeekOverWeekPct < decliningKeywordPct && m.Current >= decliningKeywordMinimum {
			trend := m.TrendDirection
			if trend == "" {
				trend = defaultTrendDirection
			}
			out = append(out, domain.DecliningSignal{
				Keyword:         keyword,
				WeekOverWeekPct: round(*m.WeekOverWeekPct, 1),
				TrendDirection:  trend,
				Source:          SourceSearchTrends,
			})
		}
	}

	for _, article := range sortedKeys(current.ReferencePageviews) {
		pv := current.ReferencePageviews[article]
		if pv.WeekOverWeekPct == nil {
			continue
		}
		if *pv.WeekOverWeekPct >= decliningArticlePct || pv.CurrentWeekAvg < decliningArticleMinimum {
			continue
		}
		title := underscoresToSpaces(article)
		if slices.ContainsFunc(out, func(d domain.DecliningSignal) bool {
			return strings.EqualFold(d.Keyword, title)
		}) {
			continue
		}
		out = append(out, domain.DecliningSignal{
			Keyword:         title,
			WeekOverWeekPct: round(*pv.WeekOverWeekPct, 1),
			TrendDirection:  "declining",
			Source:          SourceReferencePageviews,
		})
	}

	slices.SortStableFunc(out, func(a, b domain.DecliningSignal) int {
		return cmp.Compare(a.WeekOverWeekPct, b.WeekOverWeekPct)
	})
	return out
}
