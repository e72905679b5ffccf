package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"TrendEngine/internal/domain"
)

const defaultTrendDirection = "stable"

// GroupKeywords scores every keyword and aggregates the scores per topic
// group. Group composite = 0.6*max + 0.4*mean of member composites.
// Keywords are visited in sorted order, so groups with equal composites
// keep the order in which their first keyword was seen.
func GroupKeywords(reg *Registry, metrics map[string]domain.KeywordMetric) []domain.GroupRanking {
	if len(metrics) == 0 {
		return nil
	}

	var order []string
	members := map[string][]domain.GroupMember{}

	for _, keyword := range sortedKeys(metrics) {
		m := metrics[keyword]
		groupKey, ok := reg.GroupFor(keyword)
		if !ok {
			groupKey = OtherGroupKey
		}

		trend := m.TrendDirection
		if trend == "" {
			trend = defaultTrendDirection
		}

		if _, seen := members[groupKey]; !seen {
			order = append(order, groupKey)
		}
		members[groupKey] = append(members[groupKey], domain.GroupMember{
			Keyword:         keyword,
			Current:         m.Current,
			PriorWeek:       m.PriorWeek,
			WeekOverWeekPct: m.WeekOverWeekPct,
			FourWeekAverage: m.FourWeekAverage,
			TrendDirection:  trend,
			Composite:       CompositeScore(m.Current, m.WeekOverWeekPct, m.FourWeekAverage),
		})
	}

	rankings := make([]domain.GroupRanking, 0, len(order))
	for _, groupKey := range order {
		group := members[groupKey]
		slices.SortStableFunc(group, func(a, b domain.GroupMember) int {
			return cmp.Compare(b.Composite, a.Composite)
		})

		scores := make([]float64, len(group))
		for i, member := range group {
			scores[i] = member.Composite
		}

		lead := group[0]
		rankings = append(rankings, domain.GroupRanking{
			GroupKey:            groupKey,
			Label:               reg.Label(groupKey),
			GroupComposite:      round(floats.Max(scores)*0.6+stat.Mean(scores, nil)*0.4, 4),
			LeadKeyword:         lead.Keyword,
			LeadComposite:       lead.Composite,
			LeadWeekOverWeekPct: lead.WeekOverWeekPct,
			LeadCurrent:         lead.Current,
			MemberCount:         len(group),
			Members:             group,
		})
	}

	slices.SortStableFunc(rankings, func(a, b domain.GroupRanking) int {
		return cmp.Compare(b.GroupComposite, a.GroupComposite)
	})
	return rankings
}
