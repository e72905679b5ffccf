package analysis

import (
	"time"

	"TrendEngine/internal/domain"
)

// Input is everything one analysis run needs.
type Input struct {
	Current    domain.Snapshot
	Prior      *domain.Snapshot
	PriorTheme string
	Day        time.Time
	TopN       int
}

// Prepare tags forum posts against the prior snapshot and drops off-topic
// posts and tech leads. The result is what gets analyzed and stored.
func Prepare(current domain.Snapshot, prior *domain.Snapshot) domain.Snapshot {
	var priorForum map[string][]domain.ForumPost
	if prior != nil {
		priorForum = prior.ForumPosts
	}
	prepared := current
	if current.ForumPosts != nil {
		prepared.ForumPosts = FilterForumPosts(TagForumPosts(current.ForumPosts, priorForum))
	}
	if current.TechLeads != nil {
		prepared.TechLeads = FilterTechLeads(current.TechLeads)
	}
	return prepared
}

// BuildAnalysis selects the theme and top mover and ranks the groups of
// one snapshot. Raw sections are passed through untouched.
func BuildAnalysis(reg *Registry, snapshot domain.Snapshot, priorTheme string, day time.Time) domain.Analysis {
	return domain.Analysis{
		Date:               day.Format(time.DateOnly),
		Theme:              SelectTheme(reg, snapshot.SearchMetrics, snapshot.ReferencePageviews, snapshot.ForumPosts, priorTheme),
		TopMover:           TopMover(snapshot.SearchMetrics, snapshot.ReferencePageviews),
		GroupRankings:      GroupKeywords(reg, snapshot.SearchMetrics),
		SearchMetrics:      snapshot.SearchMetrics,
		SuggestionQueries:  snapshot.SuggestionQueries,
		ForumPosts:         snapshot.ForumPosts,
		Questions:          snapshot.Questions,
		ReferencePageviews: snapshot.ReferencePageviews,
		TechLeads:          snapshot.TechLeads,
		Research:           snapshot.Research,
		News:               snapshot.News,
		Leads:              snapshot.Leads,
	}
}

// Analyze runs every analysis step over an already prepared snapshot and
// bundles the results. Strategy and brief numbering are left to the caller.
func Analyze(reg *Registry, in Input) domain.Brief {
	topN := in.TopN
	if topN <= 0 {
		topN = DefaultEngagementTopN
	}

	result := BuildAnalysis(reg, in.Current, in.PriorTheme, in.Day)
	exercises := ExercisesForTheme(reg, result.Theme, TopicSolutions)
	if exercises == nil && len(result.GroupRankings) > 0 {
		exercises = ExercisesForGroup(reg, result.GroupRankings[0].GroupKey, TopicSolutions)
	}

	return domain.Brief{
		GeneratedAt: in.Day,
		PriorTheme:  in.PriorTheme,
		Analysis:    result,
		Emerging:    DetectEmerging(in.Current, in.Prior),
		Declining:   DetectDeclining(in.Current),
		Engagement:  RankEngagement(in.Current.ForumPosts, in.Current.Questions, topN),
		Assessment:  SuggestAssessment(result.Theme),
		Seasonal:    Seasonal(in.Day),
		Exercises:   exercises,
	}
}
