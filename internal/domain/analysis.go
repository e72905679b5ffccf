package domain

import "time"

// TopMover is the single fastest-growing keyword of the week.
type TopMover struct {
	Keyword         string  `json:"keyword"`
	Current         float64 `json:"current"`
	WeekOverWeekPct float64 `json:"week_over_week_pct"`
}

// GroupMember is a scored keyword inside a group ranking.
type GroupMember struct {
	Keyword         string   `json:"keyword"`
	Current         float64  `json:"current"`
	PriorWeek       float64  `json:"prior_week"`
	WeekOverWeekPct *float64 `json:"week_over_week_pct"`
	FourWeekAverage float64  `json:"four_week_average"`
	TrendDirection  string   `json:"trend_direction"`
	Composite       float64  `json:"composite"`
}

// GroupRanking aggregates the members of one topic group.
type GroupRanking struct {
	GroupKey            string        `json:"group_key"`
	Label               string        `json:"label"`
	GroupComposite      float64       `json:"group_composite"`
	LeadKeyword         string        `json:"lead_keyword"`
	LeadComposite       float64       `json:"lead_composite"`
	LeadWeekOverWeekPct *float64      `json:"lead_week_over_week_pct"`
	LeadCurrent         float64       `json:"lead_current"`
	MemberCount         int           `json:"member_count"`
	Members             []GroupMember `json:"members"`
}

// Analysis is the theme, top mover and group rankings of a week, with the
// raw snapshot sections passed through.
type Analysis struct {
	Date               string                        `json:"date"`
	Theme              string                        `json:"theme"`
	TopMover           *TopMover                     `json:"top_mover"`
	GroupRankings      []GroupRanking                `json:"group_rankings"`
	SearchMetrics      map[string]KeywordMetric      `json:"search_metrics"`
	SuggestionQueries  map[string]KeywordSuggestions `json:"suggestion_queries"`
	ForumPosts         map[string][]ForumPost        `json:"forum_posts"`
	Questions          []Question                    `json:"questions"`
	ReferencePageviews map[string]ArticlePageviews   `json:"reference_pageviews"`
	TechLeads          []TechLead                    `json:"tech_leads"`
	Research           []ResearchStudy               `json:"pubmed"`
	News               []NewsHeadline                `json:"news"`
	Leads              []CommunityLead               `json:"leads"`
}

// NewSuggestionQuery is a rising query absent from last week.
type NewSuggestionQuery struct {
	Query         string  `json:"query"`
	ParentKeyword string  `json:"parent_keyword"`
	ParentScore   float64 `json:"parent_score"`
}

// NewForumTopic is a post whose title does not resemble last week's posts.
type NewForumTopic struct {
	Title      string   `json:"title"`
	Community  string   `json:"community"`
	Score      int      `json:"score"`
	URL        string   `json:"url"`
	NovelTerms []string `json:"novel_terms"`
}

// ReferenceBreakout is a reference article with a sharp traffic jump.
type ReferenceBreakout struct {
	Article         string  `json:"article"`
	CurrentAvg      float64 `json:"current_avg"`
	PriorAvg        float64 `json:"prior_avg"`
	WeekOverWeekPct float64 `json:"week_over_week_pct"`
}

// NewQuestion is a question whose fingerprint was not seen last week.
type NewQuestion struct {
	Question    string `json:"question"`
	URL         string `json:"url"`
	Fingerprint string `json:"fingerprint"`
}

// EmergingResult lists everything new compared to the prior snapshot.
type EmergingResult struct {
	NewSuggestionQueries []NewSuggestionQuery `json:"new_suggestion_queries"`
	NewForumTopics       []NewForumTopic      `json:"new_forum_topics"`
	ReferenceBreakouts   []ReferenceBreakout  `json:"reference_breakouts"`
	NewQuestions         []NewQuestion        `json:"new_questions"`
	IsFirstRun           bool                 `json:"is_first_run"`
	Summary              string               `json:"summary"`
}

// DecliningSignal is a keyword or article losing interest.
type DecliningSignal struct {
	Keyword         string  `json:"keyword"`
	WeekOverWeekPct float64 `json:"week_over_week_pct"`
	TrendDirection  string  `json:"trend_direction"`
	Source          string  `json:"source"`
}

// EngagementOpportunity is a ranked post or question worth replying to.
type EngagementOpportunity struct {
	Rank               int      `json:"rank"`
	Platform           string   `json:"platform"`
	Title              string   `json:"title"`
	URL                string   `json:"url"`
	Community          string   `json:"community"`
	Popularity         int      `json:"popularity"`
	DiscussionCount    int      `json:"discussion_count"`
	IsNew              bool     `json:"is_new"`
	MatchedHelpSignals []string `json:"matched_help_signals"`
	Snippet            string   `json:"snippet"`
	EngagementScore    float64  `json:"engagement_score"`
}

// AssessmentSuggestion is a self-test recommended for the theme.
type AssessmentSuggestion struct {
	AssessmentName string `json:"assessment_name"`
	Instructions   string `json:"instructions"`
	Interpretation string `json:"interpretation"`
	CallToAction   string `json:"call_to_action"`
	MatchedKey     string `json:"matched_key"`
	InputTheme     string `json:"input_theme"`
}

// SeasonalContext describes the calendar period a brief is written in.
type SeasonalContext struct {
	SeasonName            string   `json:"season_name"`
	ContextNote           string   `json:"context_note"`
	SuggestedAngles       []string `json:"suggested_angles"`
	TrendingKeywordsBoost []string `json:"trending_keywords_boost"`
	Month                 int      `json:"month"`
	Date                  string   `json:"date"`
}

// Brief bundles every analysis output of one run.
type Brief struct {
	BriefNumber    int                     `json:"brief_number"`
	GeneratedAt    time.Time               `json:"generated_at"`
	PriorTheme     string                  `json:"prior_theme,omitempty"`
	Analysis       Analysis                `json:"analysis"`
	Emerging       EmergingResult          `json:"emerging"`
	Declining      []DecliningSignal       `json:"declining"`
	Engagement     []EngagementOpportunity `json:"engagement"`
	Assessment     AssessmentSuggestion    `json:"assessment"`
	Seasonal       SeasonalContext         `json:"seasonal"`
	Exercises      []string                `json:"exercises"`
	Strategy       *Playbook               `json:"strategy,omitempty"`
	StrategySource string                  `json:"strategy_source,omitempty"`
}
