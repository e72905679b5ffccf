package domain

import "time"

// Strategy sources recorded with every brief.
const (
	StrategySourceAnthropic = "anthropic"
	StrategySourceOpenAI    = "openai"
	StrategySourceTemplate  = "template"
)

// PlaybookExercise is an exercise suggestion inside the weekly video plan.
type PlaybookExercise struct {
	Name             string `json:"name"`
	FormCue          string `json:"form_cue"`
	Sets             string `json:"sets,omitempty"`
	Progression      string `json:"progression,omitempty"`
	Regression       string `json:"regression,omitempty"`
	Contraindication string `json:"contraindication,omitempty"`
}

// VideoPlan is the main weekly video.
type VideoPlan struct {
	Title         string             `json:"title"`
	Hook          string             `json:"hook"`
	TalkingPoints []string           `json:"talking_points"`
	Exercises     []PlaybookExercise `json:"exercises"`
	EndCTA        string             `json:"end_cta"`
	Assessment    string             `json:"viewer_assessment,omitempty"`
}

// PostPlan is the mid-week written follow-up.
type PostPlan struct {
	LinkedInDraft       string `json:"linkedin_draft"`
	BlogTitle           string `json:"blog_title"`
	BlogMetaDescription string `json:"blog_meta_description"`
}

// CardPlan is the end-of-week short card.
type CardPlan struct {
	StatHeadline  string `json:"stat_headline"`
	Tip           string `json:"tip"`
	EngagementAsk string `json:"engagement_ask"`
}

// SEONotes carries search keywords for the week's content.
type SEONotes struct {
	TargetKeyword     string   `json:"target_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords"`
	FindabilityTips   []string `json:"ai_findability_tips,omitempty"`
}

// EngagementReply is a drafted reply to a ranked opportunity.
type EngagementReply struct {
	PostTitle      string `json:"post_title"`
	SuggestedReply string `json:"suggested_reply"`
}

// Playbook is the weekly content strategy, generated or templated.
type Playbook struct {
	ThemeNarrative    string            `json:"theme_narrative"`
	MondayVideo       VideoPlan         `json:"monday_video"`
	WednesdayPost     PostPlan          `json:"wednesday_post"`
	FridayCard        CardPlan          `json:"friday_card"`
	SEONotes          SEONotes          `json:"seo_notes"`
	EngagementReplies []EngagementReply `json:"engagement_replies,omitempty"`
}

// BriefRecord is a persisted weekly snapshot. The snapshot is stored
// verbatim so the next run can diff against it.
type BriefRecord struct {
	ID             string
	Date           string
	BriefNumber    int
	Theme          string
	StrategySource string
	Summary        string
	Snapshot       Snapshot
	CreatedAt      time.Time
}
