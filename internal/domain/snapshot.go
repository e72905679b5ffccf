package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// KeywordMetric is one observed keyword's weekly search statistics.
type KeywordMetric struct {
	Current         float64  `json:"current"`
	PriorWeek       float64  `json:"prior_week"`
	WeekOverWeekPct *float64 `json:"week_over_week_pct"`
	FourWeekAverage float64  `json:"four_week_average"`
	TrendDirection  string   `json:"trend_direction"`
}

// QueryValue is either a relative interest number or the "Breakout" marker.
type QueryValue struct {
	Score    float64
	Breakout bool
}

const breakoutValue = "Breakout"

// MarshalJSON writes the number, or the string "Breakout".
func (v QueryValue) MarshalJSON() ([]byte, error) {
	if v.Breakout {
		return json.Marshal(breakoutValue)
	}
	return json.Marshal(v.Score)
}

// UnmarshalJSON accepts a number or any string; strings mark a breakout.
func (v *QueryValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = QueryValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*v = QueryValue{Score: f}
			return nil
		}
		*v = QueryValue{Breakout: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = QueryValue{Score: f}
	return nil
}

// SuggestionQuery is one related search query reported for a keyword.
type SuggestionQuery struct {
	Query string     `json:"query"`
	Value QueryValue `json:"value"`
}

// KeywordSuggestions groups rising and top related queries of one keyword.
type KeywordSuggestions struct {
	Rising []SuggestionQuery `json:"rising"`
	Top    []SuggestionQuery `json:"top"`
}

// ForumPost is a single community post. IsNew, PriorScore and ScoreDelta
// are filled by the dedup tagging step.
type ForumPost struct {
	Title          string   `json:"title"`
	Score          int      `json:"score"`
	Comments       int      `json:"comments"`
	URL            string   `json:"url"`
	Body           string   `json:"body,omitempty"`
	Community      string   `json:"community,omitempty"`
	IsNew          *bool    `json:"is_new,omitempty"`
	PriorScore     *int     `json:"prior_score,omitempty"`
	ScoreDelta     *int     `json:"score_delta,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Question is a Q&A site question discovered through search.
type Question struct {
	Question    string `json:"question"`
	URL         string `json:"url"`
	SourceQuery string `json:"source_query"`
	IsNew       *bool  `json:"is_new,omitempty"`
}

// PageviewDay is a single day of reference-article traffic.
type PageviewDay struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// ArticlePageviews summarizes two weeks of traffic for one reference article.
type ArticlePageviews struct {
	CurrentWeekAvg  float64       `json:"current_week_avg"`
	PriorWeekAvg    float64       `json:"prior_week_avg"`
	WeekOverWeekPct *float64      `json:"week_over_week_pct"`
	Daily           []PageviewDay `json:"daily"`
}

// TechLead is a technology-community story matching the domain.
type TechLead struct {
	Source         string   `json:"source"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Snippet        string   `json:"snippet"`
	Points         int      `json:"points"`
	Comments       int      `json:"comments"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// ResearchStudy is a recently published study from the literature index.
type ResearchStudy struct {
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Date    string `json:"date"`
	PMID    string `json:"pmid"`
	URL     string `json:"url"`
}

// NewsHeadline is one item of the news feed.
type NewsHeadline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Date   string `json:"date"`
}

// CommunityLead is a forum thread where someone is asking for help nearby
// or about their work setup. Type labels which search found it.
type CommunityLead struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Type    string `json:"type"`
}

// Snapshot holds one week of collected signals. A nil section means the
// source was skipped or failed; a non-nil empty section means it ran and
// found nothing.
type Snapshot struct {
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

// Merge returns s with every section present in other copied over it.
// Forum communities are merged key by key and leads are appended, keeping
// the first lead per URL.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	if other.SearchMetrics != nil {
		s.SearchMetrics = other.SearchMetrics
	}
	if other.SuggestionQueries != nil {
		s.SuggestionQueries = other.SuggestionQueries
	}
	if other.ForumPosts != nil {
		merged := make(map[string][]ForumPost, len(s.ForumPosts)+len(other.ForumPosts))
		for community, posts := range s.ForumPosts {
			merged[community] = posts
		}
		for community, posts := range other.ForumPosts {
			merged[community] = posts
		}
		s.ForumPosts = merged
	}
	if other.Questions != nil {
		s.Questions = other.Questions
	}
	if other.ReferencePageviews != nil {
		s.ReferencePageviews = other.ReferencePageviews
	}
	if other.TechLeads != nil {
		s.TechLeads = other.TechLeads
	}
	if other.Research != nil {
		s.Research = other.Research
	}
	if other.News != nil {
		s.News = other.News
	}
	if other.Leads != nil {
		s.Leads = mergeLeads(s.Leads, other.Leads)
	}
	return s
}

func mergeLeads(base, extra []CommunityLead) []CommunityLead {
	out := make([]CommunityLead, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, lead := range append(append([]CommunityLead(nil), base...), extra...) {
		if seen[lead.URL] {
			continue
		}
		seen[lead.URL] = true
		out = append(out, lead)
	}
	return out
}

// UnmarshalJSON decodes each section independently. A section, entry or
// post whose shape does not match is dropped instead of failing the whole
// snapshot, so stored payloads from older runs stay readable.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Snapshot{}
	s.SearchMetrics = decodeEntries[KeywordMetric](raw["search_metrics"])
	s.SuggestionQueries = decodeEntries[KeywordSuggestions](raw["suggestion_queries"])
	s.ReferencePageviews = decodeEntries[ArticlePageviews](raw["reference_pageviews"])
	s.Questions = decodeItems[Question](raw["questions"])
	s.TechLeads = decodeItems[TechLead](raw["tech_leads"])
	s.Research = decodeItems[ResearchStudy](raw["pubmed"])
	s.News = decodeItems[NewsHeadline](raw["news"])
	s.Leads = decodeItems[CommunityLead](raw["leads"])

	if communities := decodeEntries[json.RawMessage](raw["forum_posts"]); communities != nil {
		s.ForumPosts = make(map[string][]ForumPost, len(communities))
		for community, rawPosts := range communities {
			posts := decodeItems[ForumPost](rawPosts)
			if posts == nil {
				continue
			}
			s.ForumPosts[community] = posts
		}
	}

	return nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeEntries[T any](raw json.RawMessage) map[string]T {
	if isAbsent(raw) {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make(map[string]T, len(entries))
	for key, value := range entries {
		var item T
		if err := json.Unmarshal(value, &item); err != nil {
			continue
		}
		out[key] = item
	}
	return out
}

func decodeItems[T any](raw json.RawMessage) []T {
	if isAbsent(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, value := range items {
		var item T
		if err := json.Unmarshal(value, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}
