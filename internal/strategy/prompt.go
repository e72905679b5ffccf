package strategy

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"TrendEngine/internal/domain"
)

const (
	maxRisingPerKeyword = 5
	minExerciseEntries  = 5
	maxExerciseEntries  = 8
	sharedWordMinLen    = 4
)

// SystemPrompt frames the model as the coach's content strategist.
const SystemPrompt = `You are a content strategist for an expert pain management and longevity coach.
Credentials and differentiators:
- 15,000+ hours of clinical experience in corrective exercise and pain management
- 10,000+ hours of yoga teaching (therapeutic, restorative and power yoga)
- Certified cancer exercise trainer
- Ultra marathoner with deep knowledge of running biomechanics and recovery
- Longevity and functional aging specialist

Audience segments in priority order:
1. Executives and founders with desk-related pain
2. Chronic pain patients seeking non-surgical solutions
3. Cancer survivors and patients needing safe exercise guidance
4. Runners and athletes dealing with overuse injuries
5. Desk workers and remote employees with posture issues
6. Adults 40+ focused on longevity and functional movement

Use all of this expertise when the data supports it: yoga-based solutions, running recovery,
cancer exercise safety or longevity framing.

You produce a weekly content playbook. Your output MUST be valid JSON matching the schema
in the request. No markdown fencing, no explanation outside the JSON.`

const outputSchema = `REQUIRED JSON OUTPUT SCHEMA:
{
  "theme_narrative": "2-3 sentences on why this topic matters NOW. Reference specific data.",
  "monday_video": {
    "title": "Video title: [Problem]: N Exercises That Actually Work",
    "hook": "First 10 seconds script. Reference a specific data point.",
    "talking_points": ["point 1", "point 2", "point 3", "point 4"],
    "exercises": [
      {"name": "Exercise Name", "form_cue": "cue", "sets": "3x10", "progression": "", "regression": "", "contraindication": ""}
    ],
    "end_cta": "CTA referencing Wednesday's follow-up.",
    "viewer_assessment": "A simple self-test viewers can do before the exercises."
  },
  "wednesday_post": {
    "linkedin_draft": "300-600 word post referencing Monday's video. Include [Coach: add...] placeholders for clinical detail.",
    "blog_title": "SEO-optimized article title.",
    "blog_meta_description": "155 char meta description."
  },
  "friday_card": {
    "stat_headline": "Bold data stat for social card.",
    "tip": "One actionable tip.",
    "engagement_ask": "Question referencing Monday's exercises."
  },
  "seo_notes": {
    "target_keyword": "Primary long-tail keyword.",
    "secondary_keywords": ["kw1", "kw2", "kw3"],
    "ai_findability_tips": ["tip1", "tip2", "tip3"]
  },
  "engagement_replies": [
    {"post_title": "Title of the engagement opportunity", "suggested_reply": "3-4 sentence helpful reply. No pitch, no link."}
  ]
}`

// BuildPrompt renders every available section of the brief into the user
// prompt. Absent sections are skipped; the output schema always comes last.
func BuildPrompt(brief domain.Brief, solutions map[string][]string) string {
	theme := brief.Analysis.Theme
	sections := []string{}
	if theme != "" {
		sections = append(sections, "THIS WEEK'S THEME: "+theme)
	}
	sections = appendNonEmpty(sections,
		formatSeasonal(brief.Seasonal),
		formatSearch(brief.Analysis),
		formatForum(brief.Analysis.ForumPosts),
		formatQuestions(brief.Analysis.Questions),
		formatReference(brief.Analysis.ReferencePageviews),
		formatTechLeads(brief.Analysis.TechLeads),
		formatResearch(brief.Analysis.Research),
		formatNews(brief.Analysis.News),
		formatCommunityLeads(brief.Analysis.Leads),
		formatEmerging(brief.Emerging),
		formatEngagement(brief.Engagement),
		formatContinuity(brief.PriorTheme),
		formatExerciseMap(theme, solutions),
	)
	if brief.Emerging.IsFirstRun {
		sections = append(sections, "NOTE: This is the first weekly run. There is no prior playbook to reference. Set the tone and establish the brand voice.")
	}
	sections = append(sections, outputSchema)
	return strings.Join(sections, "\n\n")
}

func appendNonEmpty(sections []string, parts ...string) []string {
	for _, p := range parts {
		if p != "" {
			sections = append(sections, p)
		}
	}
	return sections
}

func formatSeasonal(s domain.SeasonalContext) string {
	if s.SeasonName == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "SEASONAL CONTEXT (%s):\n%s", s.SeasonName, s.ContextNote)
	if len(s.SuggestedAngles) > 0 {
		b.WriteString("\nSuggested seasonal angles:")
		for _, angle := range s.SuggestedAngles {
			b.WriteString("\n  - " + angle)
		}
	}
	return b.String()
}

func formatSearch(a domain.Analysis) string {
	if len(a.SearchMetrics) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("SEARCH INTEREST (relative 0-100, 100 = peak popularity this quarter):\n")
	fmt.Fprintf(&b, "%-30s %8s %7s %10s\n", "Keyword", "Interest", "WoW%", "4w Trend")
	b.WriteString(strings.Repeat("-", 58))
	for _, kw := range sortedKeys(a.SearchMetrics) {
		m := a.SearchMetrics[kw]
		fmt.Fprintf(&b, "\n%-30s %8s %7s %10s", kw, formatNumber(m.Current), formatPct(m.WeekOverWeekPct), m.TrendDirection)
	}

	var rising []string
	for _, kw := range sortedKeys(a.SuggestionQueries) {
		queries := a.SuggestionQueries[kw].Rising
		if len(queries) == 0 {
			continue
		}
		names := make([]string, 0, maxRisingPerKeyword)
		for _, q := range queries[:min(len(queries), maxRisingPerKeyword)] {
			names = append(names, q.Query)
		}
		rising = append(rising, fmt.Sprintf("  %s: %s", kw, strings.Join(names, ", ")))
	}
	if len(rising) > 0 {
		b.WriteString("\n\nRising queries per keyword:\n")
		b.WriteString(strings.Join(rising, "\n"))
	}
	return b.String()
}

func formatForum(forum map[string][]domain.ForumPost) string {
	var lines []string
	for _, community := range sortedKeys(forum) {
		for _, post := range forum[community] {
			tag := ""
			if post.IsNew != nil && *post.IsNew {
				tag = " [NEW]"
			}
			lines = append(lines, fmt.Sprintf("  - %s: %s (score %d, %d comments)%s", community, post.Title, post.Score, post.Comments, tag))
		}
	}
	return section("FORUM POSTS:", lines)
}

func formatQuestions(questions []domain.Question) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		lines = append(lines, "  - "+q.Question)
	}
	return section("QUESTIONS:", lines)
}

func formatReference(pageviews map[string]domain.ArticlePageviews) string {
	var lines []string
	for _, article := range sortedKeys(pageviews) {
		pv := pageviews[article]
		lines = append(lines, fmt.Sprintf("  - %s: %s views/day (WoW: %s)",
			strings.ReplaceAll(article, "_", " "), formatNumber(pv.CurrentWeekAvg), formatPct(pv.WeekOverWeekPct)))
	}
	return section("REFERENCE ARTICLE TRAFFIC:", lines)
}

func formatTechLeads(leads []domain.TechLead) string {
	lines := make([]string, 0, len(leads))
	for _, lead := range leads {
		lines = append(lines, fmt.Sprintf("  - %s (%s)", lead.Title, lead.Snippet))
	}
	return section("TECH COMMUNITY LEADS:", lines)
}

func formatResearch(studies []domain.ResearchStudy) string {
	lines := make([]string, 0, len(studies))
	for _, study := range studies {
		lines = append(lines, fmt.Sprintf("  - %s (%s, %s)", study.Title, study.Journal, study.Date))
	}
	return section("NEW RESEARCH:", lines)
}

func formatNews(headlines []domain.NewsHeadline) string {
	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		lines = append(lines, fmt.Sprintf("  - %s (%s)", h.Title, h.Source))
	}
	return section("IN THE NEWS:", lines)
}

func formatCommunityLeads(leads []domain.CommunityLead) string {
	lines := make([]string, 0, len(leads))
	for _, lead := range leads {
		lines = append(lines, fmt.Sprintf("  - [%s] %s: %s", lead.Type, lead.Source, lead.Title))
	}
	return section("LOCAL AND LIFESTYLE LEADS:", lines)
}

func formatEmerging(e domain.EmergingResult) string {
	var parts []string
	if len(e.NewSuggestionQueries) > 0 {
		queries := make([]string, 0, len(e.NewSuggestionQueries))
		for _, q := range e.NewSuggestionQueries {
			queries = append(queries, q.Query)
		}
		parts = append(parts, "  New rising queries: "+strings.Join(queries, ", "))
	}
	if len(e.NewForumTopics) > 0 {
		parts = append(parts, "  New forum conversations:")
		for _, topic := range e.NewForumTopics {
			novel := ""
			if len(topic.NovelTerms) > 0 {
				novel = " (novel terms: " + strings.Join(topic.NovelTerms, ", ") + ")"
			}
			parts = append(parts, "    - "+topic.Title+novel)
		}
	}
	if len(e.ReferenceBreakouts) > 0 {
		breakouts := make([]string, 0, len(e.ReferenceBreakouts))
		for _, b := range e.ReferenceBreakouts {
			breakouts = append(breakouts, fmt.Sprintf("%s (+%s%%)", strings.ReplaceAll(b.Article, "_", " "), formatNumber(b.WeekOverWeekPct)))
		}
		parts = append(parts, "  Reference breakouts: "+strings.Join(breakouts, ", "))
	}
	if len(e.NewQuestions) > 0 {
		parts = append(parts, "  New questions:")
		for _, q := range e.NewQuestions {
			parts = append(parts, "    - "+q.Question)
		}
	}
	return section("EMERGING SIGNALS (HIGHEST PRIORITY, prioritize these in the playbook):", parts)
}

func formatEngagement(ops []domain.EngagementOpportunity) string {
	lines := make([]string, 0, len(ops))
	for _, op := range ops {
		lines = append(lines, fmt.Sprintf("  %d. [%s] %s (score %.2f)", op.Rank, op.Platform, op.Title, op.EngagementScore))
	}
	return section("ENGAGEMENT OPPORTUNITIES (draft one reply each):", lines)
}

func formatContinuity(priorTheme string) string {
	if priorTheme == "" {
		return ""
	}
	return fmt.Sprintf("CONTINUITY:\nLast week's theme was '%s'. Write a brief transition sentence in theme_narrative that bridges from last week to this week.", priorTheme)
}

// formatExerciseMap lists the solution entries related to the theme, padded
// with the first entries in key order, with clinical protocols merged in.
func formatExerciseMap(theme string, solutions map[string][]string) string {
	if len(solutions) == 0 {
		return ""
	}
	themeLower := strings.ToLower(theme)
	themeWords := significantWords(themeLower)

	relevant := map[string]any{}
	keys := sortedKeys(solutions)
	for _, key := range keys {
		keyLower := strings.ToLower(key)
		related := themeLower != "" && (keyLower == themeLower || strings.Contains(themeLower, keyLower) || strings.Contains(keyLower, themeLower))
		if !related {
			for w := range significantWords(keyLower) {
				if themeWords[w] {
					related = true
					break
				}
			}
		}
		if related {
			relevant[key] = solutions[key]
		}
	}
	if len(relevant) < minExerciseEntries {
		for _, key := range keys {
			if len(relevant) >= maxExerciseEntries {
				break
			}
			if _, ok := relevant[key]; !ok {
				relevant[key] = solutions[key]
			}
		}
	}
	for key := range relevant {
		if protocol, ok := Protocols[strings.ToLower(key)]; ok {
			relevant[key] = protocol
		}
	}

	encoded, err := json.MarshalIndent(relevant, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("EXERCISE PRESCRIPTION MAP (filtered for '%s'):\n%s\n\nNOTE: Entries with sets, progression, regression and contraindication fields are clinical-grade protocols. Include sets/reps and a contraindication warning in the exercises output when this data is available.", theme, encoded)
}

func significantWords(s string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.Fields(s) {
		if len(w) >= sharedWordMinLen {
			words[w] = true
		}
	}
	return words
}

func section(header string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return header + "\n" + strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatNumber(*v) + "%"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
