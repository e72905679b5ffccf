package rendering

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"TrendEngine/internal/domain"
	"TrendEngine/internal/ports"
)

const maxGroups = 5

const briefTemplate = `# Weekly Trend Brief{{if .BriefNumber}} #{{.BriefNumber}}{{end}} ({{.Analysis.Date}})

*Theme:* {{.Analysis.Theme}}
{{- with .PriorTheme}}
*Last week:* {{.}}
{{- end}}
{{- with .Analysis.TopMover}}
*Top mover:* {{.Keyword}} at {{num .Current}} ({{signed .WeekOverWeekPct}} WoW)
{{- end}}
{{- with .Analysis.GroupRankings}}

## Topic groups
{{- range top . }}
- {{.Label}}: composite {{num .GroupComposite}}, lead "{{.LeadKeyword}}" ({{pct .LeadWeekOverWeekPct}} WoW, {{.MemberCount}} keywords)
{{- end}}
{{- end}}

## Emerging signals
{{.Emerging.Summary}}
{{- range .Emerging.NewSuggestionQueries}}
- Rising query: {{.Query}} (from {{.ParentKeyword}})
{{- end}}
{{- range .Emerging.NewForumTopics}}
- New topic in {{.Community}}: {{.Title}}
{{- end}}
{{- range .Emerging.ReferenceBreakouts}}
- Reference breakout: {{article .Article}} ({{signed .WeekOverWeekPct}})
{{- end}}
{{- range .Emerging.NewQuestions}}
- New question: {{.Question}}
{{- end}}
{{- with .Declining}}

## Declining
{{- range .}}
- {{article .Keyword}} ({{signed .WeekOverWeekPct}}, {{.Source}})
{{- end}}
{{- end}}
{{- with .Engagement}}

## Engagement opportunities
{{- range .}}
{{.Rank}}. [{{.Platform}}] {{.Title}} (score {{num .EngagementScore}}){{if .IsNew}} NEW{{end}}
   {{.URL}}
{{- end}}
{{- end}}

{{- with .Analysis.Research}}

## New research
{{- range .}}
- {{.Title}} ({{.Journal}}, {{.Date}}) {{.URL}}
{{- end}}
{{- end}}
{{- with .Analysis.News}}

## In the news
{{- range .}}
- {{.Title}} ({{.Source}}) {{.URL}}
{{- end}}
{{- end}}
{{- with .Analysis.Leads}}

## Community leads
{{- range .}}
- [{{.Type}}] {{.Source}}: {{.Title}}
   {{.URL}}
{{- end}}
{{- end}}

## Self-assessment: {{.Assessment.AssessmentName}}
{{.Assessment.Instructions}}
{{- with .Assessment.Interpretation}}
Interpretation: {{.}}
{{- end}}
{{- with .Seasonal.SeasonName}}

## Season: {{.}}
{{$.Seasonal.ContextNote}}
{{- range $.Seasonal.SuggestedAngles}}
- {{.}}
{{- end}}
{{- end}}
{{- with .Exercises}}

## Exercises
{{- range .}}
- {{.}}
{{- end}}
{{- end}}
{{- with .Strategy}}

## Content plan{{with $.StrategySource}} ({{.}}){{end}}
{{.ThemeNarrative}}

*Monday video:* {{.MondayVideo.Title}}
{{.MondayVideo.Hook}}
{{- range .MondayVideo.Exercises}}
- {{.Name}}{{with .Sets}} ({{.}}){{end}}
{{- end}}

*Wednesday post:* {{.WednesdayPost.BlogTitle}}

*Friday card:* {{.FridayCard.StatHeadline}}
Tip: {{.FridayCard.Tip}}

*SEO:* {{.SEONotes.TargetKeyword}}{{with .SEONotes.SecondaryKeywords}} / {{join . ", "}}{{end}}
{{- end}}
`

// Markdown renders briefs as Markdown text.
type Markdown struct {
	tmpl *template.Template
}

var _ ports.Renderer = (*Markdown)(nil)

// NewMarkdown parses the brief template.
func NewMarkdown() *Markdown {
	funcs := template.FuncMap{
		"num":     formatNumber,
		"signed":  signed,
		"pct":     pct,
		"article": func(s string) string { return strings.ReplaceAll(s, "_", " ") },
		"join":    strings.Join,
		"top": func(groups []domain.GroupRanking) []domain.GroupRanking {
			return groups[:min(len(groups), maxGroups)]
		},
	}
	return &Markdown{tmpl: template.Must(template.New("brief").Funcs(funcs).Parse(briefTemplate))}
}

// Render formats brief. The analysis date defaults to the generation time.
func (m *Markdown) Render(brief domain.Brief) (string, error) {
	if brief.Analysis.Date == "" {
		at := brief.GeneratedAt
		if at.IsZero() {
			at = time.Now()
		}
		brief.Analysis.Date = at.Format(time.DateOnly)
	}

	var b strings.Builder
	if err := m.tmpl.Execute(&b, brief); err != nil {
		return "", fmt.Errorf("render brief: %w", err)
	}
	return b.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signed(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v) + "%"
	}
	return formatNumber(v) + "%"
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return signed(*v)
}
