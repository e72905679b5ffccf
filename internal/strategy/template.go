package strategy

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"TrendEngine/internal/domain"
)

const (
	defaultTemplateTheme = "posture"
	gentleMobility       = "gentle mobility"
	formCuePlaceholder   = "[Coach: add specific form cue]"
	metaDescriptionLimit = 155
)

// TemplatePlaybook builds a deterministic playbook from the brief alone.
// Clinical protocols are used when the theme has one; otherwise the brief's
// exercises (or the posture set) are listed with placeholder cues.
func TemplatePlaybook(brief domain.Brief, solutions map[string][]string) *domain.Playbook {
	theme := brief.Analysis.Theme
	if strings.TrimSpace(theme) == "" {
		theme = defaultTemplateTheme
	}
	lower := strings.ToLower(theme)
	title := titleCase(theme)

	exercises := brief.Exercises
	if len(exercises) == 0 {
		exercises = solutions[lower]
	}
	if len(exercises) == 0 {
		exercises = solutions[defaultTemplateTheme]
	}
	first := gentleMobility
	if len(exercises) > 0 {
		first = exercises[0]
	}

	var planned []domain.PlaybookExercise
	if protocol, ok := Protocols[lower]; ok {
		for _, p := range protocol {
			p.FormCue = p.Sets
			planned = append(planned, p)
		}
	} else {
		for _, name := range exercises {
			planned = append(planned, domain.PlaybookExercise{Name: name, FormCue: formCuePlaceholder})
		}
	}

	assessment := fmt.Sprintf("Before starting these exercises, try this quick self-test to see where you stand. [Coach: add a 30-second assessment relevant to %s]", theme)
	if brief.Assessment.AssessmentName != "" {
		assessment = fmt.Sprintf("%s: %s", brief.Assessment.AssessmentName, brief.Assessment.Instructions)
	}

	year := brief.GeneratedAt.Year()
	pb := &domain.Playbook{
		ThemeNarrative: fmt.Sprintf("This week '%s' is trending across search, forums and reference traffic. Based on the data collected, this is a high-opportunity topic for an audience of desk workers, athletes and chronic-pain patients.", theme),
		MondayVideo: domain.VideoPlan{
			Title: fmt.Sprintf("%s: %d Exercises That Actually Work (%d)", title, len(planned), year),
			Hook:  fmt.Sprintf("'%s' searches are surging right now. Most advice online is wrong. Here's what actually works based on 15,000 hours of clinical experience.", title),
			TalkingPoints: []string{
				fmt.Sprintf("Open with the data: '%s' is trending because...", theme),
				"Explain the biomechanics: here's what's happening in the body",
				"Common mistakes: what most people do that makes it worse",
				fmt.Sprintf("The fix: walk through %d exercises with form cues", len(planned)),
			},
			Exercises:  planned,
			EndCTA:     "Try these today and tell me in the comments how you feel by Wednesday.",
			Assessment: assessment,
		},
		WednesdayPost: domain.PostPlan{
			LinkedInDraft: fmt.Sprintf("Monday I shared a %s routine that resonated with a lot of you.\n\n"+
				"Reading through the comments, two things stood out:\n\n"+
				"1. Most of you sit 8+ hours a day and feel it.\n"+
				"2. You've tried stretching but nothing sticks.\n\n"+
				"Here's why, and what to do instead.\n\n"+
				"[Coach: add clinical detail about why static stretching alone doesn't fix %s]\n\n"+
				"The exercises I showed Monday work because they target the root cause, not just the symptom.\n\n"+
				"[Coach: add 2-3 sentences of biomechanical explanation]\n\n"+
				"If you missed Monday's video, link in comments.", theme, theme),
			BlogTitle:           fmt.Sprintf("How to Fix %s: Evidence-Based Exercises", title),
			BlogMetaDescription: truncateRunes(fmt.Sprintf("Evidence-based %s exercises from 15K+ hours of clinical experience. Step-by-step guide with form cues.", theme), metaDescriptionLimit),
		},
		FridayCard: domain.CardPlan{
			StatHeadline:  fmt.Sprintf("'%s' searches are trending this month", title),
			Tip:           fmt.Sprintf("Start with %s, 30 seconds, twice a day.", first),
			EngagementAsk: fmt.Sprintf("You've had the %s exercises for 4 days. How does your body feel?", theme),
		},
		SEONotes: domain.SEONotes{
			TargetKeyword: theme + " exercises",
			SecondaryKeywords: []string{
				"how to fix " + theme,
				theme + " stretches",
				"best exercises for " + theme,
			},
			FindabilityTips: []string{
				fmt.Sprintf("Use Q&A format: 'What causes %s?' with a direct answer paragraph so assistants and featured snippets can extract it", theme),
				"Include structured data (HowTo + FAQPage schema) for search engines and AI crawlers",
				fmt.Sprintf("Write definitive statements that can be quoted, e.g. 'The most effective exercise for %s is...'", theme),
			},
		},
	}

	reply := fmt.Sprintf("Great question. From clinical experience with %s, the most common mistake is jumping straight to stretching without addressing the underlying movement pattern. Try starting with %s; it targets the root cause rather than just the symptom.", theme, first)
	if len(brief.Engagement) == 0 {
		pb.EngagementReplies = []domain.EngagementReply{{PostTitle: "[Top engagement opportunity title]", SuggestedReply: reply}}
	}
	for _, op := range brief.Engagement {
		pb.EngagementReplies = append(pb.EngagementReplies, domain.EngagementReply{PostTitle: op.Title, SuggestedReply: reply})
	}
	return pb
}

// titleCase upper-cases the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
