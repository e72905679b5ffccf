package analysis

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"TrendEngine/internal/domain"
)

// Engagement platforms.
const (
	PlatformForum    = "forum"
	PlatformQuestion = "question"
)

// DefaultEngagementTopN is the number of opportunities reported by default.
const DefaultEngagementTopN = 5

const (
	snippetLength       = 200
	returningNovelty    = 0.3
	densityWeight       = 0.30
	discussionWeight    = 0.25
	noveltyWeight       = 0.20
	relevanceWeight     = 0.15
	recencyWeight       = 0.10
	discussionLogFactor = 6.0
)

var helpSignals = []string{
	"advice", "help", "struggling", "years", "months",
	"nothing works", "getting worse", "desperate", "recommend",
	"any tips", "what should i do", "tried everything",
	"pain", "chronic", "can't sleep", "surgery",
	"scared", "terrified", "frustrated",
}

var relevanceVocabulary = newWordSet(
	"pain", "back", "neck", "posture", "sciatica", "hip", "shoulder",
	"stretch", "exercise", "spine", "disc", "herniated", "chronic",
	"stiff", "sore", "mobility", "flexibility", "therapy", "rehab",
	"ergonomic", "desk", "sitting", "standing", "piriformis",
	"fibromyalgia", "kyphosis", "lordosis", "scoliosis", "plantar",
	"carpal", "headache", "tension", "foam", "roller", "corrective",
	"yoga", "restorative", "therapeutic", "yin",
	"runner", "running", "marathon", "achilles", "itband",
	"longevity", "aging", "functional",
	"cancer", "chemotherapy", "oncology", "fatigue",
	"pelvic", "thoracic", "cervical", "lumbar",
)

type candidate struct {
	platform   string
	title      string
	url        string
	community  string
	popularity int
	discussion int
	isNew      bool
	snippet    string
}

// RankEngagement scores forum posts and questions by how worth a reply
// they are and returns the best topN with 1-based ranks. Ties on score and
// popularity are broken by title, URL and community so the ranking does not
// depend on input order.
func RankEngagement(forum map[string][]domain.ForumPost, questions []domain.Question, topN int) []domain.EngagementOpportunity {
	candidates := forumCandidates(forum)
	candidates = append(candidates, questionCandidates(questions)...)
	if len(candidates) == 0 || topN <= 0 {
		return []domain.EngagementOpportunity{}
	}

	scored := make([]domain.EngagementOpportunity, 0, len(candidates))
	for _, c := range candidates {
		text := c.title + " " + c.snippet
		matched := matchHelpSignals(text)
		scored = append(scored, domain.EngagementOpportunity{
			Platform:           c.platform,
			Title:              c.title,
			URL:                c.url,
			Community:          c.community,
			Popularity:         c.popularity,
			DiscussionCount:    c.discussion,
			IsNew:              c.isNew,
			MatchedHelpSignals: matched,
			Snippet:            c.snippet,
			EngagementScore:    engagementScore(text, c.title, c.discussion, c.isNew, len(matched)),
		})
	}

	slices.SortFunc(scored, compareOpportunities)

	if len(scored) > topN {
		scored = scored[:topN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func compareOpportunities(a, b domain.EngagementOpportunity) int {
	if c := cmp.Compare(b.EngagementScore, a.EngagementScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Popularity, a.Popularity); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if c := strings.Compare(a.URL, b.URL); c != 0 {
		return c
	}
	if c := strings.Compare(a.Community, b.Community); c != 0 {
		return c
	}
	if c := strings.Compare(a.Platform, b.Platform); c != 0 {
		return c
	}
	return cmp.Compare(b.DiscussionCount, a.DiscussionCount)
}

func forumCandidates(forum map[string][]domain.ForumPost) []candidate {
	var out []candidate
	for _, cp := range flattenPosts(forum) {
		snippet := cp.post.Title
		if cp.post.Body != "" {
			snippet = truncateRunes(cp.post.Body, snippetLength)
		}
		isNew := true
		if cp.post.IsNew != nil {
			isNew = *cp.post.IsNew
		}
		out = append(out, candidate{
			platform:   PlatformForum,
			title:      cp.post.Title,
			url:        cp.post.URL,
			community:  cp.community,
			popularity: cp.post.Score,
			discussion: cp.post.Comments,
			isNew:      isNew,
			snippet:    snippet,
		})
	}
	return out
}

func questionCandidates(questions []domain.Question) []candidate {
	out := make([]candidate, 0, len(questions))
	for _, q := range questions {
		isNew := true
		if q.IsNew != nil {
			isNew = *q.IsNew
		}
		out = append(out, candidate{
			platform: PlatformQuestion,
			title:    q.Question,
			url:      q.URL,
			isNew:    isNew,
			snippet:  q.Question,
		})
	}
	return out
}

func matchHelpSignals(text string) []string {
	lower := strings.ToLower(text)
	matched := []string{}
	for _, signal := range helpSignals {
		if strings.Contains(lower, signal) {
			matched = append(matched, signal)
		}
	}
	return matched
}

func engagementScore(text, title string, discussion int, isNew bool, signals int) float64 {
	density := 0.0
	if words := len(strings.Fields(text)); words > 0 {
		density = math.Min(float64(signals)/float64(words), 1)
	}

	volume := math.Min(math.Log(float64(max(discussion, 0))+1)/discussionLogFactor, 1)

	novelty := returningNovelty
	if isNew {
		novelty = 1
	}

	const recency = 1.0

	return round(
		densityWeight*density+
			discussionWeight*volume+
			noveltyWeight*novelty+
			relevanceWeight*titleRelevance(title)+
			recencyWeight*recency,
		4,
	)
}

// titleRelevance is the share of title words found in the domain vocabulary.
func titleRelevance(title string) float64 {
	words := strings.Fields(strings.ToLower(title))
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, w := range words {
		if relevanceVocabulary.has(w) {
			matches++
		}
	}
	return math.Min(float64(matches)/float64(len(words)), 1)
}
