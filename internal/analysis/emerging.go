package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"TrendEngine/internal/domain"
)

const (
	// novelOverlapLimit is the fingerprint overlap below which a post is new.
	novelOverlapLimit  = 0.50
	firstRunTopicLimit = 5
	noSignalsSummary   = "No new emerging signals detected"
	unknownParent      = "unknown"
)

// DetectEmerging diffs the current snapshot against the prior one. A nil
// prior marks the first run: suggestion-query and question diffs are then
// skipped and the five most popular posts are reported as new topics.
func DetectEmerging(current domain.Snapshot, prior *domain.Snapshot) domain.EmergingResult {
	result := domain.EmergingResult{
		NewSuggestionQueries: []domain.NewSuggestionQuery{},
		NewForumTopics:       []domain.NewForumTopic{},
		ReferenceBreakouts:   []domain.ReferenceBreakout{},
		NewQuestions:         []domain.NewQuestion{},
		IsFirstRun:           prior == nil,
	}

	if prior != nil {
		result.NewSuggestionQueries = newSuggestionQueries(current, *prior)
		result.NewForumTopics = newForumTopics(current.ForumPosts, prior.ForumPosts)
		result.NewQuestions = newQuestions(current.Questions, prior.Questions)
	} else {
		result.NewForumTopics = firstRunTopics(current.ForumPosts)
	}
	result.ReferenceBreakouts = referenceBreakouts(current.ReferencePageviews)
	result.Summary = emergingSummary(result)

	return result
}

func risingQuerySet(suggestions map[string]domain.KeywordSuggestions) map[string]struct{} {
	set := map[string]struct{}{}
	for _, entry := range suggestions {
		for _, q := range entry.Rising {
			if q.Query != "" {
				set[q.Query] = struct{}{}
			}
		}
	}
	return set
}

// parentKeyword finds the first keyword, in sorted order, whose rising
// list contains query.
func parentKeyword(query string, suggestions map[string]domain.KeywordSuggestions) (string, bool) {
	for _, keyword := range sortedKeys(suggestions) {
		for _, q := range suggestions[keyword].Rising {
			if q.Query == query {
				return keyword, true
			}
		}
	}
	return "", false
}

func newSuggestionQueries(current, prior domain.Snapshot) []domain.NewSuggestionQuery {
	seen := risingQuerySet(prior.SuggestionQueries)
	out := []domain.NewSuggestionQuery{}
	for query := range risingQuerySet(current.SuggestionQueries) {
		if _, old := seen[query]; old {
			continue
		}
		item := domain.NewSuggestionQuery{Query: query, ParentKeyword: unknownParent}
		if parent, ok := parentKeyword(query, current.SuggestionQueries); ok {
			item.ParentKeyword = parent
			if metric, ok := current.SearchMetrics[parent]; ok {
				item.ParentScore = metric.Current
			}
		}
		out = append(out, item)
	}

	slices.SortFunc(out, func(a, b domain.NewSuggestionQuery) int {
		if c := cmp.Compare(b.ParentScore, a.ParentScore); c != 0 {
			return c
		}
		return strings.Compare(a.Query, b.Query)
	})
	return out
}

type communityPost struct {
	community string
	post      domain.ForumPost
}

// flattenPosts lists posts community by community in sorted order. A post
// that names its own community keeps it.
func flattenPosts(forum map[string][]domain.ForumPost) []communityPost {
	var out []communityPost
	for _, community := range sortedKeys(forum) {
		for _, post := range forum[community] {
			name := post.Community
			if name == "" {
				name = community
			}
			out = append(out, communityPost{community: name, post: post})
		}
	}
	return out
}

func byPopularity(a, b communityPost) int {
	return cmp.Compare(b.post.Score, a.post.Score)
}

func firstRunTopics(forum map[string][]domain.ForumPost) []domain.NewForumTopic {
	posts := flattenPosts(forum)
	slices.SortStableFunc(posts, byPopularity)

	out := []domain.NewForumTopic{}
	for _, cp := range posts {
		if len(out) == firstRunTopicLimit {
			break
		}
		out = append(out, forumTopic(cp, fingerprintOf(cp.post.Title).sorted()))
	}
	return out
}

func newForumTopics(current, prior map[string][]domain.ForumPost) []domain.NewForumTopic {
	var priorPrints []fingerprint
	known := map[string]struct{}{}
	for _, cp := range flattenPosts(prior) {
		fp := fingerprintOf(cp.post.Title)
		if len(fp) == 0 {
			continue
		}
		priorPrints = append(priorPrints, fp)
		for w := range fp {
			known[w] = struct{}{}
		}
	}

	var emerging []communityPost
	novel := map[int][]string{}
	for _, cp := range flattenPosts(current) {
		fp := fingerprintOf(cp.post.Title)
		if len(fp) == 0 {
			continue
		}
		if bestOverlap(fp, priorPrints) >= novelOverlapLimit {
			continue
		}
		terms := []string{}
		for _, w := range fp.sorted() {
			if _, ok := known[w]; !ok {
				terms = append(terms, w)
			}
		}
		novel[len(emerging)] = terms
		emerging = append(emerging, cp)
	}

	indexes := make([]int, len(emerging))
	for i := range indexes {
		indexes[i] = i
	}
	slices.SortStableFunc(indexes, func(a, b int) int {
		return byPopularity(emerging[a], emerging[b])
	})

	out := make([]domain.NewForumTopic, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, forumTopic(emerging[i], novel[i]))
	}
	return out
}

// bestOverlap is the largest share of fp's tokens found in any single
// prior fingerprint.
func bestOverlap(fp fingerprint, prior []fingerprint) float64 {
	if len(fp) == 0 || len(prior) == 0 {
		return 0
	}
	best := 0.0
	for _, other := range prior {
		ratio := float64(fp.intersectCount(other)) / float64(len(fp))
		if ratio > best {
			best = ratio
		}
	}
	return best
}

func forumTopic(cp communityPost, terms []string) domain.NewForumTopic {
	return domain.NewForumTopic{
		Title:      cp.post.Title,
		Community:  cp.community,
		Score:      cp.post.Score,
		URL:        cp.post.URL,
		NovelTerms: terms,
	}
}

func referenceBreakouts(pageviews map[string]domain.ArticlePageviews) []domain.ReferenceBreakout {
	out := []domain.ReferenceBreakout{}
	for _, mover := range articleMovers(pageviews) {
		if mover.wow <= breakoutThreshold {
			continue
		}
		out = append(out, domain.ReferenceBreakout{
			Article:         mover.article,
			CurrentAvg:      mover.currentAvg,
			PriorAvg:        mover.priorAvg,
			WeekOverWeekPct: round(mover.wow, 1),
		})
	}
	slices.SortStableFunc(out, func(a, b domain.ReferenceBreakout) int {
		return cmp.Compare(b.WeekOverWeekPct, a.WeekOverWeekPct)
	})
	return out
}

// newQuestions reports questions whose fingerprint key is absent from the
// prior list. Questions sharing a key are reported once, in input order.
func newQuestions(current, prior []domain.Question) []domain.NewQuestion {
	seen := map[string]struct{}{}
	for _, q := range prior {
		seen[fingerprintOf(q.Question).key()] = struct{}{}
	}

	out := []domain.NewQuestion{}
	for _, q := range current {
		key := fingerprintOf(q.Question).key()
		if _, old := seen[key]; old {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domain.NewQuestion{
			Question:    q.Question,
			URL:         q.URL,
			Fingerprint: key,
		})
	}
	return out
}

func emergingSummary(r domain.EmergingResult) string {
	var parts []string
	if n := len(r.NewSuggestionQueries); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new rising queries", n))
	}
	if n := len(r.NewForumTopics); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new forum topics", n))
	}
	if n := len(r.ReferenceBreakouts); n > 0 {
		suffix := "s"
		if n == 1 {
			suffix = ""
		}
		parts = append(parts, fmt.Sprintf("%d reference breakout%s", n, suffix))
	}
	if n := len(r.NewQuestions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new questions", n))
	}
	if len(parts) == 0 {
		return noSignalsSummary
	}
	return strings.Join(parts, "; ")
}
