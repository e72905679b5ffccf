package analysis

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"TrendEngine/internal/domain"
)

const (
	// MinForumRelevance is the score a post needs to stay in the brief.
	MinForumRelevance = 0.35
	// MaxPostsPerCommunity caps the posts kept per community.
	MaxPostsPerCommunity = 5
	// MinTechLeadRelevance is the score a tech lead needs to stay.
	MinTechLeadRelevance = 0.20

	highTierBase    = 0.4
	mediumTierBase  = 0.25
	broadTierBase   = 0.1
	shortKeywordLen = 4
	strongMatch     = 0.2
	weakMatch       = 0.1
	keywordScoreCap = 0.6
	techStrongMatch = 0.25
	techWeakMatch   = 0.1
)

var forumPositive = []string{
	"pain", "ache", "sore", "stiff", "tight", "numb", "tingling",
	"inflammation", "flare", "chronic", "acute", "injury", "injured",
	"herniat", "bulge", "pinch", "impinge", "tear", "strain", "sprain",
	"sciatica", "radiculopathy", "stenosis", "arthritis", "tendonitis",
	"tendinitis", "bursitis", "fasciitis", "fibromyalgia", "dysfunction",
	"discomfort", "weakness", "instability", "clicking", "popping",
	"grinding", "swelling", "burning",
	"back", "neck", "shoulder", "hip", "knee", "ankle", "wrist",
	"spine", "disc", "vertebra", "joint", "nerve", "muscle", "tendon",
	"ligament", "rotator", "pelvic", "lumbar", "cervical", "thoracic",
	"hamstring", "quad", "glute", "piriformis", "psoas", "flexor",
	"elbow", "calf", "achilles", "forearm", "trap",
	"form check", "form breakdown", "bad form", "proper form",
	"technique", "biomechanic", "movement pattern", "compensation",
	"imbalance", "asymmetr", "overuse",
	"deadlift form", "squat form", "bench form", "press form",
	"rounding", "butt wink", "knee cave", "valgus",
	"warm up", "cool down", "prehab", "accessory",
	"stretch", "exercise", "mobility", "flexibility", "strengthen",
	"rehab", "recovery", "therapy", "physical therapy", "pt",
	"foam roll", "massage", "trigger point", "release", "corrective",
	"yoga", "pilates", "movement", "posture", "ergonomic", "alignment",
	"decompression", "traction", "brace", "support",
	"chiropract", "orthoped", "surgeon", "mri", "x-ray", "xray",
	"diagnosis", "treatment", "heal", "relief", "improve",
	"success story", "what helped", "fixed", "cured",
	"running form", "gait", "runner", "marathon",
	"it band", "shin splint", "plantar", "stride",
	"golf swing", "golf back", "golf shoulder", "bike fit",
	"saddle sore", "handlebar", "wod injury", "box jump",
	"kipping", "snatch form", "clean form",
	"cancer", "chemo", "oncolog", "survivor", "fatigue",
	"longevity", "aging", "functional", "mobility drill",
}

var forumNegative = []string{
	"meme", "shitpost", "rant wednesday", "gym story saturday",
	"victory sunday", "daily thread", "weekly thread",
	"selfie", "progress pic", "physique", "dating", "nsfw", "political",
	"super bowl", "game thread", "match thread", "episode",
	"salary", "hiring", "fired", "quit my job", "interview",
	"recipe", "protein powder", "creatine", "preworkout",
	"what should i eat", "calorie count", "bulk or cut",
	"favorite golf course", "handicap", "putting",
	"what bike should", "new bike day", "strava",
}

var highRelevanceCommunities = newWordSet(
	"backpain", "sciatica", "chronicpain", "physicaltherapy",
	"pelvicfloor", "tmj", "posture", "ergonomics",
)

var mediumRelevanceCommunities = newWordSet(
	"fibromyalgia", "flexibility", "bodyweightfitness",
	"yogatherapy", "cancer", "cancerfighters", "breastcancer",
	"advancedrunning", "ultrarunning",
)

var techPositive = []string{
	"pain", "ache", "injury", "chronic", "inflammation",
	"sciatica", "tendonitis", "tendinitis", "carpal tunnel",
	"repetitive strain", "rsi injury", "rsi symptoms", "rsi prevention",
	"back problem", "neck problem", "shoulder problem",
	"herniated", "pinched nerve",
	"ergonomic", "ergonomics", "posture", "standing desk",
	"sit-stand", "office chair", "lumbar support", "wrist rest",
	"monitor height", "desk setup", "workspace health",
	"typing injury", "mouse injury",
	"physical therapy", "physiotherapy", "stretch", "exercise",
	"yoga", "mobility", "recovery", "rehab", "wellness",
	"health", "fitness", "meditation", "sleep",
	"burnout", "sedentary", "sitting disease", "desk worker",
	"remote work health", "wfh health", "programmer health",
	"developer health", "tech worker health",
	"eye strain", "screen time",
}

var techNegative = []string{
	"show hn", "launch hn", "hiring", "who is hiring",
	"ycombinator", "y combinator", "demo day",
	"llm", "gpt", "claude code", "copilot", "chatgpt",
	"machine learning", "deep learning", "neural network",
	"kubernetes", "docker", "terraform", "aws", "azure", "gcp",
	"blockchain", "crypto", "bitcoin", "ethereum", "nft",
	"saas", "startup", "funding", "series a", "series b",
	"ipo", "valuation", "acquisition",
	"compiler", "parser", "database", "sql", "nosql",
	"javascript", "typescript", "python framework", "rust lang",
	"algorithm", "sorting", "turing machine",
	"open source", "github", "gitlab", "repository",
	"api", "sdk", "framework", "library",
	"game", "gaming", "movie", "book review", "podcast",
	"political", "election", "lawsuit", "antitrust",
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// keywordMatches counts short keywords as whole words (weak) and longer
// ones as substrings (strong).
func keywordMatches(lower string, keywords []string) (strong, weak int) {
	words := newWordSet(strings.Fields(lower)...)
	for _, kw := range keywords {
		if len(kw) <= shortKeywordLen {
			if words.has(kw) {
				weak++
			}
			continue
		}
		if strings.Contains(lower, kw) {
			strong++
		}
	}
	return strong, weak
}

// ForumRelevance scores a post title from 0 to 1. Off-topic phrases score
// zero; pain communities start from a higher base.
func ForumRelevance(title, community string) float64 {
	lower := strings.ToLower(title)
	if containsAny(lower, forumNegative) {
		return 0
	}

	base := broadTierBase
	switch c := strings.ToLower(community); {
	case highRelevanceCommunities.has(c):
		base = highTierBase
	case mediumRelevanceCommunities.has(c):
		base = mediumTierBase
	}

	strong, weak := keywordMatches(lower, forumPositive)
	keywordScore := math.Min(float64(strong)*strongMatch+float64(weak)*weakMatch, keywordScoreCap)
	return math.Min(base+keywordScore, 1)
}

// FilterForumPosts keeps relevant posts, best first, at most
// MaxPostsPerCommunity per community. Communities left empty are dropped;
// when nothing survives the result is nil.
func FilterForumPosts(forum map[string][]domain.ForumPost) map[string][]domain.ForumPost {
	if len(forum) == 0 {
		return nil
	}

	filtered := map[string][]domain.ForumPost{}
	for community, posts := range forum {
		var kept []domain.ForumPost
		for _, post := range posts {
			score := ForumRelevance(post.Title, community)
			if score < MinForumRelevance {
				continue
			}
			rounded := round(score, 2)
			post.RelevanceScore = &rounded
			kept = append(kept, post)
		}
		if len(kept) == 0 {
			continue
		}
		slices.SortStableFunc(kept, func(a, b domain.ForumPost) int {
			if c := cmp.Compare(*b.RelevanceScore, *a.RelevanceScore); c != 0 {
				return c
			}
			return cmp.Compare(b.Score, a.Score)
		})
		if len(kept) > MaxPostsPerCommunity {
			kept = kept[:MaxPostsPerCommunity]
		}
		filtered[community] = kept
	}

	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// TechLeadRelevance scores a tech story title from 0 to 1.
func TechLeadRelevance(title string) float64 {
	lower := strings.ToLower(title)
	if containsAny(lower, techNegative) {
		return 0
	}
	strong, weak := keywordMatches(lower, techPositive)
	return math.Min(float64(strong)*techStrongMatch+float64(weak)*techWeakMatch, 1)
}

// FilterTechLeads keeps relevant leads sorted by relevance, or nil when
// none qualify.
func FilterTechLeads(leads []domain.TechLead) []domain.TechLead {
	var kept []domain.TechLead
	for _, lead := range leads {
		score := TechLeadRelevance(lead.Title)
		if score < MinTechLeadRelevance {
			continue
		}
		rounded := round(score, 2)
		lead.RelevanceScore = &rounded
		kept = append(kept, lead)
	}
	if len(kept) == 0 {
		return nil
	}
	slices.SortStableFunc(kept, func(a, b domain.TechLead) int {
		return cmp.Compare(*b.RelevanceScore, *a.RelevanceScore)
	})
	return kept
}
