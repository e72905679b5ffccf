package analysis

import (
	"slices"
	"strconv"
	"strings"
)

var stopwords = newWordSet(
	"the", "is", "a", "an", "my", "i", "me", "we", "our", "you", "your",
	"it", "its", "this", "that", "and", "or", "but", "in", "on", "at",
	"to", "for", "of", "with", "from", "by", "as", "be", "was", "were",
	"been", "am", "are", "do", "does", "did", "have", "has", "had",
	"will", "would", "could", "should", "can", "may", "might", "not",
	"no", "so", "if", "then", "just", "also", "very", "really", "about",
	"all", "any", "some", "what", "when", "how", "who", "which", "there",
	"here", "more", "other", "than", "too", "only", "after", "before",
	"now", "into", "over", "up", "out", "like", "im", "ive", "dont",
	"cant", "get", "got", "going", "still", "even",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// fingerprint is the set of significant lowercase tokens of a short text.
type fingerprint map[string]struct{}

func fingerprintOf(text string) fingerprint {
	fp := fingerprint{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if stopwords.has(w) {
			continue
		}
		fp[w] = struct{}{}
	}
	return fp
}

func (fp fingerprint) sorted() []string {
	out := make([]string, 0, len(fp))
	for w := range fp {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// key renders the fingerprint as a stable string.
func (fp fingerprint) key() string {
	return strings.Join(fp.sorted(), " ")
}

func (fp fingerprint) intersectCount(other fingerprint) int {
	n := 0
	for w := range fp {
		if _, ok := other[w]; ok {
			n++
		}
	}
	return n
}

// round rounds half-to-even on the exact binary value, the way decimal
// formatting does.
func round(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}

func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
