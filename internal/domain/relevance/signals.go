package relevance

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Signals holds the raw value of every relevance signal for one query/record pair.
type Signals struct {
	Jaccard          float64
	NameExact        int
	NamePartial      int
	TagExact         int
	TagPartial       int
	DescPartial      int
	KnowledgePartial int
	NameSimilarity   float64
}

// Combine folds the signals into one unnormalized score.
func (s Signals) Combine(w Weights) float64 {
	return s.Jaccard*w.Jaccard +
		float64(s.NameExact)*w.NameExact +
		float64(s.NamePartial)*w.NamePartial +
		float64(s.TagExact)*w.TagExact +
		float64(s.TagPartial)*w.TagPartial +
		float64(s.DescPartial)*w.DescPartial +
		float64(s.KnowledgePartial)*w.KnowledgePartial +
		s.NameSimilarity*w.NameSimilarity
}

// Jaccard returns |A∩B| / |A∪B| over the distinct elements of a and b.
// Either side empty yields 0.
func Jaccard(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for k := range sa {
		if _, ok := sb[k]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// ExactMatches counts the query stems, position by position, that equal some field stem.
func ExactMatches(query, field []string) int {
	set := toSet(field)
	n := 0
	for _, q := range query {
		if _, ok := set[q]; ok {
			n++
		}
	}
	return n
}

// PartialMatches counts the query stems for which some field stem is a prefix
// of it or it is a prefix of some field stem. Exact matches qualify too.
func PartialMatches(query, field []string) int {
	n := 0
	for _, q := range query {
		for _, f := range field {
			if strings.HasPrefix(q, f) || strings.HasPrefix(f, q) {
				n++
				break
			}
		}
	}
	return n
}

// NameSimilarity returns 1 - levenshtein(query, name) / max(len(query), len(name), 1),
// with lengths counted in runes over the normalized strings.
func NameSimilarity(query, name string) float64 {
	longest := max(utf8.RuneCountInString(query), utf8.RuneCountInString(name), 1)
	return 1 - float64(levenshtein.ComputeDistance(query, name))/float64(longest)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
