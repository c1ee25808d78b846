// Package relevance scores a query against a record with weighted lexical signals.
package relevance

// Weights are the multipliers of the eight relevance signals.
type Weights struct {
	Jaccard          float64
	NameExact        float64
	NamePartial      float64
	TagExact         float64
	TagPartial       float64
	DescPartial      float64
	KnowledgePartial float64
	NameSimilarity   float64
}

// Thresholds define the adaptive accept gate.
type Thresholds struct {
	ShortQueryTokens int     // queries with at most this many tokens are "short"
	Short            float64 // minimum score for short queries
	Long             float64 // minimum score for longer queries
}

// Config is the complete ranking contract. Changing any value changes rankings.
type Config struct {
	Weights    Weights
	Thresholds Thresholds
}

// DefaultConfig returns the ranking contract: name matches dominate, knowledge
// matches barely move the score, fuzzy name closeness breaks near-ties.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Jaccard:          3,
			NameExact:        3,
			NamePartial:      2.5,
			TagExact:         2,
			TagPartial:       1.5,
			DescPartial:      1,
			KnowledgePartial: 0.5,
			NameSimilarity:   1.5,
		},
		Thresholds: Thresholds{
			ShortQueryTokens: 2,
			Short:            0.2,
			Long:             0.5,
		},
	}
}

// MinScore returns the accept bound for a query with n normalized tokens.
func (t Thresholds) MinScore(n int) float64 {
	if n <= t.ShortQueryTokens {
		return t.Short
	}
	return t.Long
}
