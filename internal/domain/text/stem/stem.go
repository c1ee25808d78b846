// Package stem reduces tokens to comparable roots, one strategy per language.
package stem

import (
	"fmt"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
)

// Stemmer reduces a normalized token to its root.
type Stemmer interface {
	Stem(token string) string
}

// Identity returns tokens unchanged. Used for English.
type Identity struct{}

// Stem implements Stemmer.
func (Identity) Stem(token string) string { return token }

// Variant names accepted by NewSet.
const (
	VariantSuffix   = "suffix"
	VariantSnowball = "snowball"
)

// Set maps each supported language to its stemmer.
type Set struct {
	byLang map[language.Language]Stemmer
}

// NewSet builds the per-language strategies. variant selects the Russian
// stemmer; English always uses Identity.
func NewSet(variant string) (Set, error) {
	var ru Stemmer
	switch variant {
	case "", VariantSuffix:
		ru = NewSuffix(RussianSuffixes(), RussianErodable())
	case VariantSnowball:
		ru = Snowball{}
	default:
		return Set{}, fmt.Errorf("unknown stemmer variant %q", variant)
	}
	return Set{byLang: map[language.Language]Stemmer{
		language.Russian: ru,
		language.English: Identity{},
	}}, nil
}

// DefaultSet uses the suffix-table Russian stemmer.
func DefaultSet() Set {
	s, _ := NewSet(VariantSuffix)
	return s
}

// For returns the stemmer for lang.
func (s Set) For(lang language.Language) (Stemmer, error) {
	st, ok := s.byLang[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	return st, nil
}

// All stems every token with st.
func All(st Stemmer, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = st.Stem(t)
	}
	return out
}
