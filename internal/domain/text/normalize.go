// Package text folds free text into comparable tokens.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalize lower-cases s, folds "ё" into "е", replaces every rune that is not a
// Latin or Cyrillic letter, a digit or whitespace with a space, collapses
// whitespace runs and trims the result. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	// Casers are stateful, build the chain per call.
	t := transform.Chain(cases.Lower(language.Und), runes.Map(fold))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.Map(fold, strings.ToLower(s))
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokenize splits normalized text on single spaces and drops empty tokens.
func Tokenize(normalized string) []string {
	parts := strings.Split(normalized, " ")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Tokens normalizes and tokenizes s in one step.
func Tokens(s string) []string {
	return Tokenize(Normalize(s))
}

func fold(r rune) rune {
	switch {
	case r == 'ё':
		return 'е'
	case unicode.IsSpace(r):
		return ' '
	case isWordRune(r):
		return r
	default:
		return ' '
	}
}

func isWordRune(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	return unicode.IsLetter(r) && (unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r))
}
