package stem

import "github.com/kljensen/snowball/russian"

// Snowball delegates to the Snowball Russian stemmer. It is linguistically
// richer than Suffix but produces different roots, so rankings differ.
type Snowball struct{}

// Stem implements Stemmer.
func (Snowball) Stem(token string) string {
	if token == "" {
		return ""
	}
	root := russian.Stem(token, false)
	if root == "" {
		return token
	}
	return root
}
