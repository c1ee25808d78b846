package stem

import "strings"

// minRootLen is the shortest root either phase may produce.
const minRootLen = 3

// RussianSuffixes returns the ordered inflectional ending table.
// Longer endings come first so that "ями" wins over "ям".
// No globals: callers inject the table into NewSuffix.
func RussianSuffixes() []string {
	return []string{
		"иями", "ями", "ами",
		"ого", "его", "ому", "ему",
		"ыми", "ими",
		"ых", "их", "ый", "ий", "ой", "ей",
		"ая", "яя", "ое", "ее", "ую", "юю", "ью",
		"ов", "ев", "ам", "ям", "ах", "ях", "ом", "ем",
		"ия", "ие", "ии",
	}
}

// RussianErodable returns the letters dropped from the end of a root:
// the soft sign, "й" and the vowels.
func RussianErodable() []rune {
	return []rune{'ь', 'й', 'а', 'е', 'ё', 'и', 'о', 'у', 'ы', 'э', 'ю', 'я'}
}

// Suffix is an approximate stemmer: it strips the first matching ending that
// leaves at least three letters, then erodes trailing erodable letters while
// the root is longer than three letters.
type Suffix struct {
	suffixes []string
	erodable map[rune]struct{}
}

// NewSuffix creates a suffix-table stemmer. The inputs are copied.
func NewSuffix(suffixes []string, erodable []rune) *Suffix {
	er := make(map[rune]struct{}, len(erodable))
	for _, r := range erodable {
		er[r] = struct{}{}
	}
	return &Suffix{suffixes: append([]string(nil), suffixes...), erodable: er}
}

// Stem implements Stemmer.
func (s *Suffix) Stem(token string) string {
	if token == "" {
		return ""
	}
	root := []rune(token)

	for _, suf := range s.suffixes {
		if !strings.HasSuffix(token, suf) {
			continue
		}
		n := len([]rune(suf))
		if len(root)-n >= minRootLen {
			root = root[:len(root)-n]
			break
		}
	}

	for len(root) > minRootLen {
		if _, ok := s.erodable[root[len(root)-1]]; !ok {
			break
		}
		root = root[:len(root)-1]
	}
	return string(root)
}
