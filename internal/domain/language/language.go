// Package language defines the two content languages served by the guide.
package language

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/guide/internal/domain"
)

// Language is a content language tag.
type Language string

// Supported languages.
const (
	Russian Language = "ru"
	English Language = "en"
)

// Default is used when a request does not carry a language tag.
const Default = Russian

// All lists supported languages in display order.
var All = []Language{Russian, English}

// IsValid checks if the tag is one of the supported languages.
func (l Language) IsValid() bool {
	return l == Russian || l == English
}

func (l Language) String() string { return string(l) }

// Parse converts a raw tag into a Language. Empty input yields Default.
func Parse(raw string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return Default, nil
	}
	l := Language(tag)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, raw)
	}
	return l, nil
}

// AskPrompt returns the localized "please ask a question" message.
func (l Language) AskPrompt() string {
	if l == English {
		return "Please ask a question."
	}
	return "Пожалуйста, задайте вопрос."
}
