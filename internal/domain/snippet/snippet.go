// Package snippet extracts knowledge lines that mention a follow-up question.
package snippet

import (
	"strings"

	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/text"
)

// NoInformation is returned when no knowledge line matches.
// It is the same for every language; see DESIGN.md (open question).
const NoInformation = "К сожалению, в базе знаний нет информации по этому вопросу."

// Outcome tells which branch produced a Result.
type Outcome string

// Retrieval outcomes.
const (
	Found         Outcome = "found"
	EmptyQuestion Outcome = "empty_question"
	NoMatch       Outcome = "no_match"
)

// Result is the retriever answer.
type Result struct {
	Text    string
	Outcome Outcome
	Lines   int // number of matched lines
}

// Retrieve returns the knowledge lines of content that contain any normalized
// question token as a substring of the normalized line. Tokens are not stemmed.
// Matched lines keep their original text and order and are joined with "\n".
func Retrieve(question string, content record.LocalizedContent, lang language.Language) Result {
	tokens := text.Tokens(question)
	if len(tokens) == 0 {
		return Result{Text: lang.AskPrompt(), Outcome: EmptyQuestion}
	}

	var matched []string
	for _, line := range splitLines(content.Knowledge) {
		if containsAny(text.Normalize(line), tokens) {
			matched = append(matched, line)
		}
	}
	if len(matched) == 0 {
		return Result{Text: NoInformation, Outcome: NoMatch}
	}
	return Result{Text: strings.Join(matched, "\n"), Outcome: Found, Lines: len(matched)}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func containsAny(line string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(line, t) {
			return true
		}
	}
	return false
}
