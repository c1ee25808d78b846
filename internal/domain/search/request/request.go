package request

import (
	"fmt"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	MaxLimit       = 100
)

// Request is a validated search query. An empty query is valid and yields no results.
type Request struct {
	query      string
	lang       language.Language
	searchMode mode.Mode
	limit      int
}

// New validates search parameters.
// Defaults: lang=ru, mode=lexical, limit=0 (all accepted records).
func New(query string, lang language.Language, m mode.Mode, limit int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if lang == "" {
		lang = language.Default
	}
	if !lang.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	if m == "" {
		m = mode.Default
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("limit must not be negative")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{query: query, lang: lang, searchMode: m, limit: limit}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Language returns the content language.
func (r *Request) Language() language.Language { return r.lang }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum results to return; 0 means no limit.
func (r *Request) Limit() int { return r.limit }
