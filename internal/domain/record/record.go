package record

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Type is the entity kind of a record. The set is open: unknown types are kept as-is.
type Type string

// Known record types.
const (
	Street     Type = "street"
	Figure     Type = "figure"
	Phenomenon Type = "phenomenon"
	Industrial Type = "industrial"
)

var typeLabels = map[Type]map[language.Language]string{
	Street:     {language.Russian: "Улица", language.English: "Street"},
	Figure:     {language.Russian: "Личность", language.English: "Figure"},
	Phenomenon: {language.Russian: "Явление", language.English: "Phenomenon"},
	Industrial: {language.Russian: "Промышленность", language.English: "Industry"},
}

// Label returns the display label of the type. Unknown types return the raw tag.
func (t Type) Label(lang language.Language) string {
	if labels, ok := typeLabels[t]; ok {
		if l, ok := labels[lang]; ok {
			return l
		}
	}
	return string(t)
}

// LocalizedContent is the per-language payload of a record.
type LocalizedContent struct {
	Name        string
	Tags        []string
	Description string
	Knowledge   string // multi-line, used by the snippet retriever only
}

// Image is a gallery entry attached to a record.
type Image struct {
	ID          string
	URL         string
	Description string
	Hint        string
}

// Record is a guide entity (immutable value object).
type Record struct {
	id      string
	typ     Type
	content map[language.Language]LocalizedContent
	images  []Image
}

// New validates and creates a Record.
// Every supported language must carry a localized variant with a non-empty name.
func New(
	id string, typ Type, content map[language.Language]LocalizedContent, images []Image,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("%w: record ID is required", domain.ErrInvalidRecord)
	}
	if !idRegex.MatchString(id) {
		return Record{}, fmt.Errorf(
			"%w: record ID %q must be alphanumeric with underscores and hyphens", domain.ErrInvalidRecord, id)
	}
	if typ == "" {
		return Record{}, fmt.Errorf("%w: record %q has no type", domain.ErrInvalidRecord, id)
	}
	for _, lang := range language.All {
		c, ok := content[lang]
		if !ok {
			return Record{}, fmt.Errorf("%w: record %q, language %s", domain.ErrMissingContent, id, lang)
		}
		if c.Name == "" {
			return Record{}, fmt.Errorf("%w: record %q has empty %s name", domain.ErrInvalidRecord, id, lang)
		}
	}

	cloned := make(map[language.Language]LocalizedContent, len(content))
	for lang, c := range content {
		c.Tags = append([]string(nil), c.Tags...)
		cloned[lang] = c
	}

	return Record{
		id:      id,
		typ:     typ,
		content: cloned,
		images:  append([]Image(nil), images...),
	}, nil
}

// ID returns the stable record identifier.
func (r *Record) ID() string { return r.id }

// Type returns the entity kind.
func (r *Record) Type() Type { return r.typ }

// Images returns the gallery entries.
func (r *Record) Images() []Image { return r.images }

// Content returns the localized variant for lang.
func (r *Record) Content(lang language.Language) (LocalizedContent, error) {
	if !lang.IsValid() {
		return LocalizedContent{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	c, ok := r.content[lang]
	if !ok {
		return LocalizedContent{}, fmt.Errorf("%w: record %q, language %s", domain.ErrMissingContent, r.id, lang)
	}
	return c, nil
}
