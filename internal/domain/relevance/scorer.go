package relevance

import (
	"fmt"

	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/text"
	"github.com/kailas-cloud/guide/internal/domain/text/stem"
)

// Query is a search query analyzed for one language.
type Query struct {
	lang       language.Language
	normalized string
	tokens     []string
	stems      []string
}

// Language returns the query language.
func (q *Query) Language() language.Language { return q.lang }

// Normalized returns the normalized query text.
func (q *Query) Normalized() string { return q.normalized }

// Tokens returns the unstemmed query tokens.
func (q *Query) Tokens() []string { return q.tokens }

// Stems returns the stemmed query tokens.
func (q *Query) Stems() []string { return q.stems }

// IsEmpty reports whether normalization left no tokens.
func (q *Query) IsEmpty() bool { return len(q.tokens) == 0 }

// Scorer computes relevance scores. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg      Config
	stemmers stem.Set
}

// NewScorer creates a scorer with the given ranking contract and stemmers.
func NewScorer(cfg Config, stemmers stem.Set) *Scorer {
	return &Scorer{cfg: cfg, stemmers: stemmers}
}

// Config returns the ranking contract in use.
func (s *Scorer) Config() Config { return s.cfg }

// Analyze normalizes, tokenizes and stems raw query text for lang.
func (s *Scorer) Analyze(raw string, lang language.Language) (Query, error) {
	st, err := s.stemmers.For(lang)
	if err != nil {
		return Query{}, err
	}
	normalized := text.Normalize(raw)
	tokens := text.Tokenize(normalized)
	return Query{
		lang:       lang,
		normalized: normalized,
		tokens:     tokens,
		stems:      stem.All(st, tokens),
	}, nil
}

// Signals computes every relevance signal of rec for q.
func (s *Scorer) Signals(q *Query, rec *record.Record) (Signals, error) {
	content, err := rec.Content(q.lang)
	if err != nil {
		return Signals{}, err
	}
	st, err := s.stemmers.For(q.lang)
	if err != nil {
		return Signals{}, err
	}

	normName := text.Normalize(content.Name)
	nameStems := stem.All(st, text.Tokenize(normName))
	var tagStems []string
	for _, tag := range content.Tags {
		tagStems = append(tagStems, stem.All(st, text.Tokens(tag))...)
	}
	descStems := stem.All(st, text.Tokens(content.Description))
	knowledgeStems := stem.All(st, text.Tokens(content.Knowledge))

	all := make([]string, 0, len(nameStems)+len(tagStems)+len(descStems)+len(knowledgeStems))
	all = append(all, nameStems...)
	all = append(all, tagStems...)
	all = append(all, descStems...)
	all = append(all, knowledgeStems...)

	return Signals{
		Jaccard:          Jaccard(q.stems, all),
		NameExact:        ExactMatches(q.stems, nameStems),
		NamePartial:      PartialMatches(q.stems, nameStems),
		TagExact:         ExactMatches(q.stems, tagStems),
		TagPartial:       PartialMatches(q.stems, tagStems),
		DescPartial:      PartialMatches(q.stems, descStems),
		KnowledgePartial: PartialMatches(q.stems, knowledgeStems),
		NameSimilarity:   NameSimilarity(q.normalized, normName),
	}, nil
}

// Score returns the weighted relevance of rec for q.
func (s *Scorer) Score(q *Query, rec *record.Record) (float64, error) {
	sig, err := s.Signals(q, rec)
	if err != nil {
		return 0, fmt.Errorf("score record %q: %w", rec.ID(), err)
	}
	return sig.Combine(s.cfg.Weights), nil
}

// Accept applies the adaptive threshold: short queries need less evidence.
func (s *Scorer) Accept(q *Query, score float64) bool {
	return score >= s.cfg.Thresholds.MinScore(len(q.tokens))
}

