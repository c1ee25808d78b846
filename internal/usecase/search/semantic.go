package search

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/text"
)

// vectorIndex memoizes record embeddings per language for the process lifetime.
// The corpus is immutable, so entries never go stale.
type vectorIndex struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

func newVectorIndex() *vectorIndex {
	return &vectorIndex{vectors: make(map[string][]float32)}
}

func (v *vectorIndex) get(key string) ([]float32, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	vec, ok := v.vectors[key]
	return vec, ok
}

func (v *vectorIndex) put(key string, vec []float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vectors[key] = vec
}

// DocumentText is the text embedded for a record in semantic mode.
func DocumentText(rec *record.Record, lang language.Language) (string, error) {
	content, err := rec.Content(lang)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s. %s. %s. %s",
		rec.Type().Label(lang),
		content.Name,
		strings.Join(content.Tags, ", "),
		content.Knowledge,
	), nil
}

// rankSemantic keeps records whose embedding is closer than the threshold to the query.
func (s *Service) rankSemantic(
	ctx context.Context, query string, lang language.Language,
) ([]record.Record, error) {
	if s.embed == nil {
		return nil, domain.ErrSemanticSearchDisabled
	}
	if !lang.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	if len(text.Tokens(query)) == 0 {
		return []record.Record{}, nil
	}

	qv, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	recs := s.corpus.Records()
	hits := make([]scored, 0, len(recs))
	for i := range recs {
		vec, err := s.recordVector(ctx, &recs[i], lang)
		if err != nil {
			return nil, err
		}
		if sim := Cosine(qv.Embedding, vec); sim > s.threshold {
			hits = append(hits, scored{rec: recs[i], score: sim})
		}
	}

	return sortByScore(hits), nil
}

func (s *Service) recordVector(
	ctx context.Context, rec *record.Record, lang language.Language,
) ([]float32, error) {
	key := string(lang) + ":" + rec.ID()
	if vec, ok := s.vectors.get(key); ok {
		return vec, nil
	}
	doc, err := DocumentText(rec, lang)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", rec.ID(), err)
	}
	res, err := s.embed.Embed(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("embed record %q: %w", rec.ID(), err)
	}
	s.vectors.put(key, res.Embedding)
	return res.Embedding, nil
}

// Cosine returns the cosine similarity of a and b, or 0 for mismatched or zero vectors.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
