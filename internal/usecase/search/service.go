package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/relevance"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
	"github.com/kailas-cloud/guide/internal/domain/search/request"
	"github.com/kailas-cloud/guide/internal/metrics"
)

// DefaultSemanticThreshold is the minimum cosine similarity for a semantic hit.
const DefaultSemanticThreshold = 0.75

type cacheKey struct {
	mode  mode.Mode
	lang  language.Language
	query string
}

// Service ranks corpus records for free-text queries in lexical or semantic mode.
type Service struct {
	corpus    Corpus
	scorer    *relevance.Scorer
	embed     Embedder
	threshold float64
	vectors   *vectorIndex
	pool      *ants.Pool
	minPar    int
	cache     *lru.Cache[cacheKey, []record.Record]
	logger    *zap.Logger
}

// New creates a search service. Semantic mode stays disabled until WithEmbedder.
func New(corpus Corpus, scorer *relevance.Scorer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		corpus:    corpus,
		scorer:    scorer,
		threshold: DefaultSemanticThreshold,
		logger:    logger,
	}
}

// WithEmbedder enables semantic mode. threshold <= 0 keeps DefaultSemanticThreshold.
func (s *Service) WithEmbedder(e Embedder, threshold float64) *Service {
	s.embed = e
	if threshold > 0 {
		s.threshold = threshold
	}
	s.vectors = newVectorIndex()
	return s
}

// WithPool scores records on pool once the corpus holds at least minRecords records.
func (s *Service) WithPool(pool *ants.Pool, minRecords int) *Service {
	s.pool = pool
	s.minPar = minRecords
	return s
}

// WithCache keeps up to size ranked result lists. size <= 0 disables caching.
func (s *Service) WithCache(size int) (*Service, error) {
	if size <= 0 {
		s.cache = nil
		return s, nil
	}
	c, err := lru.New[cacheKey, []record.Record](size)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	s.cache = c
	return s, nil
}

// Search ranks the corpus for req, most relevant first.
// An empty query yields an empty non-nil slice.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]record.Record, error) {
	m, lang := req.Mode(), req.Language()
	start := time.Now()

	results, err := s.search(ctx, m, req.Query(), lang)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(m), string(lang), "error").Inc()
		return nil, err
	}
	metrics.SearchDuration.WithLabelValues(string(m)).Observe(time.Since(start).Seconds())
	metrics.SearchRequestsTotal.WithLabelValues(string(m), string(lang), "success").Inc()

	if req.Limit() > 0 && len(results) > req.Limit() {
		results = results[:req.Limit()]
	}
	metrics.SearchResults.WithLabelValues(string(m)).Observe(float64(len(results)))

	return results, nil
}

// Get returns a record by ID.
func (s *Service) Get(_ context.Context, id string) (record.Record, error) {
	rec, err := s.corpus.Get(id)
	if err != nil {
		return record.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (s *Service) search(
	ctx context.Context, m mode.Mode, query string, lang language.Language,
) ([]record.Record, error) {
	key := cacheKey{mode: m, lang: lang, query: strings.TrimSpace(query)}
	if cached, ok := s.fromCache(key); ok {
		return cached, nil
	}

	var (
		results []record.Record
		err     error
	)
	switch m {
	case mode.Lexical:
		results, err = s.rankLexical(ctx, query, lang)
	case mode.Semantic:
		results, err = s.rankSemantic(ctx, query, lang)
		if err != nil && s.canFallBack(ctx, err) {
			s.logger.Warn("Semantic search failed, using lexical ranking",
				zap.String("lang", string(lang)),
				zap.Error(err),
			)
			metrics.SearchFallbacksTotal.Inc()
			// not cached: the next call retries the embedder
			return s.rankLexical(ctx, query, lang)
		}
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", m)
	}
	if err != nil {
		return nil, err
	}

	s.toCache(key, results)
	return results, nil
}

func (s *Service) canFallBack(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, domain.ErrUnsupportedLanguage)
}

func (s *Service) fromCache(key cacheKey) ([]record.Record, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, ok := s.cache.Get(key)
	if !ok {
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
	return clone(cached), true
}

func (s *Service) toCache(key cacheKey, results []record.Record) {
	if s.cache == nil {
		return
	}
	s.cache.Add(key, clone(results))
}

func clone(recs []record.Record) []record.Record {
	out := make([]record.Record, len(recs))
	copy(out, recs)
	return out
}
