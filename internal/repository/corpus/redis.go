package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/guide/internal/db"
	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

// kvStore is the consumer interface for the Redis corpus source (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisSource keeps the whole corpus as one JSON array at a single key.
type RedisSource struct {
	store kvStore
	key   string
}

// NewRedisSource creates a Redis-backed source. An empty key uses domain.DefaultCorpusKey.
func NewRedisSource(store kvStore, key string) *RedisSource {
	if key == "" {
		key = domain.DefaultCorpusKey
	}
	return &RedisSource{store: store, key: key}
}

// Key returns the Redis key holding the corpus.
func (s *RedisSource) Key() string { return s.key }

// Load reads and validates the corpus.
func (s *RedisSource) Load(ctx context.Context) (record.Corpus, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return record.Corpus{}, fmt.Errorf("corpus key %q: %w", s.key, domain.ErrNotFound)
		}
		return record.Corpus{}, fmt.Errorf("load corpus: %w", err)
	}
	return Parse(data)
}

// Save replaces the stored corpus.
func (s *RedisSource) Save(ctx context.Context, c *record.Corpus) error {
	recs := c.Records()
	dtos := make([]recordDTO, 0, len(recs))
	for i := range recs {
		d, err := fromDomain(&recs[i])
		if err != nil {
			return fmt.Errorf("encode record %q: %w", recs[i].ID(), err)
		}
		dtos = append(dtos, d)
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save corpus: %w", err)
	}
	return nil
}
