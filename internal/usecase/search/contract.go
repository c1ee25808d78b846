package search

import (
	"context"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

// Corpus is the record set searched by the service.
type Corpus interface {
	Records() []record.Record
	Get(id string) (record.Record, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
