package answer

import (
	"context"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/record"
)

// RecordReader looks records up by ID.
type RecordReader interface {
	Get(id string) (record.Record, error)
}

// Answerer generates free-text answers with a hosted language model.
type Answerer interface {
	Answer(ctx context.Context, req domain.AnswerRequest) (string, error)
}
