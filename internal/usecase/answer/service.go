package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/snippet"
	"github.com/kailas-cloud/guide/internal/domain/text"
	"github.com/kailas-cloud/guide/internal/metrics"
)

// Source tells who produced an answer.
type Source string

// Answer sources.
const (
	SourceLocal Source = "local"
	SourceLLM   Source = "llm"
)

// Answer is the reply to a follow-up question about one record.
type Answer struct {
	Text    string
	Source  Source
	Outcome snippet.Outcome
}

// Service answers follow-up questions about corpus records.
type Service struct {
	records RecordReader
	llm     Answerer
	logger  *zap.Logger
}

// New creates an answer service. llm can be nil: the snippet retriever answers alone.
func New(records RecordReader, llm Answerer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, llm: llm, logger: logger}
}

// Ask answers question about the record recordID in lang.
// An empty question yields the localized prompt without calling the model.
// Model failures fall back to the local snippet retriever.
func (s *Service) Ask(
	ctx context.Context, recordID, question string, lang language.Language,
) (Answer, error) {
	rec, err := s.records.Get(recordID)
	if err != nil {
		return Answer{}, fmt.Errorf("get record: %w", err)
	}
	content, err := rec.Content(lang)
	if err != nil {
		return Answer{}, fmt.Errorf("record %q: %w", recordID, err)
	}

	if s.llm != nil && len(text.Tokens(question)) > 0 {
		reply, err := s.llm.Answer(ctx, domain.AnswerRequest{
			Subject:   content.Name,
			Knowledge: content.Knowledge,
			Question:  question,
			Lang:      string(lang),
		})
		if err == nil {
			return s.done(Answer{Text: reply, Source: SourceLLM, Outcome: snippet.Found}), nil
		}
		if ctx.Err() != nil {
			return Answer{}, fmt.Errorf("answer: %w", ctx.Err())
		}
		s.logger.Warn("Answer provider failed, using local knowledge",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}

	res := snippet.Retrieve(question, content, lang)
	return s.done(Answer{Text: res.Text, Source: SourceLocal, Outcome: res.Outcome}), nil
}

func (s *Service) done(a Answer) Answer {
	metrics.AnswersTotal.WithLabelValues(string(a.Source), string(a.Outcome)).Inc()
	return a
}
