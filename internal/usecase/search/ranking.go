package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/relevance"
)

type scored struct {
	rec   record.Record
	score float64
}

// rankLexical scores every record, keeps those above the adaptive threshold
// and sorts them by score. Ties keep corpus order.
func (s *Service) rankLexical(
	ctx context.Context, query string, lang language.Language,
) ([]record.Record, error) {
	q, err := s.scorer.Analyze(query, lang)
	if err != nil {
		return nil, fmt.Errorf("analyze query: %w", err)
	}
	if q.IsEmpty() {
		return []record.Record{}, nil
	}

	recs := s.corpus.Records()
	scores := make([]float64, len(recs))
	errs := make([]error, len(recs))

	if s.pool != nil && len(recs) >= s.minPar {
		s.scoreParallel(ctx, &q, recs, scores, errs)
	} else {
		s.scoreRange(ctx, &q, recs, scores, errs, 0, len(recs))
	}
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	accepted := make([]scored, 0, len(recs))
	for i := range recs {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if s.scorer.Accept(&q, scores[i]) {
			accepted = append(accepted, scored{rec: recs[i], score: scores[i]})
		}
	}

	return sortByScore(accepted), nil
}

func (s *Service) scoreRange(
	ctx context.Context, q *relevance.Query, recs []record.Record,
	scores []float64, errs []error, from, to int,
) {
	for i := from; i < to; i++ {
		if ctx.Err() != nil {
			return
		}
		scores[i], errs[i] = s.scorer.Score(q, &recs[i])
	}
}

// scoreParallel splits the corpus into one chunk per pool worker. Each chunk
// writes only its own slots, so results stay in corpus order.
func (s *Service) scoreParallel(
	ctx context.Context, q *relevance.Query, recs []record.Record,
	scores []float64, errs []error,
) {
	workers := s.pool.Cap()
	if workers <= 0 {
		workers = 1
	}
	chunk := (len(recs) + workers - 1) / workers
	if chunk == 0 {
		return
	}

	var wg sync.WaitGroup
	for from := 0; from < len(recs); from += chunk {
		to := min(from+chunk, len(recs))
		task := func() {
			defer wg.Done()
			s.scoreRange(ctx, q, recs, scores, errs, from, to)
		}
		wg.Add(1)
		if err := s.pool.Submit(task); err != nil {
			// pool closed or overloaded: score on the caller goroutine
			task()
		}
	}
	wg.Wait()
}

func sortByScore(items []scored) []record.Record {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	out := make([]record.Record, len(items))
	for i := range items {
		out[i] = items[i].rec
	}
	return out
}
