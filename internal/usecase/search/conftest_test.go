package search

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/relevance"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
	"github.com/kailas-cloud/guide/internal/domain/search/request"
	"github.com/kailas-cloud/guide/internal/domain/text/stem"
)

type content struct {
	name, desc, knowledge string
	tags                  []string
}

func newRecord(t *testing.T, id string, typ record.Type, ru, en content) record.Record {
	t.Helper()
	r, err := record.New(id, typ, map[language.Language]record.LocalizedContent{
		language.Russian: {Name: ru.name, Tags: ru.tags, Description: ru.desc, Knowledge: ru.knowledge},
		language.English: {Name: en.name, Tags: en.tags, Description: en.desc, Knowledge: en.knowledge},
	}, nil)
	require.NoError(t, err)
	return r
}

func fixtureRecords(t *testing.T) []record.Record {
	t.Helper()
	return []record.Record{
		newRecord(t, "street-satpayev", record.Street,
			content{
				name: "Улица Сатпаева", tags: []string{"улица"},
				desc:      "Одна из главных улиц города.",
				knowledge: "Названа в честь Каныша Сатпаева.\nДлина около 3 км.",
			},
			content{
				name: "Satpayev Street", tags: []string{"street"},
				desc:      "One of the main streets of the city.",
				knowledge: "Named after Kanysh Satpayev.",
			}),
		newRecord(t, "figure-satpayev", record.Figure,
			content{
				name: "Каныш Сатпаев", tags: []string{"геолог", "академик"},
				desc:      "Советский геолог, основатель казахстанской геологической школы.",
				knowledge: "Родился в 1899 году в Баянаульском районе.",
			},
			content{
				name: "Kanysh Satpayev", tags: []string{"geologist", "academician"},
				desc:      "Soviet geologist and founder of the Kazakh geological school.",
				knowledge: "Born in 1899 in Bayanaul district.",
			}),
		newRecord(t, "industrial-aluminium", record.Industrial,
			content{
				name: "Алюминиевый завод", tags: []string{"завод", "промышленность"},
				desc:      "Крупнейшее предприятие отрасли.",
				knowledge: "Запущен в 2007 году.",
			},
			content{
				name: "Aluminium Smelter", tags: []string{"plant", "industry"},
				desc:      "The largest enterprise of the industry.",
				knowledge: "Launched in 2007.",
			}),
		newRecord(t, "phenomenon-irtysh", record.Phenomenon,
			content{
				name: "Набережная Иртыша", tags: []string{"река", "прогулка"},
				desc:      "Любимое место прогулок горожан.",
				knowledge: "Иртыш течёт через весь город.",
			},
			content{
				name: "Irtysh Embankment", tags: []string{"river", "walk"},
				desc:      "A favourite walking place of the townspeople.",
				knowledge: "The Irtysh flows through the whole city.",
			}),
	}
}

// countingCorpus counts full scans so cache hits can be observed.
type countingCorpus struct {
	record.Corpus
	scans atomic.Int32
}

func (c *countingCorpus) Records() []record.Record {
	c.scans.Add(1)
	return c.Corpus.Records()
}

func newCorpus(t *testing.T, recs ...record.Record) *countingCorpus {
	t.Helper()
	if len(recs) == 0 {
		recs = fixtureRecords(t)
	}
	c, err := record.NewCorpus(recs...)
	require.NoError(t, err)
	return &countingCorpus{Corpus: c}
}

func newService(t *testing.T, corpus Corpus) *Service {
	t.Helper()
	return New(corpus, relevance.NewScorer(relevance.DefaultConfig(), stem.DefaultSet()), nil)
}

func newRequest(t *testing.T, query string, lang language.Language, m mode.Mode, limit int) *request.Request {
	t.Helper()
	req, err := request.New(query, lang, m, limit)
	require.NoError(t, err)
	return &req
}

func ids(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].ID()
	}
	return out
}

// keywordEmbedder maps text to [occurrences of keyword, 1].
type keywordEmbedder struct {
	keyword string
	err     error
	calls   atomic.Int32
}

func (e *keywordEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	e.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return domain.EmbeddingResult{}, err
	}
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	n := strings.Count(strings.ToLower(text), e.keyword)
	return domain.EmbeddingResult{Embedding: []float32{float32(n), 1}}, nil
}
