package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/language"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/search/mode"
	"github.com/kailas-cloud/guide/internal/metrics"
)

func TestSearch_Lexical(t *testing.T) {
	tests := []struct {
		name  string
		query string
		lang  language.Language
		want  []string
	}{
		{"street by surname", "Сатпаева", language.Russian,
			[]string{"street-satpayev", "figure-satpayev", "industrial-aluminium", "phenomenon-irtysh"}},
		{"tag match", "улица", language.Russian, []string{"street-satpayev", "industrial-aluminium"}},
		{"single hit", "завод", language.Russian, []string{"industrial-aluminium"}},
		{"two tokens prefer the figure", "геолог Сатпаев", language.Russian,
			[]string{"figure-satpayev", "street-satpayev"}},
		{"three tokens use the long threshold", "улица сатпаева город", language.Russian,
			[]string{"street-satpayev", "figure-satpayev", "phenomenon-irtysh"}},
		{"english", "satpayev", language.English,
			[]string{"street-satpayev", "figure-satpayev", "phenomenon-irtysh"}},
	}

	svc := newService(t, newCorpus(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(context.Background(), newRequest(t, tt.query, tt.lang, mode.Lexical, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newService(t, newCorpus(t))
	for _, q := range []string{"", "   ", "?!…", "— ,"} {
		got, err := svc.Search(context.Background(), newRequest(t, q, language.Russian, mode.Lexical, 0))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestSearch_TiesKeepCorpusOrder(t *testing.T) {
	recs := fixtureRecords(t)
	// industrial and irtysh both score only on name similarity, 3/17 each
	forward := newService(t, newCorpus(t, recs...))
	got, err := forward.Search(context.Background(), newRequest(t, "Сатпаева", language.Russian, mode.Lexical, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"industrial-aluminium", "phenomenon-irtysh"}, ids(got)[2:])

	reversed := newService(t, newCorpus(t, recs[0], recs[1], recs[3], recs[2]))
	got, err = reversed.Search(context.Background(), newRequest(t, "Сатпаева", language.Russian, mode.Lexical, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"phenomenon-irtysh", "industrial-aluminium"}, ids(got)[2:])
}

func TestSearch_Limit(t *testing.T) {
	svc := newService(t, newCorpus(t))
	got, err := svc.Search(context.Background(), newRequest(t, "Сатпаева", language.Russian, mode.Lexical, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"street-satpayev", "figure-satpayev"}, ids(got))
}

func TestSearch_CanceledContext(t *testing.T) {
	svc := newService(t, newCorpus(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.Search(ctx, newRequest(t, "Сатпаева", language.Russian, mode.Lexical, 0))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestSearch_ParallelMatchesSequential(t *testing.T) {
	pool, err := ants.NewPool(3)
	require.NoError(t, err)
	defer pool.Release()

	corpus := newCorpus(t)
	seq := newService(t, corpus)
	par := newService(t, corpus).WithPool(pool, 1)

	for _, q := range []string{"Сатпаева", "улица", "геолог Сатпаев", "улица сатпаева город", "абырвалг"} {
		req := newRequest(t, q, language.Russian, mode.Lexical, 0)
		want, err := seq.Search(context.Background(), req)
		require.NoError(t, err)
		got, err := par.Search(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, ids(want), ids(got), q)
	}
}

func TestSearch_ReleasedPoolScoresInline(t *testing.T) {
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	pool.Release()

	svc := newService(t, newCorpus(t)).WithPool(pool, 1)
	got, err := svc.Search(context.Background(), newRequest(t, "завод", language.Russian, mode.Lexical, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"industrial-aluminium"}, ids(got))
}

func TestSearch_Cache(t *testing.T) {
	corpus := newCorpus(t)
	svc, err := newService(t, corpus).WithCache(8)
	require.NoError(t, err)

	hits := testutil.ToFloat64(metrics.SearchCacheTotal.WithLabelValues("hit"))

	req := newRequest(t, "Сатпаева", language.Russian, mode.Lexical, 0)
	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	first[0] = record.Record{}

	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int32(1), corpus.scans.Load())
	assert.Equal(t, "street-satpayev", second[0].ID())
	assert.InDelta(t, hits+1, testutil.ToFloat64(metrics.SearchCacheTotal.WithLabelValues("hit")), 1e-9)

	// language is part of the key
	_, err = svc.Search(context.Background(), newRequest(t, "Сатпаева", language.English, mode.Lexical, 0))
	require.NoError(t, err)
	assert.Equal(t, int32(2), corpus.scans.Load())
}

func TestSearch_CacheDisabled(t *testing.T) {
	svc, err := newService(t, newCorpus(t)).WithCache(0)
	require.NoError(t, err)
	assert.Nil(t, svc.cache)
}

func TestSearch_Semantic(t *testing.T) {
	emb := &keywordEmbedder{keyword: "сатпаев"}
	svc := newService(t, newCorpus(t)).WithEmbedder(emb, 0)

	got, err := svc.Search(context.Background(), newRequest(t, "Сатпаев", language.Russian, mode.Semantic, 0))
	require.NoError(t, err)
	// figure [1,1] matches the query exactly, street [2,1] scores 0.9487, the rest 0.7071
	assert.Equal(t, []string{"figure-satpayev", "street-satpayev"}, ids(got))
	assert.Equal(t, int32(5), emb.calls.Load())

	// record vectors are memoized
	_, err = svc.Search(context.Background(), newRequest(t, "Сатпаев", language.Russian, mode.Semantic, 0))
	require.NoError(t, err)
	assert.Equal(t, int32(6), emb.calls.Load())
}

func TestSearch_SemanticThreshold(t *testing.T) {
	emb := &keywordEmbedder{keyword: "сатпаев"}
	svc := newService(t, newCorpus(t)).WithEmbedder(emb, 0.95)

	got, err := svc.Search(context.Background(), newRequest(t, "Сатпаев", language.Russian, mode.Semantic, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"figure-satpayev"}, ids(got))
}

func TestSearch_SemanticEmptyQuery(t *testing.T) {
	emb := &keywordEmbedder{keyword: "сатпаев"}
	svc := newService(t, newCorpus(t)).WithEmbedder(emb, 0)

	got, err := svc.Search(context.Background(), newRequest(t, "  ", language.Russian, mode.Semantic, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, emb.calls.Load())
}

func TestSearch_SemanticFallsBackToLexical(t *testing.T) {
	tests := []struct {
		name string
		emb  Embedder
	}{
		{"provider error", &keywordEmbedder{err: domain.ErrEmbeddingProviderError}},
		{"disabled", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, newCorpus(t))
			if tt.emb != nil {
				svc = svc.WithEmbedder(tt.emb, 0)
			}
			before := testutil.ToFloat64(metrics.SearchFallbacksTotal)

			got, err := svc.Search(context.Background(), newRequest(t, "завод", language.Russian, mode.Semantic, 0))
			require.NoError(t, err)
			assert.Equal(t, []string{"industrial-aluminium"}, ids(got))
			assert.InDelta(t, before+1, testutil.ToFloat64(metrics.SearchFallbacksTotal), 1e-9)
		})
	}
}

func TestSearch_SemanticCanceledDoesNotFallBack(t *testing.T) {
	svc := newService(t, newCorpus(t)).WithEmbedder(&keywordEmbedder{keyword: "x"}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, newRequest(t, "завод", language.Russian, mode.Semantic, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_FallbackIsNotCached(t *testing.T) {
	emb := &keywordEmbedder{keyword: "завод", err: errors.New("boom")}
	svc, err := newService(t, newCorpus(t)).WithEmbedder(emb, 0).WithCache(4)
	require.NoError(t, err)

	req := newRequest(t, "завод", language.Russian, mode.Semantic, 0)
	_, err = svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, svc.cache.Len())

	emb.err = nil
	got, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"industrial-aluminium"}, ids(got))
	assert.Equal(t, 1, svc.cache.Len())
}

func TestGet(t *testing.T) {
	svc := newService(t, newCorpus(t))

	rec, err := svc.Get(context.Background(), "figure-satpayev")
	require.NoError(t, err)
	assert.Equal(t, record.Figure, rec.Type())

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentText(t *testing.T) {
	rec := fixtureRecords(t)[1]

	doc, err := DocumentText(&rec, language.English)
	require.NoError(t, err)
	assert.Equal(t,
		"Figure. Kanysh Satpayev. geologist, academician. Born in 1899 in Bayanaul district.", doc)

	_, err = DocumentText(&rec, "kk")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 1}, []float32{2, 2}), 1e-9)
	assert.InDelta(t, 3/math.Sqrt(10), Cosine([]float32{1, 1}, []float32{2, 1}), 1e-6)
	assert.Zero(t, Cosine([]float32{1, 0}, []float32{0, 1}))
	assert.Zero(t, Cosine([]float32{1}, []float32{1, 0}))
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 0}))
	assert.Zero(t, Cosine(nil, nil))
}
