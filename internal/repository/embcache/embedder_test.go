package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/db"
	"github.com/kailas-cloud/guide/internal/domain"
)

func TestEmbed_CacheMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 10,
		TotalTokens:  10,
	}}
	ce, ms := newTestCachedEmbedder(t, inner)

	var (
		setKey string
		setTTL time.Duration
	)
	ms.setFn = func(_ context.Context, key string, _ []byte, ttl time.Duration) error {
		setKey, setTTL = key, ttl
		return nil
	}

	result, err := ce.Embed(context.Background(), "test text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, result.Embedding)
	assert.Equal(t, 10, result.TotalTokens)
	assert.True(t, strings.HasPrefix(setKey, "guide:emb_cache:test-model:"), setKey)
	assert.Equal(t, time.Hour, setTTL)
}

func TestEmbed_CacheHit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	cached := vectorToCacheBytes([]float32{0.4, 0.5, 0.6})
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return cached, nil
	}

	result, err := ce.Embed(context.Background(), "test text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.4, 0.5, 0.6}, result.Embedding)
	assert.Zero(t, result.TotalTokens)
	assert.Zero(t, inner.calls)
}

func TestEmbed_KeyDependsOnModelAndText(t *testing.T) {
	a := New(&mockEmbedder{}, &mockKVStore{}, "model-a", 0, nil, nil)
	b := New(&mockEmbedder{}, &mockKVStore{}, "model-b", 0, nil, nil)

	assert.Equal(t, a.cacheKey("x"), a.cacheKey("x"))
	assert.NotEqual(t, a.cacheKey("x"), a.cacheKey("y"))
	assert.NotEqual(t, a.cacheKey("x"), b.cacheKey("x"))
}

func TestEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	ce, ms := newTestCachedEmbedder(t, inner)

	var setCalled bool
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		setCalled = true
		return nil
	}

	_, err := ce.Embed(context.Background(), "test text")
	require.Error(t, err)
	assert.False(t, setCalled)
}

func TestEmbed_StoreErrorsAreNotFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection reset")}
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return &db.Error{Op: db.OpSet, Err: errors.New("connection reset")}
	}

	result, err := ce.Embed(context.Background(), "test text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, result.Embedding)
}

func TestEmbed_CorruptedEntryIsAMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte{1, 2, 3}, nil
	}

	result, err := ce.Embed(context.Background(), "test text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, result.Embedding)
	assert.Equal(t, 1, inner.calls)
}

func TestEmbed_CacheMetrics(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockKVStore{}
	ce := New(inner, ms, "m", 0, total, zap.NewNop())

	_, err := ce.Embed(context.Background(), "a")
	require.NoError(t, err)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return vectorToCacheBytes([]float32{1}), nil
	}
	_, err = ce.Embed(context.Background(), "a")
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(total.WithLabelValues("miss")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(total.WithLabelValues("hit")), 1e-9)
}

func TestHealthCheck(t *testing.T) {
	down := errors.New("down")
	ce, _ := newTestCachedEmbedder(t, &mockEmbedder{healthErr: down})
	assert.ErrorIs(t, ce.HealthCheck(context.Background()), down)
}

func TestVectorBytes(t *testing.T) {
	vec := []float32{0.25, -1.5, 3}
	got, err := bytesToVector(vectorToCacheBytes(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)

	_, err = bytesToVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
