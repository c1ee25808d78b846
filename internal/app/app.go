// Package app wires config into the guide services. Shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/guide/internal/config"
	"github.com/kailas-cloud/guide/internal/db"
	dbRedis "github.com/kailas-cloud/guide/internal/db/redis"
	"github.com/kailas-cloud/guide/internal/domain"
	"github.com/kailas-cloud/guide/internal/domain/record"
	"github.com/kailas-cloud/guide/internal/domain/relevance"
	"github.com/kailas-cloud/guide/internal/domain/text/stem"
	"github.com/kailas-cloud/guide/internal/metrics"
	"github.com/kailas-cloud/guide/internal/repository/corpus"
	"github.com/kailas-cloud/guide/internal/repository/embcache"
	openaiTransport "github.com/kailas-cloud/guide/internal/transport/openai"
	answeruc "github.com/kailas-cloud/guide/internal/usecase/answer"
	embeddinguc "github.com/kailas-cloud/guide/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/guide/internal/usecase/health"
	searchuc "github.com/kailas-cloud/guide/internal/usecase/search"
)

// App holds the assembled services.
type App struct {
	Store   db.Store // nil when no database is configured
	Corpus  *record.Corpus
	Search  *searchuc.Service
	Answers *answeruc.Service
	Health  *healthuc.Service

	pool *ants.Pool
}

// Close releases the worker pool and the database connection.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Release()
	}
	if a.Store != nil {
		a.Store.Close()
	}
}

// OpenStore connects to Redis and waits until it answers. Returns nil, nil without database.addrs.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	if !cfg.Enabled() {
		return nil, nil //nolint:nilnil // database is optional
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

// LoadCorpus reads records from the configured source.
func LoadCorpus(ctx context.Context, cfg config.CorpusConfig, store db.Store) (record.Corpus, error) {
	switch cfg.Source {
	case config.CorpusSourceRedis:
		if store == nil {
			return record.Corpus{}, fmt.Errorf("redis corpus source requires a database")
		}
		c, err := corpus.NewRedisSource(store, cfg.Key).Load(ctx)
		if err != nil {
			return record.Corpus{}, fmt.Errorf("load corpus from redis: %w", err)
		}
		return c, nil
	default:
		c, err := corpus.LoadFile(cfg.Path)
		if err != nil {
			return record.Corpus{}, fmt.Errorf("load corpus file: %w", err)
		}
		return c, nil
	}
}

// New builds the services from cfg. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &App{Store: store}

	c, err := LoadCorpus(ctx, cfg.Corpus, store)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Corpus = &c
	logger.Info("Corpus loaded",
		zap.String("source", cfg.Corpus.Source),
		zap.Int("records", c.Len()),
	)

	stemmers, err := stem.NewSet(cfg.Engine.Stemmer)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("stemmer: %w", err)
	}
	scorer := relevance.NewScorer(relevance.DefaultConfig(), stemmers)

	a.pool, err = ants.NewPool(cfg.Engine.Workers, ants.WithPreAlloc(false))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	a.Search, err = searchuc.New(a.Corpus, scorer, logger).
		WithPool(a.pool, cfg.Engine.ParallelThreshold).
		WithCache(cfg.Engine.CacheSize)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("search service: %w", err)
	}

	// Untyped nils keep the optional checks switched off.
	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	var embeddingChecker, answerChecker healthuc.ProviderChecker

	if cfg.Embedding.Enabled {
		embedder := buildEmbedder(cfg.Embedding, store, logger)
		a.Search.WithEmbedder(embedder, cfg.Embedding.Threshold)
		embeddingChecker = embedder
		logger.Info("Semantic search enabled",
			zap.String("model", cfg.Embedding.Model),
			zap.Float64("threshold", cfg.Embedding.Threshold),
		)
	}

	var llm answeruc.Answerer
	if cfg.Answer.Enabled {
		answerer := openaiTransport.NewAnswerer(&openaiTransport.Config{
			APIKey:  cfg.Answer.APIKey,
			BaseURL: cfg.Answer.BaseURL,
			Model:   cfg.Answer.Model,
			Logger:  logger,
		})
		llm = answerer
		answerChecker = answerer
		logger.Info("LLM answers enabled", zap.String("model", cfg.Answer.Model))
	}
	a.Answers = answeruc.New(a.Corpus, llm, logger)
	a.Health = healthuc.New(a.Corpus, dbPinger, embeddingChecker, answerChecker)

	return a, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
func buildEmbedder(cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger) *embeddinguc.InstrumentedEmbedder {
	var embedder domain.Embedder = openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Logger:     logger,
	})

	if store != nil {
		embedder = embcache.New(
			embedder, store, cfg.Model,
			time.Duration(cfg.CacheTTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	return embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Model, cfg.Dimensions, logger)
}
