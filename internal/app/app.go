// Package app wires configuration into the pipeline components shared by the
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/config"
	"github.com/kailas-cloud/qbet/internal/db"
	dbBadger "github.com/kailas-cloud/qbet/internal/db/badger"
	dbRedis "github.com/kailas-cloud/qbet/internal/db/redis"
	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/search/vocabulary"
	"github.com/kailas-cloud/qbet/internal/metrics"
	catalogrepo "github.com/kailas-cloud/qbet/internal/repository/catalog"
	"github.com/kailas-cloud/qbet/internal/repository/entitycache"
	"github.com/kailas-cloud/qbet/internal/transport/googlenlp"
	"github.com/kailas-cloud/qbet/internal/transport/localllm"
	openaiRec "github.com/kailas-cloud/qbet/internal/transport/openai"
	cataloguc "github.com/kailas-cloud/qbet/internal/usecase/catalog"
	intentuc "github.com/kailas-cloud/qbet/internal/usecase/intent"
	"github.com/kailas-cloud/qbet/internal/usecase/location"
	"github.com/kailas-cloud/qbet/internal/usecase/ranking"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
)

// NewStore opens the KV store selected by cfg.Database.Driver.
func NewStore(cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		store, err = dbBadger.NewStore(dbBadger.Config{}, logger)
	case config.DriverBadger:
		store, err = dbBadger.NewStore(dbBadger.Config{Path: cfg.Path}, logger)
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Password:   cfg.Password,
			Standalone: cfg.Standalone,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	return store, nil
}

// NewRecognizer builds the configured entity recognizer. It returns a nil
// interface for the "none" provider. cache may be nil; a positive cache TTL
// with a cache wraps the recognizer in the entity cache.
func NewRecognizer(
	cfg config.RecognizerConfig, cache db.KVStore, keyPrefix string, logger *zap.Logger,
) (domain.EntityRecognizer, error) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	var rec domain.EntityRecognizer
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderOpenAI:
		rec = openaiRec.NewRecognizer(&openaiRec.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
			Logger:  logger,
		})
	case config.ProviderGoogle:
		rec = googlenlp.NewRecognizer(&googlenlp.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Language: cfg.Language,
			Timeout:  timeout,
			Logger:   logger,
		})
	case config.ProviderLocal:
		local, err := localllm.NewRecognizer(&localllm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
			Timeout: timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		rec = local
	default:
		return nil, fmt.Errorf("unknown recognizer provider %q", cfg.Provider)
	}

	if cache != nil && cfg.CacheTTLSec > 0 {
		rec = entitycache.New(rec, cache, keyPrefix,
			time.Duration(cfg.CacheTTLSec)*time.Second, metrics.EntityCacheTotal, logger)
	}
	return rec, nil
}

// NewSearchService assembles extractor, resolver and ranker over source.
// recognizer may be nil.
func NewSearchService(
	cfg config.SearchConfig,
	source searchuc.CandidateSource,
	recognizer domain.EntityRecognizer,
	logger *zap.Logger,
) *searchuc.Service {
	resolver := location.New(location.Config{
		Corrections: cfg.Corrections,
		Landmarks:   cfg.Landmarks,
	}, recognizer, logger)

	vocab := vocabulary.New(vocabulary.DefaultLists().Merge(cfg.Vocabulary))
	extractor := intentuc.New(vocab, resolver, logger)

	scoring := ranking.DefaultConfig()
	if cfg.Weights != nil {
		scoring.Weights = *cfg.Weights
	}
	if cfg.OptimalPrice > 0 {
		scoring.OptimalPrice = cfg.OptimalPrice
	}
	if cfg.PriceDivisor > 0 {
		scoring.PriceDivisor = cfg.PriceDivisor
	}
	ranker := ranking.NewRanker(ranking.NewScorer(scoring))

	return searchuc.New(source, extractor, ranker, cfg.TopSkills, logger)
}

// NewSeed returns the seed loader: the YAML file at path, or the embedded default.
func NewSeed(path string) (*catalogrepo.Static, error) {
	st, err := catalogrepo.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return st, nil
}

// NewCatalog builds the candidate snapshot for cfg and performs the first load.
// The store source reads the JSON snapshot from kv, seeding it first when asked.
func NewCatalog(
	ctx context.Context, cfg config.CatalogConfig, kv db.KVStore, keyPrefix string, logger *zap.Logger,
) (*cataloguc.Snapshot, error) {
	seed, err := NewSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}

	var loader cataloguc.Loader = seed
	switch {
	case cfg.Source == config.SourceSeed && cfg.SeedFile != "":
		loader = catalogrepo.NewFile(cfg.SeedFile)
	case cfg.Source == config.SourceStore:
		store := catalogrepo.NewStore(kv, keyPrefix)
		if cfg.SeedIfEmpty {
			written, err := cataloguc.Seed(ctx, store, seed)
			if err != nil {
				return nil, fmt.Errorf("seed catalog: %w", err)
			}
			if written {
				logger.Info("Catalog seeded", zap.String("key", store.Key()))
			}
		}
		loader = store
	}

	snap := cataloguc.NewSnapshot(loader, logger)
	if err := snap.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}
	return snap, nil
}
