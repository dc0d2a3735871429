// Package entitycache is a caching decorator for entity recognizers.
package entitycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/qbet/internal/db"
	"github.com/kailas-cloud/qbet/internal/domain"
)

const keySpace = "entity_cache:"

// store is the consumer interface for the entity cache.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedRecognizer caches recognized entities by query text.
// Concurrent misses for the same text share one upstream call.
type CachedRecognizer struct {
	inner      domain.EntityRecognizer
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	group      singleflight.Group
	logger     *zap.Logger
}

// New creates a caching decorator. ttl <= 0 keeps entries forever.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"); nil disables it.
func New(
	inner domain.EntityRecognizer,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecognizer{
		inner:      inner,
		store:      s,
		prefix:     prefix + keySpace,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// ResolveEntities returns cached entities or calls the inner recognizer.
// Errors are never cached.
func (c *CachedRecognizer) ResolveEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	key := c.cacheKey(text)

	if entities, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return entities, nil
	}
	c.incCache("miss")

	v, err, _ := c.group.Do(key, func() (any, error) {
		entities, err := c.inner.ResolveEntities(ctx, text)
		if err != nil {
			return nil, err
		}
		c.putToCache(ctx, key, entities)
		return entities, nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve entities: %w", err)
	}

	shared := v.([]domain.Entity)
	out := make([]domain.Entity, len(shared))
	copy(out, shared)
	return out, nil
}

// HealthCheck forwards to the inner recognizer when it supports health checks.
func (c *CachedRecognizer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedRecognizer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedRecognizer) cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedRecognizer) getFromCache(ctx context.Context, key string) ([]domain.Entity, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached entities", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var entities []domain.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		c.logger.Warn("Failed to parse cached entities", zap.String("key", key), zap.Error(err))
		// Corrupt entries are dropped.
		if err := c.store.Del(ctx, key); err != nil {
			c.logger.Warn("Failed to drop cached entities", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return entities, true
}

func (c *CachedRecognizer) putToCache(ctx context.Context, key string, entities []domain.Entity) {
	if entities == nil {
		entities = []domain.Entity{}
	}
	data, err := json.Marshal(entities)
	if err != nil {
		c.logger.Warn("Failed to encode entities", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache entities", zap.String("key", key), zap.Error(err))
	}
}
