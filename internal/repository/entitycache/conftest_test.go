package entitycache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/db"
	"github.com/kailas-cloud/qbet/internal/domain"
)

type mockRecognizer struct {
	mu       sync.Mutex
	entities []domain.Entity
	err      error
	calls    int
	block    chan struct{}
}

func (m *mockRecognizer) ResolveEntities(_ context.Context, _ string) ([]domain.Entity, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.entities, m.err
}

func (m *mockRecognizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleted []string
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func newTestCachedRecognizer(t *testing.T, inner *mockRecognizer) (*CachedRecognizer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, "qbet:", time.Hour, nil, zap.NewNop()), ms
}
