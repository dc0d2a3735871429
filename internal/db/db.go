// Package db holds the key-value contract shared by the redis and badger drivers.
package db

import (
	"context"
	"time"
)

// Store is an opened KV backend, as returned by app.NewStore.
type Store interface {
	KVStore
	Pinger
	// WaitForReady blocks until a ping succeeds or timeout elapses.
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Pinger is what the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore backs the catalog snapshot and the entity cache.
// Get returns ErrKeyNotFound for a missing or expired key.
// A non-positive ttl never expires.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
