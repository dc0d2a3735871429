package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/qbet/internal/db"
	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

const snapshotKey = "catalog:snapshot"

type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store keeps the catalog snapshot as one JSON document in the KV store.
type Store struct {
	kv  kv
	key string
}

// NewStore creates a Store. prefix namespaces the snapshot key.
func NewStore(s kv, prefix string) *Store {
	return &Store{kv: s, key: prefix + snapshotKey}
}

// Key returns the snapshot key.
func (s *Store) Key() string { return s.key }

// Candidates loads the stored snapshot. A missing snapshot is domain.ErrNotFound.
func (s *Store) Candidates(ctx context.Context) ([]candidate.Candidate, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("catalog snapshot: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get catalog snapshot: %w", err)
	}

	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return fromRecords(recs)
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, cands []candidate.Candidate) error {
	data, err := json.Marshal(toRecords(cands))
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("set catalog snapshot: %w", err)
	}
	return nil
}
