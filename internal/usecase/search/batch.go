package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
)

// Batch defaults.
const (
	DefaultBatchWorkers = 4
	DefaultMaxBatchSize = 20
)

// Batch runs several searches concurrently on a bounded worker pool.
type Batch struct {
	svc          *Service
	pool         *ants.Pool
	maxBatchSize int
	logger       *zap.Logger
}

// NewBatch creates a batch runner over svc with workers goroutines.
// Non-positive values select the defaults. Call Release when done.
func NewBatch(svc *Service, workers, maxBatchSize int, logger *zap.Logger) (*Batch, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Batch{svc: svc, pool: pool, maxBatchSize: maxBatchSize, logger: logger}, nil
}

// MaxBatchSize returns the largest accepted batch.
func (b *Batch) MaxBatchSize() int { return b.maxBatchSize }

// Run searches every query with the same extra filter. Results keep the order
// of queries. Only an oversized batch or a stopped pool fail the call;
// individual searches degrade to empty results as Search does.
func (b *Batch) Run(ctx context.Context, queries []string, extra filter.Expression) ([]Result, error) {
	if len(queries) > b.maxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d queries exceeds %d", domain.ErrInvalidQuery, len(queries), b.maxBatchSize)
	}

	results := make([]Result, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			results[i] = b.svc.Search(ctx, q, extra)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit query %d: %w", i, err)
		}
	}
	wg.Wait()

	b.logger.Debug("Batch search completed", zap.Int("queries", len(queries)))
	return results, nil
}

// Release stops the worker pool.
func (b *Batch) Release() {
	b.pool.Release()
}
