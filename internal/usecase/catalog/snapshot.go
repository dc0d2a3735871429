// Package catalog keeps the in-memory candidate snapshot the pipeline reads from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/metrics"
)

// Snapshot holds the current candidate list. The list is replaced wholesale on
// refresh and never mutated, so readers can share it without locking.
type Snapshot struct {
	loader   Loader
	current  atomic.Pointer[[]candidate.Candidate]
	loadedAt atomic.Int64
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewSnapshot creates an empty snapshot over loader. Call Refresh before serving.
func NewSnapshot(loader Loader, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshot{loader: loader, logger: logger}
}

// Candidates returns the current list. It fails only before the first successful refresh.
func (s *Snapshot) Candidates(_ context.Context) ([]candidate.Candidate, error) {
	p := s.current.Load()
	if p == nil {
		return nil, fmt.Errorf("%w: catalog not loaded", domain.ErrSourceUnavailable)
	}
	return *p, nil
}

// LoadedAt returns when the current list was loaded, or the zero time.
func (s *Snapshot) LoadedAt() time.Time {
	ns := s.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Refresh reloads the list. On failure the previous list stays in place.
func (s *Snapshot) Refresh(ctx context.Context) error {
	cands, err := s.loader.Candidates(ctx)
	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Catalog refresh failed, keeping previous snapshot", zap.Error(err))
		return fmt.Errorf("load catalog: %w", err)
	}

	frozen := make([]candidate.Candidate, len(cands))
	copy(frozen, cands)
	s.current.Store(&frozen)
	s.loadedAt.Store(time.Now().UnixNano())

	metrics.CatalogRefreshTotal.WithLabelValues("ok").Inc()
	metrics.CatalogCandidates.Set(float64(len(frozen)))
	s.logger.Info("Catalog refreshed", zap.Int("candidates", len(frozen)))
	return nil
}

// Start schedules Refresh with a cron spec such as "@every 10m".
// An empty spec disables periodic refresh.
func (s *Snapshot) Start(ctx context.Context, spec string) error {
	if spec == "" {
		return nil
	}
	cl := cronLogger{s.logger.Sugar()}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc(spec, func() {
		_ = s.Refresh(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Catalog refresh scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (s *Snapshot) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Seed writes seed into store when the store has no snapshot yet.
// It reports whether anything was written.
func Seed(ctx context.Context, store Store, seed Loader) (bool, error) {
	_, err := store.Candidates(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("check catalog: %w", err)
	}

	cands, err := seed.Candidates(ctx)
	if err != nil {
		return false, fmt.Errorf("load seed: %w", err)
	}
	if err := store.Save(ctx, cands); err != nil {
		return false, fmt.Errorf("save seed: %w", err)
	}
	return true, nil
}

// cronLogger routes robfig/cron logs through zap.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
