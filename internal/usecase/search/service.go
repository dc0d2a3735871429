// Package search runs the query ranking pipeline: extract, filter, rank.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/metrics"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

// Search outcomes, used as metric labels.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Intent intent.Intent
	Items  []candidate.Candidate
	Stats  stats.Market
}

// Service runs the ranking pipeline against a candidate source.
type Service struct {
	source    CandidateSource
	extractor IntentExtractor
	ranker    Ranker
	topSkills int
	logger    *zap.Logger
}

// New creates a search service. topSkills bounds the skill list of the stats block.
func New(
	source CandidateSource, extractor IntentExtractor, ranker Ranker,
	topSkills int, logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		extractor: extractor,
		ranker:    ranker,
		topSkills: topSkills,
		logger:    logger,
	}
}

// Search loads the candidate snapshot and ranks it for query. extra is ANDed
// after the intent filter. Search never fails: every internal failure is logged
// and yields an empty item list.
func (s *Service) Search(ctx context.Context, query string, extra filter.Expression) Result {
	start := time.Now()
	res, err := s.run(ctx, query, extra, nil)
	s.observe(res, err, time.Since(start))
	return res
}

// RankFreelancers ranks cands for query. It is the pipeline entry point for
// callers that already hold the candidate list; it never fails.
func (s *Service) RankFreelancers(ctx context.Context, query string, cands []candidate.Candidate) []candidate.Candidate {
	start := time.Now()
	if cands == nil {
		cands = []candidate.Candidate{}
	}
	res, err := s.run(ctx, query, filter.Expression{}, cands)
	s.observe(res, err, time.Since(start))
	return res.Items
}

// run executes the pipeline. A nil cands loads from the source.
func (s *Service) run(
	ctx context.Context, query string, extra filter.Expression, cands []candidate.Candidate,
) (res Result, err error) {
	res = Result{Intent: intent.Empty(query), Items: []candidate.Candidate{}, Stats: stats.Compute(nil, s.topSkills)}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pipeline panic: %v", p)
			res = Result{Intent: intent.Empty(query), Items: []candidate.Candidate{}, Stats: stats.Compute(nil, s.topSkills)}
		}
	}()

	in := s.extractor.Extract(ctx, query)
	res.Intent = in

	if cands == nil {
		cands, err = s.source.Candidates(ctx)
		if err != nil {
			return res, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
		}
	}

	filtered := filter.Apply(cands, filter.FromIntent(in))
	if !extra.IsEmpty() {
		filtered = filter.Apply(filtered, extra)
	}

	res.Items = s.ranker.Rank(filtered, in)
	res.Stats = stats.Compute(res.Items, s.topSkills)

	s.logger.Debug("Search completed",
		zap.Int("candidates", len(cands)),
		zap.Int("filtered", len(filtered)),
		zap.Int("returned", len(res.Items)),
	)
	return res, nil
}

func (s *Service) observe(res Result, err error, d time.Duration) {
	metrics.SearchDuration.Observe(d.Seconds())

	if err != nil {
		metrics.SearchesTotal.WithLabelValues(OutcomeFailed).Inc()
		level := s.logger.Error
		if errors.Is(err, domain.ErrSourceUnavailable) {
			level = s.logger.Warn
		}
		level("Search degraded to empty result",
			zap.Int("query_len", len(res.Intent.OriginalQuery())),
			zap.Duration("duration", d),
			zap.Error(err),
		)
		return
	}

	outcome := OutcomeOK
	if len(res.Items) == 0 {
		outcome = OutcomeEmpty
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchResults.Observe(float64(len(res.Items)))
	recordIntentFeatures(res.Intent)
}

func recordIntentFeatures(in intent.Intent) {
	if len(in.Skills()) > 0 {
		metrics.IntentFeaturesTotal.WithLabelValues("skills").Inc()
	}
	if in.Location() != "" {
		metrics.IntentFeaturesTotal.WithLabelValues("location").Inc()
	}
	if _, ok := in.MaxBudget(); ok {
		metrics.IntentFeaturesTotal.WithLabelValues("budget").Inc()
	}
	if in.NeedsImmediate() {
		metrics.IntentFeaturesTotal.WithLabelValues("immediate").Inc()
	}
	if _, ok := in.Limit(); ok {
		metrics.IntentFeaturesTotal.WithLabelValues("limit").Inc()
	}
}
