package qbet

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	domintent "github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/domain/search/vocabulary"
	catalogrepo "github.com/kailas-cloud/qbet/internal/repository/catalog"
	intentuc "github.com/kailas-cloud/qbet/internal/usecase/intent"
	"github.com/kailas-cloud/qbet/internal/usecase/location"
	"github.com/kailas-cloud/qbet/internal/usecase/ranking"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

// Internal interfaces, swapped in tests.
type rankUseCase interface {
	RankFreelancers(ctx context.Context, query string, cands []candidate.Candidate) []candidate.Candidate
}

type intentUseCase interface {
	Extract(ctx context.Context, query string) domintent.Intent
}

// Client is the qbet SDK entry point. It is safe for concurrent use.
type Client struct {
	ranker    rankUseCase
	extractor intentUseCase
	topSkills int
	obs       *observer
}

// New builds a client from opts. It performs no I/O.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{topSkills: stats.DefaultTopSkills}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	locCfg := location.Config{
		Corrections: location.DefaultCorrections(),
		Landmarks:   location.DefaultLandmarks(),
	}
	for from, to := range cfg.corrections {
		locCfg.Corrections[from] = to
	}
	for canonical, variants := range cfg.landmarks {
		locCfg.Landmarks = append(locCfg.Landmarks, location.Landmark{Canonical: canonical, Variants: variants})
	}

	// A nil Recognizer must stay a nil interface for the resolver.
	var rec location.Recognizer
	if cfg.recognizer != nil {
		rec = &recognizerAdapter{inner: cfg.recognizer}
	}
	resolver := location.New(locCfg, rec, zap.NewNop())

	lists := vocabulary.DefaultLists()
	lists.Skills = append(lists.Skills, cfg.skills...)
	vocab := vocabulary.New(lists)
	extractor := intentuc.New(vocab, resolver, zap.NewNop())

	scoring := ranking.DefaultConfig()
	if cfg.weights != nil {
		scoring.Weights = ranking.Weights(*cfg.weights)
	}
	if cfg.optimalPrice > 0 {
		scoring.OptimalPrice = cfg.optimalPrice
	}
	ranker := ranking.NewRanker(ranking.NewScorer(scoring))

	// RankFreelancers always passes the list, the source is never read.
	svc := searchuc.New(catalogrepo.NewStatic(nil), extractor, ranker, cfg.topSkills, zap.NewNop())

	return &Client{
		ranker:    svc,
		extractor: extractor,
		topSkills: cfg.topSkills,
		obs:       obs,
	}
}

// RankFreelancers filters freelancers on the intent of query and returns the
// survivors ordered by relevance, best first. The input slice is not modified.
// It fails only when a freelancer is invalid; see ErrInvalidFreelancer.
func (c *Client) RankFreelancers(ctx context.Context, query string, freelancers []Freelancer) (_ []Freelancer, err error) {
	start := time.Now()
	var out []Freelancer
	defer func() { c.obs.observe("rank", start, len(out), err) }()

	cands, err := toCandidates(freelancers)
	if err != nil {
		return nil, err
	}
	out = fromCandidates(c.ranker.RankFreelancers(ctx, query, cands))
	return out, nil
}

// ExtractIntent interprets query without ranking anything.
func (c *Client) ExtractIntent(ctx context.Context, query string) Intent {
	start := time.Now()
	in := fromIntent(c.extractor.Extract(ctx, query))
	c.obs.observe("intent", start, len(in.Skills), nil)
	return in
}

// Stats summarizes freelancers: availability, average rate, the most listed
// skills and the hourly rate distribution.
func (c *Client) Stats(freelancers []Freelancer) (Market, error) {
	cands, err := toCandidates(freelancers)
	if err != nil {
		return Market{}, err
	}
	return fromMarket(stats.Compute(cands, c.topSkills)), nil
}

// recognizerAdapter wraps the public Recognizer to satisfy the domain contract.
type recognizerAdapter struct {
	inner Recognizer
}

func (a *recognizerAdapter) ResolveEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	ents, err := a.inner.ResolveEntities(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRecognizerUnavailable, err)
	}
	out := make([]domain.Entity, len(ents))
	for i, e := range ents {
		out[i] = domain.Entity{Type: e.Type, Name: e.Name}
	}
	return out, nil
}
