// Package ranking scores candidates against an intent and orders them.
package ranking

import (
	"math"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/domain/search/result"
	"github.com/kailas-cloud/qbet/internal/domain/text"
)

// SkillMatchThreshold is the Jaccard similarity a candidate skill must exceed
// to count as matching an intent skill.
const SkillMatchThreshold = 0.8

// Availability tier scores.
const (
	ImmediateScore   = 1.0
	WithinWeekScore  = 0.7
	WithinMonthScore = 0.4
)

// Weights are the factor coefficients of the final score.
type Weights struct {
	Skill        float64 `yaml:"skill"`
	Rating       float64 `yaml:"rating"`
	Availability float64 `yaml:"availability"`
	Location     float64 `yaml:"location"`
	Price        float64 `yaml:"price"`
}

// DefaultWeights returns the built-in weights. They sum to 1.
func DefaultWeights() Weights {
	return Weights{Skill: 0.4, Rating: 0.2, Availability: 0.2, Location: 0.1, Price: 0.1}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skill + w.Rating + w.Availability + w.Location + w.Price
}

// Config tunes the scorer.
type Config struct {
	Weights      Weights
	OptimalPrice float64
	PriceDivisor float64
}

// DefaultConfig returns the built-in scorer settings.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), OptimalPrice: 100, PriceDivisor: 200}
}

// Scorer computes the weighted relevance of a candidate for an intent.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer. A non-positive price divisor falls back to the default.
func NewScorer(cfg Config) *Scorer {
	if cfg.PriceDivisor <= 0 {
		cfg.PriceDivisor = DefaultConfig().PriceDivisor
	}
	return &Scorer{cfg: cfg}
}

// Score returns the scored candidate. It never fails.
func (s *Scorer) Score(c candidate.Candidate, in intent.Intent) result.Result {
	matching := matchingSkills(c.Skills(), in.Skills())

	f := result.Factors{
		SkillMatch:   float64(len(matching)) / float64(max(len(in.Skills()), 1)),
		Rating:       c.Rating() / candidate.MaxRating,
		Availability: AvailabilityScore(c.Availability()),
		Location:     locationScore(c.Location(), in.Location()),
		Price:        1 - math.Abs(c.HourlyRate()-s.cfg.OptimalPrice)/s.cfg.PriceDivisor,
	}

	w := s.cfg.Weights
	score := w.Skill*f.SkillMatch +
		w.Rating*f.Rating +
		w.Availability*f.Availability +
		w.Location*f.Location +
		w.Price*f.Price

	return result.New(c, score, matching, f)
}

// AvailabilityScore maps an availability tier to its fixed score.
func AvailabilityScore(a candidate.Availability) float64 {
	switch a {
	case candidate.Immediate:
		return ImmediateScore
	case candidate.WithinWeek:
		return WithinWeekScore
	case candidate.WithinMonth:
		return WithinMonthScore
	default:
		return 0
	}
}

// matchingSkills returns the candidate skills similar to at least one intent skill,
// in candidate order.
func matchingSkills(candidateSkills, intentSkills []string) []string {
	out := make([]string, 0)
	for _, cs := range candidateSkills {
		for _, is := range intentSkills {
			if text.Jaccard(cs, is) > SkillMatchThreshold {
				out = append(out, cs)
				break
			}
		}
	}
	return out
}

func locationScore(candidateLocation, intentLocation string) float64 {
	if intentLocation == "" {
		return 1
	}
	return text.Jaccard(candidateLocation, intentLocation)
}
