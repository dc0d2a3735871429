package result

import "github.com/kailas-cloud/qbet/internal/domain/candidate"

// Factors are the per-signal sub-scores that make up a relevance score.
type Factors struct {
	SkillMatch   float64
	Rating       float64
	Availability float64
	Location     float64
	Price        float64
}

// Result is one ranked candidate.
type Result struct {
	candidate      candidate.Candidate
	score          float64
	matchingSkills []string
	factors        Factors
}

// New creates a ranked result. matchingSkills is copied.
func New(c candidate.Candidate, score float64, matchingSkills []string, factors Factors) Result {
	ms := make([]string, len(matchingSkills))
	copy(ms, matchingSkills)
	return Result{candidate: c, score: score, matchingSkills: ms, factors: factors}
}

// Candidate returns the scored candidate.
func (r Result) Candidate() candidate.Candidate { return r.candidate }

// ID returns the candidate identifier.
func (r Result) ID() string { return r.candidate.ID() }

// Score returns the relevance score.
func (r Result) Score() float64 { return r.score }

// MatchingSkills returns the candidate skills that matched an intent skill.
func (r Result) MatchingSkills() []string { return r.matchingSkills }

// Factors returns the sub-scores behind Score.
func (r Result) Factors() Factors { return r.factors }
