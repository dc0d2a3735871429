package ranking

import (
	"sort"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
	"github.com/kailas-cloud/qbet/internal/domain/search/result"
)

// Ranker orders candidates by descending relevance.
type Ranker struct {
	scorer *Scorer
}

// NewRanker creates a Ranker over scorer.
func NewRanker(scorer *Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// rankScored scores every candidate, sorts by descending score and truncates to
// the intent limit when one is set. Equal scores keep their input order.
func (r *Ranker) rankScored(cands []candidate.Candidate, in intent.Intent) []result.Result {
	results := make([]result.Result, len(cands))
	for i, c := range cands {
		results[i] = r.scorer.Score(c, in)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if limit, ok := in.Limit(); ok && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// Rank returns cands ordered by descending relevance, truncated to the intent limit.
// Scores stay internal to the ranker.
func (r *Ranker) Rank(cands []candidate.Candidate, in intent.Intent) []candidate.Candidate {
	scored := r.rankScored(cands, in)
	out := make([]candidate.Candidate, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate()
	}
	return out
}
