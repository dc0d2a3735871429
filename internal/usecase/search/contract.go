package search

import (
	"context"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
	"github.com/kailas-cloud/qbet/internal/domain/search/intent"
)

// CandidateSource supplies the current read-only candidate list.
type CandidateSource interface {
	Candidates(ctx context.Context) ([]candidate.Candidate, error)
}

// IntentExtractor interprets a free-text query.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) intent.Intent
}

// Ranker orders candidates for an intent.
type Ranker interface {
	Rank(cands []candidate.Candidate, in intent.Intent) []candidate.Candidate
}
