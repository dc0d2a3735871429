package catalog

import (
	"context"

	"github.com/kailas-cloud/qbet/internal/domain/candidate"
)

// Loader reads the authoritative candidate list.
type Loader interface {
	Candidates(ctx context.Context) ([]candidate.Candidate, error)
}

// Store is a persistent snapshot that can be seeded.
type Store interface {
	Loader
	Save(ctx context.Context, cands []candidate.Candidate) error
}
