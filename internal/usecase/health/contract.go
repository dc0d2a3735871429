package health

import (
	"context"
	"time"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RecognizerChecker checks entity recognizer availability.
type RecognizerChecker interface {
	HealthCheck(ctx context.Context) error
}

// CatalogState reports when the candidate snapshot was last loaded.
type CatalogState interface {
	LoadedAt() time.Time
}
