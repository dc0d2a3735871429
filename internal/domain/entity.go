package domain

import (
	"context"
	"strings"
)

// EntityTypeLocation is the entity type the location resolver consumes.
const EntityTypeLocation = "location"

// EntityRecognizer is the shared named-entity contract between layers.
type EntityRecognizer interface {
	ResolveEntities(ctx context.Context, text string) ([]Entity, error)
}

// HealthChecker verifies recognizer provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Entity is one tagged span of a query.
type Entity struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// FirstLocation returns the name of the first location entity, compared case-insensitively.
// A blank name on that entity means no location; later entities are not consulted.
func FirstLocation(entities []Entity) (string, bool) {
	for _, e := range entities {
		if !strings.EqualFold(e.Type, EntityTypeLocation) {
			continue
		}
		name := strings.TrimSpace(e.Name)
		return name, name != ""
	}
	return "", false
}
