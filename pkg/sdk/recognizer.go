package qbet

import "context"

// Recognizer tags named entities in a query.
// Only entities of type EntityLocation are used.
type Recognizer interface {
	ResolveEntities(ctx context.Context, text string) ([]Entity, error)
}

// EntityLocation is the entity type read by the location lookup.
const EntityLocation = "location"

// Entity is one tagged span of a query.
type Entity struct {
	Type string
	Name string
}
