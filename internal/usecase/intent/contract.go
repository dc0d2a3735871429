package intent

import "context"

// LocationResolver finds the canonical location named in a query.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) string
}
