package ports

import "context"

// LegCache stores provider results keyed by origin and destination.
// Implementations report a miss with ok=false and a nil error.
type LegCache interface {
	Get(ctx context.Context, origin, destination string) (result RouteResult, ok bool, err error)
	Put(ctx context.Context, origin, destination string, result RouteResult) error
}
