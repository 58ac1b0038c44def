package ports

import (
	"context"
	"errors"
)

// ErrNoRoute is returned when the provider answers but has no route for the pair.
var ErrNoRoute = errors.New("no route found")

// Distance and travel duration between two locations, with the provider's
// display text for each.
type RouteResult struct {
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
}

// Contract for retrieving a driving estimate between two locations.
type RoutingProvider interface {
	// Return travel distance and estimated duration between two locations.
	Route(ctx context.Context, origin string, destination string) (RouteResult, error)
}
