package ports

import (
	"context"
	"travel-time-service/internal/domain"
)

// PlaceSearcher resolves free text to candidate places.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]domain.Place, error)
}
