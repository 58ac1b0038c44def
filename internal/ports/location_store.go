package ports

import (
	"context"
	"travel-time-service/internal/domain"
)

// Port: the last saved household locations.
type LocationStore interface {
	// Load returns nil when nothing has been saved yet.
	Load(ctx context.Context) (*domain.Locations, error)
	Save(ctx context.Context, locs domain.Locations) error
}
