package distance

import (
	"context"
	"errors"
	"travel-time-service/internal/ports"
)

var errProviderNotConfigured = errors.New("routing provider not configured")

// OfflineProvider is used when no maps API key is configured.
// Every lookup fails, so the fetcher serves fallback legs.
type OfflineProvider struct{}

func (OfflineProvider) Route(context.Context, string, string) (ports.RouteResult, error) {
	return ports.RouteResult{}, errProviderNotConfigured
}
