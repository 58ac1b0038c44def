package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultLegTimeout bounds a single provider lookup.
const DefaultLegTimeout = 5 * time.Second

// FetchTravelTimes estimates all six directed legs between the household
// locations.
//
// Each leg is looked up once, concurrently, under its own timeout. A leg whose
// lookup fails for any reason is replaced by domain.FallbackLeg; the other
// legs are unaffected and the call itself only fails on invalid locations.
func FetchTravelTimes(
	ctx context.Context,
	locs domain.Locations,
	provider ports.RoutingProvider,
	legTimeout time.Duration,
) (_ domain.TravelTimeSet, err error) {
	defer obs.Time(ctx, "travel.FetchTravelTimes")(&err)

	if err := locs.Validate(); err != nil {
		return nil, fmt.Errorf("fetch travel times: %w", err)
	}

	if legTimeout <= 0 {
		legTimeout = DefaultLegTimeout
	}

	keys := domain.AllRouteKeys
	legs := make([]domain.TravelLeg, len(keys))

	var g errgroup.Group
	g.SetLimit(len(keys))
	for i, key := range keys {
		origin, destination := key.Endpoints(locs)
		g.Go(func() error {
			legs[i] = fetchLeg(ctx, provider, key, origin, destination, legTimeout)
			return nil
		})
	}
	// Goroutines never return errors; failures are absorbed per leg.
	_ = g.Wait()

	out := make(domain.TravelTimeSet, len(keys))
	for i, key := range keys {
		out[key] = legs[i]
	}

	return out, nil
}

func fetchLeg(
	ctx context.Context,
	provider ports.RoutingProvider,
	key domain.RouteKey,
	origin string,
	destination string,
	timeout time.Duration,
) domain.TravelLeg {
	if provider == nil {
		log.Printf("route leg=%s fallback reason=%q", key, "no routing provider")
		return domain.FallbackLeg
	}

	legCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := provider.Route(legCtx, origin, destination)
	if err == nil && legCtx.Err() != nil {
		err = legCtx.Err()
	}
	if err == nil && res.DurationSeconds < 0 {
		err = fmt.Errorf("negative duration %d", res.DurationSeconds)
	}

	if err != nil {
		reason := "provider error"
		switch {
		case errors.Is(err, ports.ErrNoRoute):
			reason = "no route"
		case errors.Is(err, context.DeadlineExceeded):
			reason = "timeout"
		}
		log.Printf("route leg=%s fallback reason=%q err=%v", key, reason, err)
		return domain.FallbackLeg
	}

	return domain.TravelLeg{
		Distance:        res.DistanceText,
		Duration:        res.DurationText,
		DurationSeconds: res.DurationSeconds,
	}
}
