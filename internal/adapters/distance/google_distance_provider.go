package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"

	"googlemaps.github.io/maps"
)

// GoogleDistanceProvider implements RoutingProvider using the Google
// Distance Matrix API.
//
// It coordinates:
//   - Address normalization
//   - An optional leg cache in front of the API
//   - One origin->destination element per lookup, driving mode
//
// The provider is safe for concurrent use.
type GoogleDistanceProvider struct {
	client   *maps.Client
	language string
	cache    ports.LegCache
}

type GoogleOption func(*googleOptions)

type googleOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at a different API host (tests).
func WithBaseURL(u string) GoogleOption {
	return func(o *googleOptions) { o.baseURL = u }
}

func WithHTTPClient(c *http.Client) GoogleOption {
	return func(o *googleOptions) { o.httpClient = c }
}

func NewGoogleDistanceProvider(
	apiKey string,
	language string,
	cache ports.LegCache,
	opts ...GoogleOption,
) (*GoogleDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	var o googleOptions
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, maps.WithHTTPClient(o.httpClient))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("new google maps client: %w", err)
	}

	return &GoogleDistanceProvider{
		client:   client,
		language: language,
		cache:    cache,
	}, nil
}

// Client exposes the underlying maps client so other adapters can share it.
func (g *GoogleDistanceProvider) Client() *maps.Client { return g.client }

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleDistanceProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *GoogleDistanceProvider) Route(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "google.Route")(&err)

	normOrigin := g.normalize(origin)
	normDestination := g.normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.RouteResult{}, errors.New("google route: origin and destination must be non-empty")
	}

	// Check the leg cache before issuing an external API call.
	if g.cache != nil {
		hit, ok, err := g.cache.Get(ctx, normOrigin, normDestination)
		if err != nil {
			log.Printf("leg cache read failed: %v", err)
		} else if ok {
			return hit, nil
		}
	}

	res, err := g.fetchElement(ctx, normOrigin, normDestination)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("google route %q -> %q: %w", normOrigin, normDestination, err)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, normOrigin, normDestination, res); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return res, nil
}

// fetchElement requests a single-element distance matrix.
func (g *GoogleDistanceProvider) fetchElement(
	ctx context.Context,
	origin string,
	destination string,
) (ports.RouteResult, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Language:     g.language,
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("distance matrix request: %w", err)
	}

	if len(resp.Rows) != 1 || len(resp.Rows[0].Elements) != 1 || resp.Rows[0].Elements[0] == nil {
		return ports.RouteResult{}, fmt.Errorf("distance matrix: expected 1 element, got %d rows", len(resp.Rows))
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return ports.RouteResult{}, fmt.Errorf("element status %s: %w", el.Status, ports.ErrNoRoute)
	}

	// The client decodes durations to time.Duration; Google reports whole seconds.
	seconds := int(math.Round(el.Duration.Seconds()))

	distanceText := el.Distance.HumanReadable
	if distanceText == "" {
		distanceText = fmt.Sprintf("%.1f km", float64(el.Distance.Meters)/1000)
	}

	return ports.RouteResult{
		DistanceMeters:  el.Distance.Meters,
		DurationSeconds: seconds,
		DistanceText:    distanceText,
		DurationText:    FormatDuration(el.Duration),
	}, nil
}

// FormatDuration renders d the way the Distance Matrix API words durations,
// e.g. "25 mins" or "1 hour 5 mins".
//
// The text is always English. The maps client decodes durations to
// time.Duration and drops the provider's localized text, so unlike the
// distance text it does not follow the configured language.
func FormatDuration(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	hours := minutes / 60
	minutes %= 60

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case hours == 0:
		return plural(minutes, "min")
	case minutes == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(minutes, "min")
	}
}
