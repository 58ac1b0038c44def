package places

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/platform/obs"

	"googlemaps.github.io/maps"
)

// GooglePlaceSearcher implements PlaceSearcher with Places Text Search.
type GooglePlaceSearcher struct {
	client   *maps.Client
	language string
}

func NewGooglePlaceSearcher(client *maps.Client, language string) (*GooglePlaceSearcher, error) {
	if client == nil {
		return nil, errors.New("place searcher: maps client is nil")
	}
	return &GooglePlaceSearcher{client: client, language: language}, nil
}

func (s *GooglePlaceSearcher) SearchPlaces(
	ctx context.Context,
	query string,
	limit int,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "google.SearchPlaces")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search places: query is required: %w", domain.ErrInvalidInput)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: s.language,
	})
	if err != nil {
		return nil, fmt.Errorf("search places: %v: %w", err, domain.ErrUpstreamUnavailable)
	}

	results := resp.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := make([]domain.Place, 0, len(results))
	for _, r := range results {
		out = append(out, domain.Place{
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Geometry: domain.PlaceGeometry{
				Location: toCoordinates(r.Geometry.Location),
				Viewport: domain.Viewport{
					Northeast: toCoordinates(r.Geometry.Viewport.NorthEast),
					Southwest: toCoordinates(r.Geometry.Viewport.SouthWest),
				},
			},
		})
	}

	return out, nil
}

func toCoordinates(ll maps.LatLng) domain.Coordinates {
	return domain.Coordinates{Lat: ll.Lat, Lng: ll.Lng}
}
