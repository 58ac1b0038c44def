package handlers

import (
	"fmt"
	"net/http"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"
)

const placeSearchLimit = 5

type PlacesHandler struct {
	// Searcher is nil when no maps API key is configured.
	Searcher ports.PlaceSearcher
}

func (h *PlacesHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchPlacesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "search places", err)
		return
	}

	if h.Searcher == nil {
		writeDomainError(w, r, "search places",
			fmt.Errorf("place search not configured: %w", domain.ErrUpstreamUnavailable))
		return
	}

	places, err := h.Searcher.SearchPlaces(r.Context(), req.Query, placeSearchLimit)
	if err != nil {
		writeDomainError(w, r, "search places", err)
		return
	}

	res := dto.SearchPlacesResponse{
		Success: true,
		Places:  make([]dto.Place, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, dto.Place{
			Name:             p.Name,
			FormattedAddress: p.FormattedAddress,
			PlaceID:          p.PlaceID,
			Geometry: dto.Geometry{
				Location: dto.LatLng{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
				Viewport: dto.Viewport{
					Northeast: dto.LatLng{Lat: p.Geometry.Viewport.Northeast.Lat, Lng: p.Geometry.Viewport.Northeast.Lng},
					Southwest: dto.LatLng{Lat: p.Geometry.Viewport.Southwest.Lat, Lng: p.Geometry.Viewport.Southwest.Lng},
				},
			},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
