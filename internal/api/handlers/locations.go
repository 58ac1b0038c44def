package handlers

import (
	"net/http"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/ports"
)

// LocationsHandler persists the last used household addresses.
type LocationsHandler struct {
	Store ports.LocationStore
}

func (h *LocationsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.LocationsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "save locations", err)
		return
	}

	if err := h.Store.Save(r.Context(), toLocations(req)); err != nil {
		writeDomainError(w, r, "save locations", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SaveLocationsResponse{
		Success: true,
		Message: "locations saved",
	})
}

func (h *LocationsHandler) Load(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Store.Load(r.Context())
	if err != nil {
		writeDomainError(w, r, "load locations", err)
		return
	}

	res := dto.LoadLocationsResponse{Success: true}
	if locs != nil {
		p := toLocationsDTO(*locs)
		res.Locations = &p
	}

	writeJSON(w, r, http.StatusOK, res)
}
