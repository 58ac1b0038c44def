package dto

type SearchPlacesRequest struct {
	Query string `json:"query" validate:"required"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Viewport struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

type Geometry struct {
	Location LatLng   `json:"location"`
	Viewport Viewport `json:"viewport"`
}

type Place struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          string   `json:"place_id"`
	Geometry         Geometry `json:"geometry"`
}

type SearchPlacesResponse struct {
	Success bool    `json:"success"`
	Places  []Place `json:"places"`
}
