package domain

// Geographic point as returned by place search.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is the recommended display box for a place.
type Viewport struct {
	Northeast Coordinates `json:"northeast"`
	Southwest Coordinates `json:"southwest"`
}

// PlaceGeometry locates a place search result.
type PlaceGeometry struct {
	Location Coordinates `json:"location"`
	Viewport Viewport    `json:"viewport"`
}

// Place is one place search candidate.
type Place struct {
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	PlaceID          string        `json:"place_id"`
	Geometry         PlaceGeometry `json:"geometry"`
}
