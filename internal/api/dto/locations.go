package dto

type SaveLocationsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoadLocationsResponse struct {
	Success   bool              `json:"success"`
	Locations *LocationsPayload `json:"locations"`
}
