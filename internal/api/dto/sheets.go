package dto

type AuthURLResponse struct {
	Success          bool   `json:"success"`
	AuthorizationURL string `json:"authorization_url"`
}

type CheckAuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

type SpreadsheetResponse struct {
	Success        bool   `json:"success"`
	SpreadsheetID  string `json:"spreadsheet_id"`
	SpreadsheetURL string `json:"spreadsheet_url"`
}

type SaveToSheetsRequest struct {
	Locations   LocationsPayload     `json:"locations"`
	TravelTimes map[string]TravelLeg `json:"travel_times" validate:"required"`
	// TimeLoss is accepted for compatibility; the row is built from a
	// report recomputed from TravelTimes.
	TimeLoss *TimeLoss `json:"time_loss"`
}

type SaveToSheetsResponse struct {
	Success        bool   `json:"success"`
	SpreadsheetURL string `json:"spreadsheet_url"`
	UpdatedCells   int64  `json:"updated_cells"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
