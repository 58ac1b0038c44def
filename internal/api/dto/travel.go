package dto

type CalculateTravelTimeRequest struct {
	Home   string `json:"home" validate:"required"`
	School string `json:"school" validate:"required"`
	Work   string `json:"work" validate:"required"`
}

type TravelLeg struct {
	Distance      string `json:"distance"`
	Duration      string `json:"duration"`
	DurationValue int    `json:"duration_value"`
}

type TravelTimesResponse struct {
	Success     bool                 `json:"success"`
	TravelTimes map[string]TravelLeg `json:"travel_times"`
}

type LocationsPayload struct {
	Home   string `json:"home"`
	School string `json:"school"`
	Work   string `json:"work"`
}

type CalculateTimeLossRequest struct {
	TravelTimes map[string]TravelLeg `json:"travel_times"`
}

type DailyLoss struct {
	Seconds int     `json:"seconds"`
	Minutes float64 `json:"minutes"`
	Hours   float64 `json:"hours"`
}

type MonthlyLoss struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

type YearlyLoss struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
	Weeks float64 `json:"weeks"`
}

type TimeLoss struct {
	Daily   DailyLoss   `json:"daily"`
	Monthly MonthlyLoss `json:"monthly"`
	Yearly  YearlyLoss  `json:"yearly"`
}

type TimeLossResponse struct {
	Success  bool     `json:"success"`
	TimeLoss TimeLoss `json:"time_loss"`
}
