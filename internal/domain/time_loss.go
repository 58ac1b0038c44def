package domain

// Commute time lost, derived from the daily cycle seconds.
// Values are rounded for presentation only.
type TimeLossReport struct {
	Daily   DailyLoss   `json:"daily"`
	Monthly MonthlyLoss `json:"monthly"`
	Yearly  YearlyLoss  `json:"yearly"`
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
