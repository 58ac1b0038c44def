package domain

import "time"

// SearchRecord is one stored time-loss calculation.
type SearchRecord struct {
	ID           int64
	Locations    Locations
	DailyMinutes float64
	MonthlyHours float64
	YearlyDays   float64
	CreatedAt    time.Time
}

// AddressCount is how often an address was used for one role.
type AddressCount struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

// SearchStatistics summarizes the stored history.
type SearchStatistics struct {
	TotalSearches int
	TodaySearches int
	WeekSearches  int
	MonthSearches int

	AvgDailyMinutes float64
	AvgMonthlyHours float64
	AvgYearlyDays   float64

	CommonHome   []AddressCount
	CommonSchool []AddressCount
	CommonWork   []AddressCount
}
