package dto

import "time"

type HistoryQuery struct {
	Page      int    `validate:"min=1"`
	PerPage   int    `validate:"min=1,max=100"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// SearchRecord is one history row. Time losses are daily minutes,
// monthly hours and yearly days.
type SearchRecord struct {
	ID              int64     `json:"id"`
	HomeAddress     string    `json:"home_address"`
	SchoolAddress   string    `json:"school_address"`
	WorkAddress     string    `json:"work_address"`
	DailyTimeLoss   float64   `json:"daily_time_loss"`
	MonthlyTimeLoss float64   `json:"monthly_time_loss"`
	YearlyTimeLoss  float64   `json:"yearly_time_loss"`
	CreatedAt       time.Time `json:"created_at"`
}

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

type SearchHistoryResponse struct {
	Success    bool           `json:"success"`
	Data       []SearchRecord `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type AddressCount struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

type Averages struct {
	DailyTimeLoss   float64 `json:"daily_time_loss"`
	MonthlyTimeLoss float64 `json:"monthly_time_loss"`
	YearlyTimeLoss  float64 `json:"yearly_time_loss"`
}

type CommonAddresses struct {
	Home   []AddressCount `json:"home"`
	School []AddressCount `json:"school"`
	Work   []AddressCount `json:"work"`
}

type Statistics struct {
	TotalSearches   int             `json:"total_searches"`
	TodaySearches   int             `json:"today_searches"`
	WeekSearches    int             `json:"week_searches"`
	MonthSearches   int             `json:"month_searches"`
	Averages        Averages        `json:"averages"`
	CommonAddresses CommonAddresses `json:"common_addresses"`
}

type StatisticsResponse struct {
	Success    bool       `json:"success"`
	Statistics Statistics `json:"statistics"`
}
