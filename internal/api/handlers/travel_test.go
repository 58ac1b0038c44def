package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"travel-time-service/internal/adapters/distance"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"
)

type fakeHistory struct {
	records []domain.SearchRecord
	err     error
}

func (f *fakeHistory) Record(_ context.Context, rec domain.SearchRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.records = append(f.records, rec)
	return int64(len(f.records)), nil
}

func (f *fakeHistory) List(context.Context, ports.HistoryFilter, int, int) ([]domain.SearchRecord, int, error) {
	return f.records, len(f.records), f.err
}

func (f *fakeHistory) Delete(context.Context, int64) error { return f.err }

func (f *fakeHistory) Statistics(context.Context, time.Time) (domain.SearchStatistics, error) {
	return domain.SearchStatistics{}, f.err
}

func newTravelHandler() *TravelHandler {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "Home", To: "Work", Meters: 12000, Seconds: 1400},
		{From: "Work", To: "Home", Meters: 12000, Seconds: 1400},
		{From: "Home", To: "School", Meters: 3000, Seconds: 900},
		{From: "School", To: "Home", Meters: 3000, Seconds: 1080},
		{From: "Work", To: "School", Meters: 9000, Seconds: 1320},
		// School -> Work is missing and falls back.
	})
	return &TravelHandler{Provider: provider, LegTimeout: time.Second}
}

func TestCalculateTravelTime(t *testing.T) {
	h := newTravelHandler()

	rec := doJSON(t, h.CalculateTravelTime, http.MethodPost, "/api/calculate-travel-time",
		`{"home":"Home","school":"School","work":"Work"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var res dto.TravelTimesResponse
	decodeBody(t, rec, &res)

	if !res.Success || len(res.TravelTimes) != 6 {
		t.Fatalf("unexpected response: %+v", res)
	}
	if got := res.TravelTimes["home_to_school"]; got.DurationValue != 900 || got.Duration != "15 mins" {
		t.Errorf("home_to_school = %+v", got)
	}
	if got := res.TravelTimes["school_to_work"]; got.DurationValue != 1500 || got.Distance != "15.0 km" || got.Duration != "25 mins" {
		t.Errorf("school_to_work = %+v, want fallback leg", got)
	}
}

func TestCalculateTravelTimeBadInput(t *testing.T) {
	h := newTravelHandler()

	tests := []struct {
		name string
		body string
	}{
		{"missing home", `{"school":"School","work":"Work"}`},
		{"blank work", `{"home":"Home","school":"School","work":"   "}`},
		{"unknown field", `{"home":"Home","school":"School","work":"Work","extra":1}`},
		{"not json", `home=Home`},
		{"two objects", `{"home":"Home","school":"School","work":"Work"}{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.CalculateTravelTime, http.MethodPost, "/api/calculate-travel-time", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
			if errorMessage(t, rec) == "" {
				t.Fatal("missing error message")
			}
		})
	}
}

func TestCalculateTimeLoss(t *testing.T) {
	history := &fakeHistory{}
	h := &TravelHandler{History: history}

	body := `{
		"travel_times": {
			"home_to_school": {"distance": "3 km", "duration": "15 mins", "duration_value": 900},
			"school_to_work": {"distance": "9 km", "duration": "20 mins", "duration_value": 1200},
			"work_to_school": {"distance": "9 km", "duration": "22 mins", "duration_value": 1320},
			"school_to_home": {"distance": "3 km", "duration": "18 mins", "duration_value": 1080},
			"home_to_work": {"distance": "12 km", "duration": "90 mins", "duration_value": 5400}
		}
	}`

	rec := doJSON(t, h.CalculateTimeLoss, http.MethodPost, "/api/calculate-time-loss", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var res dto.TimeLossResponse
	decodeBody(t, rec, &res)

	want := dto.TimeLoss{
		Daily:   dto.DailyLoss{Seconds: 4500, Minutes: 75, Hours: 1.25},
		Monthly: dto.MonthlyLoss{Hours: 27.5, Days: 1.15},
		Yearly:  dto.YearlyLoss{Hours: 330, Days: 13.8, Weeks: 1.96},
	}
	if !res.Success || res.TimeLoss != want {
		t.Fatalf("time loss = %+v, want %+v", res.TimeLoss, want)
	}
	if len(history.records) != 0 {
		t.Fatal("time-loss request has no addresses and should not be recorded")
	}
}

func TestCalculateTimeLossPartial(t *testing.T) {
	h := &TravelHandler{}

	rec := doJSON(t, h.CalculateTimeLoss, http.MethodPost, "/api/calculate-time-loss",
		`{"travel_times": {"home_to_school": {"duration_value": 600}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var res dto.TimeLossResponse
	decodeBody(t, rec, &res)
	if res.TimeLoss.Daily.Seconds != 600 || res.TimeLoss.Daily.Minutes != 10 {
		t.Fatalf("daily = %+v", res.TimeLoss.Daily)
	}
}

func TestCalculateTravelTimeRecordsHistory(t *testing.T) {
	history := &fakeHistory{}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	h := newTravelHandler()
	h.History = history
	h.Now = func() time.Time { return now }

	rec := doJSON(t, h.CalculateTravelTime, http.MethodPost, "/api/calculate-travel-time",
		`{"home":"Home","school":"School","work":"Work"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	if len(history.records) != 1 {
		t.Fatalf("recorded %d searches, want 1", len(history.records))
	}

	// 900 + 1500 (fallback school_to_work) + 1320 + 1080 = 4800s a day.
	got := history.records[0]
	if got.Locations != (domain.Locations{Home: "Home", School: "School", Work: "Work"}) ||
		got.DailyMinutes != 80 || got.MonthlyHours != 29.3 || got.YearlyDays != 14.7 ||
		!got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCalculateTravelTimeHistoryFailureIsNotSurfaced(t *testing.T) {
	h := newTravelHandler()
	h.History = &fakeHistory{err: errors.New("disk full")}

	rec := doJSON(t, h.CalculateTravelTime, http.MethodPost, "/api/calculate-travel-time",
		`{"home":"Home","school":"School","work":"Work"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
}

// The web client posts the addresses to calculate-travel-time, then posts
// only the returned travel_times to calculate-time-loss.
func TestClientCalculationFlowFillsHistory(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	admin, repo := newAdminHandler(t, now)

	h := newTravelHandler()
	h.History = repo
	h.Now = func() time.Time { return now }

	rec := doJSON(t, h.CalculateTravelTime, http.MethodPost, "/api/calculate-travel-time",
		`{"home":"Home","school":"School","work":"Work"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("travel time status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var travel dto.TravelTimesResponse
	decodeBody(t, rec, &travel)

	body, err := json.Marshal(map[string]any{"travel_times": travel.TravelTimes})
	if err != nil {
		t.Fatal(err)
	}
	rec = doJSON(t, h.CalculateTimeLoss, http.MethodPost, "/api/calculate-time-loss", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("time loss status = %d, body=%s", rec.Code, rec.Body.String())
	}

	recs, total, err := repo.List(context.Background(), ports.HistoryFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if total != 1 || len(recs) != 1 || recs[0].Locations.Home != "Home" || recs[0].DailyMinutes != 80 {
		t.Fatalf("history = %+v (total %d), want one row", recs, total)
	}

	rec = doJSON(t, admin.Statistics, http.MethodGet, "/api/admin/statistics", "")
	var stats dto.StatisticsResponse
	decodeBody(t, rec, &stats)
	if stats.Statistics.TotalSearches != 1 {
		t.Fatalf("total_searches = %d, want 1", stats.Statistics.TotalSearches)
	}
}

func TestCalculateTimeLossBadInput(t *testing.T) {
	h := &TravelHandler{}

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"negative duration", `{"travel_times": {"home_to_school": {"duration_value": -1}}}`, "negative"},
		{"non-numeric duration", `{"travel_times": {"home_to_school": {"duration_value": "ten"}}}`, "invalid json"},
		{"unknown route key", `{"travel_times": {"school_to_mall": {"duration_value": 60}}}`, "unknown route key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.CalculateTimeLoss, http.MethodPost, "/api/calculate-time-loss", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
			if msg := errorMessage(t, rec); !strings.Contains(msg, tt.wantMsg) {
				t.Fatalf("error = %q, want it to mention %q", msg, tt.wantMsg)
			}
		})
	}
}
