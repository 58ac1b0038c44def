package services

import (
	"errors"
	"math"
	"testing"
	"travel-time-service/internal/domain"
)

func legs(secs map[domain.RouteKey]int) domain.TravelTimeSet {
	out := make(domain.TravelTimeSet, len(secs))
	for k, s := range secs {
		out[k] = domain.TravelLeg{DurationSeconds: s}
	}
	return out
}

func TestComputeTimeLossExample(t *testing.T) {
	times := legs(map[domain.RouteKey]int{
		domain.HomeToSchool: 900,
		domain.SchoolToWork: 1200,
		domain.WorkToSchool: 1320,
		domain.SchoolToHome: 1080,
		domain.HomeToWork:   1500,
		domain.WorkToHome:   1500,
	})

	got, err := ComputeTimeLoss(times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.TimeLossReport{
		Daily:   domain.DailyLoss{Seconds: 4500, Minutes: 75.0, Hours: 1.25},
		Monthly: domain.MonthlyLoss{Hours: 27.5, Days: 1.15},
		Yearly:  domain.YearlyLoss{Hours: 330.0, Days: 13.8, Weeks: 1.96},
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestComputeTimeLossIgnoresHomeWorkLegs(t *testing.T) {
	base := map[domain.RouteKey]int{
		domain.HomeToSchool: 600,
		domain.SchoolToWork: 700,
		domain.WorkToSchool: 800,
		domain.SchoolToHome: 900,
	}

	for _, direct := range []int{0, 1, 1500, 99999} {
		m := map[domain.RouteKey]int{domain.HomeToWork: direct, domain.WorkToHome: direct * 2}
		for k, v := range base {
			m[k] = v
		}

		got, err := ComputeTimeLoss(legs(m))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Daily.Seconds != 3000 {
			t.Fatalf("direct=%d: daily seconds = %d, want 3000", direct, got.Daily.Seconds)
		}
	}
}

func TestComputeTimeLossMissingLegsAreZero(t *testing.T) {
	got, err := ComputeTimeLoss(legs(map[domain.RouteKey]int{domain.HomeToSchool: 1800}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Daily.Seconds != 1800 || got.Daily.Minutes != 30 || got.Daily.Hours != 0.5 {
		t.Fatalf("unexpected daily: %+v", got.Daily)
	}

	empty, err := ComputeTimeLoss(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty set: %v", err)
	}
	if empty != (domain.TimeLossReport{}) {
		t.Fatalf("empty set report = %+v, want zero", empty)
	}
}

func TestComputeTimeLossRejectsNegative(t *testing.T) {
	_, err := ComputeTimeLoss(legs(map[domain.RouteKey]int{domain.SchoolToHome: -1}))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestBuildTimeLossReportProperties(t *testing.T) {
	for _, secs := range []int{0, 1, 59, 61, 1234, 3599, 3600, 4500, 7777, 86399} {
		r := BuildTimeLossReport(secs)

		if math.Abs(r.Daily.Hours-float64(secs)/3600) > 0.01 {
			t.Errorf("secs=%d: hours %v not within 0.01 of %v", secs, r.Daily.Hours, float64(secs)/3600)
		}

		rawHours := float64(secs) / 3600
		if math.Abs(r.Monthly.Hours-rawHours*22) > 0.051 {
			t.Errorf("secs=%d: monthly hours %v, want ~%v", secs, r.Monthly.Hours, rawHours*22)
		}
		if math.Abs(r.Yearly.Hours-rawHours*22*12) > 0.051 {
			t.Errorf("secs=%d: yearly hours %v, want ~%v", secs, r.Yearly.Hours, rawHours*22*12)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{13.75, 1, 13.8},
		{1.9642857, 2, 1.96},
		{1.145833, 2, 1.15},
		{0.05, 1, 0.1},
	}
	for _, tt := range tests {
		if got := roundTo(tt.v, tt.places); got != tt.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}
