package services

import (
	"fmt"
	"math"
	"travel-time-service/internal/domain"
)

const (
	// Working days assumed per month.
	WorkingDaysPerMonth = 22
	MonthsPerYear       = 12
	hoursPerDay         = 24
	hoursPerWeek        = 24 * 7
)

// ComputeTimeLoss sums the four school-run legs of times and extrapolates the
// daily total to monthly and yearly figures.
//
// Absent legs count as zero. The direct home<->work legs are not part of the
// cycle and never contribute.
func ComputeTimeLoss(times domain.TravelTimeSet) (domain.TimeLossReport, error) {
	if err := times.Validate(); err != nil {
		return domain.TimeLossReport{}, fmt.Errorf("compute time loss: %w", err)
	}

	dailySeconds := 0
	for _, k := range domain.CycleRouteKeys {
		dailySeconds += times.Seconds(k)
	}

	return BuildTimeLossReport(dailySeconds), nil
}

// BuildTimeLossReport derives every report field from dailySeconds.
// All intermediate values keep full precision; rounding happens once per field.
func BuildTimeLossReport(dailySeconds int) domain.TimeLossReport {
	dailyMinutes := float64(dailySeconds) / 60
	dailyHours := dailyMinutes / 60
	monthlyHours := dailyHours * WorkingDaysPerMonth
	yearlyHours := monthlyHours * MonthsPerYear

	return domain.TimeLossReport{
		Daily: domain.DailyLoss{
			Seconds: dailySeconds,
			Minutes: roundTo(dailyMinutes, 1),
			Hours:   roundTo(dailyHours, 2),
		},
		Monthly: domain.MonthlyLoss{
			Hours: roundTo(monthlyHours, 1),
			Days:  roundTo(monthlyHours/hoursPerDay, 2),
		},
		Yearly: domain.YearlyLoss{
			Hours: roundTo(yearlyHours, 1),
			Days:  roundTo(yearlyHours/hoursPerDay, 1),
			Weeks: roundTo(yearlyHours/hoursPerWeek, 2),
		},
	}
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
