package services

import (
	"strconv"
	"strings"
	"time"
	"travel-time-service/internal/domain"
)

// BuildSheetRow lays out one calculation in the export sheet's column order:
// date, time, the three addresses, the four cycle legs and the daily,
// monthly and yearly totals.
func BuildSheetRow(
	now time.Time,
	locs domain.Locations,
	times domain.TravelTimeSet,
	report domain.TimeLossReport,
) []string {
	row := []string{
		now.Format("2006-01-02"),
		now.Format("15:04:05"),
		locs.Home,
		locs.School,
		locs.Work,
	}

	for _, k := range domain.CycleRouteKeys {
		row = append(row, times[k].Duration)
	}

	row = append(row,
		formatNumber(report.Daily.Hours)+" цаг",
		formatNumber(report.Monthly.Hours)+" цаг",
		formatNumber(report.Yearly.Days)+" өдөр",
	)

	return row
}

// formatNumber prints the shortest exact decimal, keeping at least one
// fractional digit: 330 -> "330.0", 1.25 -> "1.25".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
