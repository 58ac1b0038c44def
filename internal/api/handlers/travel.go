package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"
	"travel-time-service/internal/services"
)

// TravelHandler serves the two core calculations.
type TravelHandler struct {
	Provider   ports.RoutingProvider
	LegTimeout time.Duration
	// History is optional; when nil calculations are not recorded.
	History ports.HistoryRepository
	Now     func() time.Time
}

func (h *TravelHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// CalculateTravelTime estimates all six legs between the posted locations
// and records the resulting time loss in the search history.
func (h *TravelHandler) CalculateTravelTime(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateTravelTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "calculate travel time", err)
		return
	}

	locs := domain.Locations{Home: req.Home, School: req.School, Work: req.Work}
	times, err := services.FetchTravelTimes(r.Context(), locs, h.Provider, h.LegTimeout)
	if err != nil {
		writeDomainError(w, r, "calculate travel time", err)
		return
	}

	// The addresses are only known here; clients post the time-loss request
	// with travel times alone.
	if report, err := services.ComputeTimeLoss(times); err != nil {
		log.Printf("req_id=%s history report failed: %v", obs.RequestID(r.Context()), err)
	} else {
		h.record(r.Context(), locs, report)
	}

	writeJSON(w, r, http.StatusOK, dto.TravelTimesResponse{
		Success:     true,
		TravelTimes: toTravelTimesDTO(times),
	})
}

// CalculateTimeLoss aggregates posted travel times into a time-loss report.
func (h *TravelHandler) CalculateTimeLoss(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateTimeLossRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "calculate time loss", err)
		return
	}

	times, err := toTravelTimeSet(req.TravelTimes)
	if err != nil {
		writeDomainError(w, r, "calculate time loss", err)
		return
	}

	report, err := services.ComputeTimeLoss(times)
	if err != nil {
		writeDomainError(w, r, "calculate time loss", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TimeLossResponse{
		Success:  true,
		TimeLoss: toTimeLossDTO(report),
	})
}

// record stores the calculation in the search history. Failures are only logged.
func (h *TravelHandler) record(ctx context.Context, locs domain.Locations, report domain.TimeLossReport) {
	if h.History == nil {
		return
	}

	_, err := h.History.Record(ctx, domain.SearchRecord{
		Locations:    locs,
		DailyMinutes: report.Daily.Minutes,
		MonthlyHours: report.Monthly.Hours,
		YearlyDays:   report.Yearly.Days,
		CreatedAt:    h.now(),
	})
	if err != nil {
		log.Printf("req_id=%s record search history failed: %v", obs.RequestID(ctx), err)
	}
}
