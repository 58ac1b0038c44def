package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"
)

const (
	defaultPerPage = 20
	dateLayout     = "2006-01-02"
	exportPageSize = 500
)

// AdminHandler exposes the stored search history.
type AdminHandler struct {
	History ports.HistoryRepository
	Now     func() time.Time
}

func (h *AdminHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *AdminHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	q, err := parseHistoryQuery(r)
	if err != nil {
		writeDomainError(w, r, "list history", err)
		return
	}
	filter, err := historyFilter(q.StartDate, q.EndDate)
	if err != nil {
		writeDomainError(w, r, "list history", err)
		return
	}

	recs, total, err := h.History.List(r.Context(), filter, q.PerPage, (q.Page-1)*q.PerPage)
	if err != nil {
		writeDomainError(w, r, "list history", err)
		return
	}

	res := dto.SearchHistoryResponse{
		Success: true,
		Data:    make([]dto.SearchRecord, 0, len(recs)),
		Pagination: dto.Pagination{
			Page:    q.Page,
			PerPage: q.PerPage,
			Total:   total,
			Pages:   (total + q.PerPage - 1) / q.PerPage,
		},
	}
	for _, rec := range recs {
		res.Data = append(res.Data, dto.SearchRecord{
			ID:              rec.ID,
			HomeAddress:     rec.Locations.Home,
			SchoolAddress:   rec.Locations.School,
			WorkAddress:     rec.Locations.Work,
			DailyTimeLoss:   rec.DailyMinutes,
			MonthlyTimeLoss: rec.MonthlyHours,
			YearlyTimeLoss:  rec.YearlyDays,
			CreatedAt:       rec.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *AdminHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	if err := h.History.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, "delete history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "record deleted",
	})
}

func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	st, err := h.History.Statistics(r.Context(), h.now())
	if err != nil {
		writeDomainError(w, r, "history statistics", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatisticsResponse{
		Success: true,
		Statistics: dto.Statistics{
			TotalSearches: st.TotalSearches,
			TodaySearches: st.TodaySearches,
			WeekSearches:  st.WeekSearches,
			MonthSearches: st.MonthSearches,
			Averages: dto.Averages{
				DailyTimeLoss:   st.AvgDailyMinutes,
				MonthlyTimeLoss: st.AvgMonthlyHours,
				YearlyTimeLoss:  st.AvgYearlyDays,
			},
			CommonAddresses: dto.CommonAddresses{
				Home:   toAddressCounts(st.CommonHome),
				School: toAddressCounts(st.CommonSchool),
				Work:   toAddressCounts(st.CommonWork),
			},
		},
	})
}

// Export streams the filtered history as a CSV download. The admin panel
// requests it as export-excel; spreadsheet apps open the CSV directly.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := historyFilter(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeDomainError(w, r, "export history", err)
		return
	}

	// Read the first page before committing to a CSV response so storage
	// errors can still be reported as JSON.
	recs, total, err := h.History.List(r.Context(), filter, exportPageSize, 0)
	if err != nil {
		writeDomainError(w, r, "export history", err)
		return
	}

	filename := fmt.Sprintf("search_history_%s.csv", h.now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"id", "home_address", "school_address", "work_address",
		"daily_time_loss", "monthly_time_loss", "yearly_time_loss", "created_at",
	})

	for offset := 0; ; {
		for _, rec := range recs {
			_ = cw.Write([]string{
				strconv.FormatInt(rec.ID, 10),
				rec.Locations.Home,
				rec.Locations.School,
				rec.Locations.Work,
				strconv.FormatFloat(rec.DailyMinutes, 'f', -1, 64),
				strconv.FormatFloat(rec.MonthlyHours, 'f', -1, 64),
				strconv.FormatFloat(rec.YearlyDays, 'f', -1, 64),
				rec.CreatedAt.Format(time.RFC3339),
			})
		}

		offset += len(recs)
		if len(recs) == 0 || offset >= total {
			break
		}

		recs, _, err = h.History.List(r.Context(), filter, exportPageSize, offset)
		if err != nil {
			log.Printf("export history: page offset=%d failed: %v", offset, err)
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("export history: write csv failed: %v", err)
	}
}

func parseHistoryQuery(r *http.Request) (dto.HistoryQuery, error) {
	q := r.URL.Query()
	out := dto.HistoryQuery{
		Page:      1,
		PerPage:   defaultPerPage,
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	var err error
	if v := q.Get("page"); v != "" {
		if out.Page, err = strconv.Atoi(v); err != nil {
			return dto.HistoryQuery{}, fmt.Errorf("page must be an integer: %w", domain.ErrInvalidInput)
		}
	}
	if v := q.Get("per_page"); v != "" {
		if out.PerPage, err = strconv.Atoi(v); err != nil {
			return dto.HistoryQuery{}, fmt.Errorf("per_page must be an integer: %w", domain.ErrInvalidInput)
		}
	}

	if err := validateStruct(out); err != nil {
		return dto.HistoryQuery{}, err
	}
	return out, nil
}

// historyFilter turns inclusive YYYY-MM-DD bounds into a half-open time range.
func historyFilter(start, end string) (ports.HistoryFilter, error) {
	var f ports.HistoryFilter

	if start != "" {
		t, err := time.ParseInLocation(dateLayout, start, time.Local)
		if err != nil {
			return f, fmt.Errorf("start_date must be YYYY-MM-DD: %w", domain.ErrInvalidInput)
		}
		f.Start = t
	}
	if end != "" {
		t, err := time.ParseInLocation(dateLayout, end, time.Local)
		if err != nil {
			return f, fmt.Errorf("end_date must be YYYY-MM-DD: %w", domain.ErrInvalidInput)
		}
		f.End = t.AddDate(0, 0, 1)
	}

	if !f.Start.IsZero() && !f.End.IsZero() && !f.Start.Before(f.End) {
		return f, fmt.Errorf("start_date must not be after end_date: %w", domain.ErrInvalidInput)
	}
	return f, nil
}

func toAddressCounts(in []domain.AddressCount) []dto.AddressCount {
	out := make([]dto.AddressCount, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AddressCount{Address: a.Address, Count: a.Count})
	}
	return out
}
