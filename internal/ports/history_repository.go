package ports

import (
	"context"
	"time"
	"travel-time-service/internal/domain"
)

// HistoryFilter selects records by creation time. Zero bounds are open.
type HistoryFilter struct {
	Start time.Time
	End   time.Time
}

// Port: stored time-loss calculations.
type HistoryRepository interface {
	Record(ctx context.Context, rec domain.SearchRecord) (int64, error)
	List(ctx context.Context, filter HistoryFilter, limit, offset int) ([]domain.SearchRecord, int, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, now time.Time) (domain.SearchStatistics, error)
}
