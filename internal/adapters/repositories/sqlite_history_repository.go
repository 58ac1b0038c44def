package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/ports"
)

const commonAddressLimit = 5

// SQLite-backed implementation of the HistoryRepository port.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

// Record stores one calculation and returns its id.
func (s *SqliteHistoryRepository) Record(ctx context.Context, rec domain.SearchRecord) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite history repository: DB is nil")
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO search_history (
		home,
		school,
		work,
		daily_minutes,
		monthly_hours,
		yearly_days,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		rec.Locations.Home,
		rec.Locations.School,
		rec.Locations.Work,
		rec.DailyMinutes,
		rec.MonthlyHours,
		rec.YearlyDays,
		createdAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("record search: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record search: last insert id: %w", err)
	}

	return id, nil
}

func filterClause(f ports.HistoryFilter) (string, []any) {
	var conds []string
	var args []any

	if !f.Start.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.Start.Unix())
	}
	if !f.End.IsZero() {
		conds = append(conds, "created_at < ?")
		args = append(args, f.End.Unix())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of records, newest first, and the total matching count.
func (s *SqliteHistoryRepository) List(
	ctx context.Context,
	filter ports.HistoryFilter,
	limit int,
	offset int,
) ([]domain.SearchRecord, int, error) {
	if s.DB == nil {
		return nil, 0, errors.New("sqlite history repository: DB is nil")
	}

	where, args := filterClause(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM search_history " + where
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list history: count: %w", err)
	}

	// Only the fixed WHERE structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`
	SELECT
		id,
		home,
		school,
		work,
		daily_minutes,
		monthly_hours,
		yearly_days,
		created_at
	FROM search_history
	%s
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?;
	`, where)

	rows, err := s.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: query search_history table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SearchRecord, 0, limit)
	for rows.Next() {
		var rec domain.SearchRecord
		var createdAt int64
		err := rows.Scan(
			&rec.ID,
			&rec.Locations.Home,
			&rec.Locations.School,
			&rec.Locations.Work,
			&rec.DailyMinutes,
			&rec.MonthlyHours,
			&rec.YearlyDays,
			&createdAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("list history: scan row: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list history: row iteration: %w", err)
	}

	return records, total, nil
}

// Delete removes one record. Missing ids yield domain.ErrNotFound.
func (s *SqliteHistoryRepository) Delete(ctx context.Context, id int64) error {
	if s.DB == nil {
		return errors.New("sqlite history repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM search_history WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete history id=%d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history id=%d: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete history id=%d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Statistics summarizes the whole history relative to now.
// Today starts at local midnight of now; week and month are the trailing
// 7 and 30 days.
func (s *SqliteHistoryRepository) Statistics(ctx context.Context, now time.Time) (domain.SearchStatistics, error) {
	var stats domain.SearchStatistics

	if s.DB == nil {
		return stats, errors.New("sqlite history repository: DB is nil")
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(daily_minutes), 0),
		COALESCE(AVG(monthly_hours), 0),
		COALESCE(AVG(yearly_days), 0)
	FROM search_history;
	`
	err := s.DB.QueryRowContext(ctx, query,
		midnight.Unix(),
		now.AddDate(0, 0, -7).Unix(),
		now.AddDate(0, 0, -30).Unix(),
	).Scan(
		&stats.TotalSearches,
		&stats.TodaySearches,
		&stats.WeekSearches,
		&stats.MonthSearches,
		&stats.AvgDailyMinutes,
		&stats.AvgMonthlyHours,
		&stats.AvgYearlyDays,
	)
	if err != nil {
		return stats, fmt.Errorf("history statistics: aggregate: %w", err)
	}

	for _, target := range []struct {
		column string
		dst    *[]domain.AddressCount
	}{
		{"home", &stats.CommonHome},
		{"school", &stats.CommonSchool},
		{"work", &stats.CommonWork},
	} {
		counts, err := s.commonAddresses(ctx, target.column)
		if err != nil {
			return stats, err
		}
		*target.dst = counts
	}

	return stats, nil
}

// commonAddresses ranks the values of one fixed column by frequency.
func (s *SqliteHistoryRepository) commonAddresses(ctx context.Context, column string) ([]domain.AddressCount, error) {
	// column comes from a fixed list; it is never user input.
	query := fmt.Sprintf(`
	SELECT %[1]s, COUNT(*) AS n
	FROM search_history
	WHERE %[1]s <> ''
	GROUP BY %[1]s
	ORDER BY n DESC, %[1]s ASC
	LIMIT ?;
	`, column)

	rows, err := s.DB.QueryContext(ctx, query, commonAddressLimit)
	if err != nil {
		return nil, fmt.Errorf("history statistics: common %s: %w", column, err)
	}
	defer rows.Close()

	out := make([]domain.AddressCount, 0, commonAddressLimit)
	for rows.Next() {
		var c domain.AddressCount
		if err := rows.Scan(&c.Address, &c.Count); err != nil {
			return nil, fmt.Errorf("history statistics: scan %s: %w", column, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history statistics: %s row iteration: %w", column, err)
	}

	return out, nil
}
