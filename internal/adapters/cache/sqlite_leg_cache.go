package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"travel-time-service/internal/ports"
)

// SQLite backed cache for origin->destination route results.
// Keys are expected to be consistent (e.g., already normalized)
// by the caller. Entries older than TTL are treated as misses.
type SqliteLegCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSqliteLegCache(db *sql.DB, ttl time.Duration) *SqliteLegCache {
	return &SqliteLegCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch the cached result for one origin and destination.
func (s *SqliteLegCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("leg cache: db is nil")
	}

	if origin == "" || destination == "" {
		return ports.RouteResult{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT
        distance_meters,
        duration_seconds,
        distance_text,
        duration_text,
        updated_at
    FROM leg_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var r ports.RouteResult
	var updatedAt int64
	err := s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&r.DistanceMeters, &r.DurationSeconds, &r.DistanceText, &r.DurationText, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	if s.TTL > 0 && s.now().Sub(time.Unix(updatedAt, 0)) > s.TTL {
		return ports.RouteResult{}, false, nil
	}

	return r, true, nil
}

// Store one route result, replacing any previous entry.
func (s *SqliteLegCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if origin == "" || destination == "" {
		return errors.New("insert leg cache: origin and destination must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO leg_cache (
        origin,
        destination,
        distance_meters,
        duration_seconds,
        distance_text,
        duration_text,
        updated_at
    )
    VALUES (?, ?, ?, ?, ?, ?, ?)
	`, origin, destination, r.DistanceMeters, r.DurationSeconds, r.DistanceText, r.DurationText, s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert leg cache origin=%q dest=%q: %w", origin, destination, err)
	}

	return nil
}
