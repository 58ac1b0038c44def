package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"
)

// SQLLegCache is a Postgres-backed cache for origin->destination route results.
// Entries older than TTL are treated as misses; a zero TTL never expires.
type SQLLegCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLLegCache(db *sql.DB, ttl time.Duration) *SQLLegCache {
	return &SQLLegCache{DB: db, TTL: ttl}
}

// InitSchema creates the leg_cache table in Postgres.
func (s *SQLLegCache) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        distance_text TEXT NOT NULL,
        duration_text TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        PRIMARY KEY (origin, destination)
    );
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("leg cache: create table: %w", err)
	}
	return nil
}

// Fetch the cached result for one origin and destination.
func (s *SQLLegCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("leg cache: db is nil")
	}

	if origin == "" || destination == "" {
		return ports.RouteResult{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q, args := s.getQuery(origin, destination)

	var r ports.RouteResult
	err = s.DB.QueryRowContext(ctx, q, args...).
		Scan(&r.DistanceMeters, &r.DurationSeconds, &r.DistanceText, &r.DurationText)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return r, true, nil
}

// getQuery selects one entry, skipping it once it is older than TTL.
func (s *SQLLegCache) getQuery(origin, destination string) (string, []any) {
	q := `
	SELECT distance_meters, duration_seconds, distance_text, duration_text
	FROM leg_cache
	WHERE origin = $1
		AND destination = $2`
	args := []any{origin, destination}

	if s.TTL > 0 {
		q += `
		AND updated_at > now() - ($3 * interval '1 second')`
		args = append(args, s.TTL.Seconds())
	}

	return q + ";", args
}

// Store one route result.
func (s *SQLLegCache) Put(
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
	INSERT INTO leg_cache (origin, destination, distance_meters, duration_seconds, distance_text, duration_text)
    VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		distance_text = EXCLUDED.distance_text,
		duration_text = EXCLUDED.duration_text,
		updated_at = now();
	`, origin, destination, r.DistanceMeters, r.DurationSeconds, r.DistanceText, r.DurationText)
	if err != nil {
		return fmt.Errorf("insert leg cache origin=%q dest=%q: %w", origin, destination, err)
	}

	return nil
}
