package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "leg:"

// RedisLegCache stores route results as JSON values with a TTL.
type RedisLegCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLegCache(client *redis.Client, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{client: client, ttl: ttl}
}

// NewRedisLegCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisLegCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisLegCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis leg cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis leg cache: ping: %w", err)
	}

	return NewRedisLegCache(client, ttl), nil
}

type redisLeg struct {
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	DistanceText    string `json:"distance_text"`
	DurationText    string `json:"duration_text"`
}

func redisKey(origin, destination string) string {
	return redisKeyPrefix + origin + "|" + destination
}

func (c *RedisLegCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.redis.Get")(&err)

	if c.client == nil {
		return ports.RouteResult{}, false, errors.New("redis leg cache: client is nil")
	}

	raw, err := c.client.Get(ctx, redisKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("redis leg cache get: %w", err)
	}

	var v redisLeg
	if err := json.Unmarshal(raw, &v); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("redis leg cache decode: %w", err)
	}

	return ports.RouteResult{
		DistanceMeters:  v.DistanceMeters,
		DurationSeconds: v.DurationSeconds,
		DistanceText:    v.DistanceText,
		DurationText:    v.DurationText,
	}, true, nil
}

func (c *RedisLegCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.RouteResult,
) error {
	if c.client == nil {
		return errors.New("redis leg cache: client is nil")
	}

	raw, err := json.Marshal(redisLeg{
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		DistanceText:    r.DistanceText,
		DurationText:    r.DurationText,
	})
	if err != nil {
		return fmt.Errorf("redis leg cache encode: %w", err)
	}

	if err := c.client.Set(ctx, redisKey(origin, destination), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis leg cache set: %w", err)
	}

	return nil
}

func (c *RedisLegCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
