package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Duration parses key as a time.Duration ("5s", "24h").
func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, v)
	}
	return d, nil
}

// Leg cache backends.
const (
	LegCacheSQLite   = "sqlite"
	LegCachePostgres = "postgres"
	LegCacheRedis    = "redis"
	LegCacheNone     = "none"
)

type Config struct {
	Port string

	MapsAPIKey      string
	RouteLanguage   string
	RouteLegTimeout time.Duration

	DBPath        string
	LocationsPath string

	LegCache    string
	DatabaseURL string
	RedisURL    string
	LegCacheTTL time.Duration

	GoogleClientSecretsFile string
	GoogleClientID          string
	GoogleClientSecret      string
	OAuthRedirectURL        string
}

// Load reads the service configuration from the environment.
// Call godotenv.Load first to pick up a local .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:                    Get("PORT", "8080"),
		MapsAPIKey:              Get("GOOGLE_MAPS_API_KEY", ""),
		RouteLanguage:           Get("ROUTE_LANGUAGE", "mn"),
		DBPath:                  Get("DB_PATH", "data/app.db"),
		LocationsPath:           Get("LOCATIONS_PATH", "data/user_locations.json"),
		LegCache:                strings.ToLower(Get("LEG_CACHE", LegCacheSQLite)),
		DatabaseURL:             Get("DATABASE_URL", ""),
		RedisURL:                Get("REDIS_URL", ""),
		GoogleClientSecretsFile: Get("GOOGLE_CLIENT_SECRETS_FILE", ""),
		GoogleClientID:          Get("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:      Get("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:        Get("OAUTH_REDIRECT_URL", "http://localhost:8080/api/oauth2callback"),
	}

	var err error
	if cfg.RouteLegTimeout, err = Duration("ROUTE_LEG_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LegCacheTTL, err = Duration("LEG_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.LegCache {
	case LegCacheSQLite, LegCacheNone:
	case LegCachePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: LEG_CACHE=postgres requires DATABASE_URL")
		}
	case LegCacheRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("config: LEG_CACHE=redis requires REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown LEG_CACHE %q", cfg.LegCache)
	}

	return cfg, nil
}

// OAuthConfigured reports whether enough is set to run the spreadsheet OAuth flow.
func (c Config) OAuthConfigured() bool {
	return c.GoogleClientSecretsFile != "" || (c.GoogleClientID != "" && c.GoogleClientSecret != "")
}
