package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
	"travel-time-service/internal/adapters/cache"
	"travel-time-service/internal/adapters/distance"
	"travel-time-service/internal/adapters/places"
	"travel-time-service/internal/adapters/repositories"
	"travel-time-service/internal/adapters/sheets"
	"travel-time-service/internal/adapters/storage"
	"travel-time-service/internal/api"
	"travel-time-service/internal/config"
	"travel-time-service/internal/platform/db"
	"travel-time-service/internal/ports"
	"travel-time-service/internal/session"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Google Maps, Sheets) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}

	legCache, closeCache, err := openLegCache(cfg, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache.Close()

	deps := api.Deps{
		Provider:   distance.OfflineProvider{},
		LegTimeout: cfg.RouteLegTimeout,
		Locations:  storage.NewJSONLocationStore(cfg.LocationsPath),
		History:    repositories.NewSqliteHistoryRepository(sqliteDB),
		Sessions:   session.NewStore(),
		DB:         sqliteDB,
	}

	if cfg.MapsAPIKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY not set: every leg uses the fallback estimate and place search is disabled")
	} else {
		provider, err := distance.NewGoogleDistanceProvider(cfg.MapsAPIKey, cfg.RouteLanguage, legCache)
		if err != nil {
			log.Fatal(err)
		}
		searcher, err := places.NewGooglePlaceSearcher(provider.Client(), cfg.RouteLanguage)
		if err != nil {
			log.Fatal(err)
		}
		deps.Provider = provider
		deps.PlaceSearcher = searcher
	}

	if oauthCfg, err := oauthConfig(cfg); err != nil {
		log.Fatal(err)
	} else if oauthCfg == nil {
		log.Println("Google OAuth client not configured: spreadsheet export is disabled")
	} else {
		deps.Auth = sheets.NewOAuthFlow(oauthCfg)
		deps.Exporter = sheets.NewGoogleSheetsExporter(oauthCfg)
	}

	router := api.NewRouter(deps)

	// Write timeout covers six concurrent legs plus a spreadsheet round trip.
	log.Printf("Server listening addr=:%s leg_cache=%s", cfg.Port, cfg.LegCache)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLegCache selects the leg cache backend. The returned closer releases
// any connection opened here.
func openLegCache(cfg config.Config, sqliteDB *sql.DB) (ports.LegCache, io.Closer, error) {
	switch cfg.LegCache {
	case config.LegCacheNone:
		return nil, nopCloser{}, nil

	case config.LegCachePostgres:
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open leg cache: %w", err)
		}
		c := cache.NewSQLLegCache(pg, cfg.LegCacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.InitSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("open leg cache: %w", err)
		}
		return c, pg, nil

	case config.LegCacheRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := cache.NewRedisLegCacheFromURL(ctx, cfg.RedisURL, cfg.LegCacheTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("open leg cache: %w", err)
		}
		return c, c, nil

	default:
		return cache.NewSqliteLegCache(sqliteDB, cfg.LegCacheTTL), nopCloser{}, nil
	}
}

// oauthConfig returns nil when no OAuth client is configured.
func oauthConfig(cfg config.Config) (*oauth2.Config, error) {
	switch {
	case cfg.GoogleClientSecretsFile != "":
		return sheets.NewOAuthConfigFromFile(cfg.GoogleClientSecretsFile, cfg.OAuthRedirectURL)
	case cfg.OAuthConfigured():
		return sheets.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	default:
		return nil, nil
	}
}
