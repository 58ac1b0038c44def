package main

import (
	"context"
	"log"
	"strings"
	"time"
	"travel-time-service/internal/adapters/cache"
	"travel-time-service/internal/config"
	"travel-time-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool prepares the shared Postgres leg cache used with LEG_CACHE=postgres.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Initializing leg cache schema...")
	if err := cache.NewSQLLegCache(conn, 0).InitSchema(ctx); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
