package api

import (
	"net/http"
	"time"
	"travel-time-service/internal/api/handlers"
	"travel-time-service/internal/ports"
	"travel-time-service/internal/session"
)

// Deps are the adapters the HTTP layer runs on. Optional ports may be nil:
// PlaceSearcher without a maps key, Auth and Exporter without an OAuth client,
// History when calculations should not be recorded.
type Deps struct {
	Provider   ports.RoutingProvider
	LegTimeout time.Duration

	PlaceSearcher ports.PlaceSearcher
	Locations     ports.LocationStore
	History       ports.HistoryRepository

	Auth     ports.Authenticator
	Exporter ports.SpreadsheetExporter
	Sessions *session.Store

	DB handlers.Pinger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	sessions := d.Sessions
	if sessions == nil {
		sessions = session.NewStore()
	}

	health := &handlers.HealthHandler{DB: d.DB}
	travel := &handlers.TravelHandler{
		Provider:   d.Provider,
		LegTimeout: d.LegTimeout,
		History:    d.History,
	}
	places := &handlers.PlacesHandler{Searcher: d.PlaceSearcher}
	locations := &handlers.LocationsHandler{Store: d.Locations}
	sheets := &handlers.SheetsHandler{
		Auth:     d.Auth,
		Exporter: d.Exporter,
		Sessions: sessions,
	}

	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /api/calculate-travel-time", travel.CalculateTravelTime)
	mux.HandleFunc("POST /api/calculate-time-loss", travel.CalculateTimeLoss)
	mux.HandleFunc("POST /api/search-places", places.Search)

	if d.Locations != nil {
		mux.HandleFunc("POST /api/save-locations", locations.Save)
		mux.HandleFunc("GET /api/load-locations", locations.Load)
	}

	mux.HandleFunc("GET /api/auth-google", sheets.AuthGoogle)
	mux.HandleFunc("GET /api/oauth2callback", sheets.OAuthCallback)
	mux.HandleFunc("GET /api/check-auth", sheets.CheckAuth)
	mux.HandleFunc("POST /api/create-spreadsheet", sheets.CreateSpreadsheet)
	mux.HandleFunc("POST /api/save-to-sheets", sheets.SaveToSheets)
	mux.HandleFunc("GET /api/get-spreadsheet-url", sheets.GetSpreadsheetURL)
	mux.HandleFunc("POST /api/logout", sheets.Logout)

	if d.History != nil {
		admin := &handlers.AdminHandler{History: d.History}
		mux.HandleFunc("GET /api/admin/search-history", admin.ListHistory)
		mux.HandleFunc("DELETE /api/admin/search-history/{id}", admin.DeleteHistory)
		mux.HandleFunc("GET /api/admin/statistics", admin.Statistics)
		mux.HandleFunc("GET /api/admin/export-excel", admin.Export)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
