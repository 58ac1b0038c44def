package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and, when DB is set, whether the history
// database answers.
type HealthHandler struct {
	DB Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	if h.DB == nil {
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		log.Printf("health db ping failed: %v", err)
		res["status"] = "degraded"
		res["db"] = "unavailable"
		writeJSON(w, r, http.StatusServiceUnavailable, res)
		return
	}

	res["db"] = "ok"
	writeJSON(w, r, http.StatusOK, res)
}
