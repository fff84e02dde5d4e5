// Package api provides the ops HTTP surface: a heartbeat and a small status
// report. It serves operators, not chat users.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/forgebot/internal/history"
	"github.com/ashureev/forgebot/internal/template"
)

// StatusHandler reports process uptime and catalog/deploy counters.
type StatusHandler struct {
	startedAt time.Time
	catalog   *template.Catalog
	ledger    *history.Ledger
}

// NewStatusHandler creates a status handler anchored at the current time.
func NewStatusHandler(catalog *template.Catalog, ledger *history.Ledger) *StatusHandler {
	return &StatusHandler{
		startedAt: time.Now(),
		catalog:   catalog,
		ledger:    ledger,
	}
}

// RegisterRoutes mounts the status endpoint.
func (h *StatusHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.status)
}

func (h *StatusHandler) status(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"templates":      h.catalog.Count(),
		"deploys_total":  h.ledger.Total(),
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}
