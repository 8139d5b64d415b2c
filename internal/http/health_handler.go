package http

import (
	"net/http"

	"holidayapi/internal/holiday"
)

// HealthHandler reports liveness and readiness. The service is ready
// once a non-empty calendar index is being served.
type HealthHandler struct {
	store *holiday.Store
}

func NewHealthHandler(store *holiday.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		http.Error(w, "calendar data not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
