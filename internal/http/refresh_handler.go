package http

import (
	"context"
	"net/http"
	"strings"

	"holidayapi/internal/auth"
	"holidayapi/internal/ingest"
)

// Refresher runs one refresh cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (*ingest.Run, error)
}

// RefreshHandler exposes the refresh cycle over HTTP. Forced refreshes
// re-download every yearly file, so they sit behind the operator token
// gate when one is configured.
type RefreshHandler struct {
	svc  Refresher
	gate *auth.TokenGate
}

func NewRefreshHandler(svc Refresher, gate *auth.TokenGate) *RefreshHandler {
	return &RefreshHandler{svc: svc, gate: gate}
}

// Refresh handles POST /api/refresh?force=true|false.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	force := r.URL.Query().Get("force") == "true"
	if force {
		if err := h.gate.Verify(bearerToken(r)); err != nil {
			JSONError(w, http.StatusUnauthorized, "unauthorized", "Forced refresh requires a valid operator token", nil)
			return
		}
	}

	run, err := h.svc.Refresh(r.Context(), force)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "refresh_failed", err.Error(), nil)
		return
	}
	JSONSuccess(w, run, nil)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
