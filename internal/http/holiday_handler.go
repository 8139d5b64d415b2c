package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"holidayapi/internal/holiday"
)

// HolidayHandler serves date classification lookups from the published
// calendar index. Lookups never touch the network.
type HolidayHandler struct {
	store *holiday.Store
}

func NewHolidayHandler(store *holiday.Store) *HolidayHandler {
	return &HolidayHandler{store: store}
}

// Query handles GET /query?date=YYYY-MM-DD.
func (h *HolidayHandler) Query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.respond(w, r.URL.Query().Get("date"))
}

type queryRequest struct {
	Date string `json:"date" validate:"required,calendardate"`
}

// QueryBody handles POST /api/query with a JSON body.
func (h *HolidayHandler) QueryBody(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON", nil)
		return
	}
	if verrs := ValidateStruct(req); verrs != nil {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, ve := range verrs {
			details = append(details, ErrorDetail{Field: ve.Field, Message: ve.Message})
		}
		JSONError(w, http.StatusBadRequest, "validation_failed", "Invalid query", details)
		return
	}
	h.respond(w, req.Date)
}

func (h *HolidayHandler) respond(w http.ResponseWriter, date string) {
	day, err := h.store.Query(date)
	if err != nil {
		status, code := queryErrorStatus(err)
		JSONError(w, status, code, err.Error(), nil)
		return
	}
	JSONSuccess(w, day, nil)
}

// queryErrorStatus maps the store's error kinds onto HTTP statuses.
func queryErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, holiday.ErrInvalidDate):
		return http.StatusBadRequest, "invalid_date"
	case errors.Is(err, holiday.ErrNotFound):
		return http.StatusNotFound, "date_not_covered"
	case errors.Is(err, holiday.ErrNotInitialized):
		return http.StatusServiceUnavailable, "not_initialized"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
