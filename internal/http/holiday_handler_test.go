package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"holidayapi/internal/holiday"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *holiday.Store {
	t.Helper()
	dir := t.TempDir()
	content := `{"days":[
		{"name": "National Day", "date": "2025-10-01", "isOffDay": true},
		{"name": "National Day", "date": "2025-10-11", "isOffDay": false}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.json"), []byte(content), 0o644))

	idx, err := holiday.Build(dir)
	require.NoError(t, err)

	store := holiday.NewStore()
	store.Publish(idx)
	return store
}

func TestHolidayHandler_Query(t *testing.T) {
	handler := NewHolidayHandler(testStore(t))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedType   string
	}{
		{"statutory holiday", "?date=2025-10-01", http.StatusOK, holiday.TypeStatutoryHoliday},
		{"adjusted workday", "?date=2025-10-11", http.StatusOK, holiday.TypeAdjustedWorkday},
		{"weekend rest", "?date=2025-10-12", http.StatusOK, holiday.TypeWeekendRest},
		{"working day", "?date=2025-10-13", http.StatusOK, holiday.TypeWorkingDay},
		{"malformed date", "?date=10/01/2025", http.StatusBadRequest, ""},
		{"missing date", "", http.StatusBadRequest, ""},
		{"uncovered year", "?date=2003-01-01", http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/query"+tc.query, nil)
			rec := httptest.NewRecorder()
			handler.Query(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedType == "" {
				return
			}
			var resp struct {
				Success bool                `json:"success"`
				Data    holiday.CalendarDay `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tc.expectedType, resp.Data.Classification)
		})
	}
}

func TestHolidayHandler_QueryMethodNotAllowed(t *testing.T) {
	handler := NewHolidayHandler(testStore(t))
	req := httptest.NewRequest(http.MethodPost, "/query?date=2025-10-01", nil)
	rec := httptest.NewRecorder()
	handler.Query(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHolidayHandler_QueryNotInitialized(t *testing.T) {
	handler := NewHolidayHandler(holiday.NewStore())
	req := httptest.NewRequest(http.MethodGet, "/query?date=2025-10-01", nil)
	rec := httptest.NewRecorder()
	handler.Query(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHolidayHandler_QueryBody(t *testing.T) {
	handler := NewHolidayHandler(testStore(t))

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"date":"2025-10-01"}`))
		rec := httptest.NewRecorder()
		handler.QueryBody(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data holiday.CalendarDay `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "National Day", resp.Data.Label)
		assert.True(t, resp.Data.IsOffDay)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		handler.QueryBody(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure includes details", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"date":"2025-99-99"}`))
		rec := httptest.NewRecorder()
		handler.QueryBody(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "date", resp.Error.Details[0].Field)
	})
}
