package check_slot_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) IsSlotAvailable(ctx context.Context, date time.Time, timeStr string, durationMinutes int) (bool, error) {
	args := m.Called(ctx, date, timeStr, durationMinutes)
	return args.Bool(0), args.Error(1)
}

func (m *mockService) SlotDuration() int { return 45 }

func (m *mockService) Location() *time.Location { return time.UTC }

func get(svc *mockService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability/check"+query, nil))
	return rec
}

func TestHandler_Check(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	t.Run("explicit duration", func(t *testing.T) {
		svc := &mockService{}
		svc.On("IsSlotAvailable", mock.Anything, date, "09:00:00", 90).Return(true, nil)

		rec := get(svc, "?date=2025-01-06&time=09:00:00&duration=90")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CheckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2025-01-06", resp.Date)
		assert.Equal(t, "09:00", resp.Time)
		assert.Equal(t, 90, resp.DurationMinutes)
		assert.True(t, resp.Available)
	})

	t.Run("without duration the configured slot length is reported", func(t *testing.T) {
		svc := &mockService{}
		svc.On("IsSlotAvailable", mock.Anything, date, "10:00", 45).Return(false, nil)

		rec := get(svc, "?date=2025-01-06&time=10:00")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CheckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 45, resp.DurationMinutes)
		assert.False(t, resp.Available)
		assert.Contains(t, rec.Body.String(), `"durationMinutes":45`)
		svc.AssertExpectations(t)
	})
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
		field  string
	}{
		{name: "missing date", query: "?time=09:00", status: http.StatusBadRequest, field: "date"},
		{name: "malformed date", query: "?date=2025/01/06&time=09:00", status: http.StatusBadRequest, field: "date"},
		{name: "missing time", query: "?date=2025-01-06", status: http.StatusBadRequest, field: "time"},
		{name: "duration is not a number", query: "?date=2025-01-06&time=09:00&duration=long", status: http.StatusBadRequest, field: "duration"},
		{name: "time rejected by service", query: "?date=2025-01-06&time=25:00",
			err: &availability.ValidationError{Field: "time", Reason: "invalid time"}, status: http.StatusBadRequest, field: "time"},
		{name: "backend failure", query: "?date=2025-01-06&time=09:00",
			err: fmt.Errorf("%w: %v", availability.ErrInternal, errors.New("timeout")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("IsSlotAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, tt.err)
			}

			rec := get(svc, tt.query)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}
