package get_date_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetDateAvailability(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayAvailability), args.Error(1)
}

func (m *mockService) Location() *time.Location { return time.UTC }

func newRouter(svc *mockService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/availability/dates/{date}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)
	return r
}

func get(r http.Handler, date string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability/dates/"+date, nil))
	return rec
}

func TestHandler_OpenDay(t *testing.T) {
	svc := &mockService{}
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	svc.On("GetDateAvailability", mock.Anything, date).Return(&domain.DayAvailability{
		Date:   date,
		IsOpen: true,
		Slots: []domain.Slot{
			{Date: date, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:30"), IsAvailable: true},
			{Date: date, StartTime: types.MustTimeString("09:30"), EndTime: types.MustTimeString("10:00"), IsAvailable: false},
		},
	}, nil)

	rec := get(newRouter(svc), "2025-01-06")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp views.DayAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsOpen)
	assert.Equal(t, 1, resp.AvailableSlots)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
}

func TestHandler_ClosedDayHasEmptySlots(t *testing.T) {
	svc := &mockService{}
	svc.On("GetDateAvailability", mock.Anything, mock.Anything).
		Return(&domain.DayAvailability{Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)}, nil)

	rec := get(newRouter(svc), "2025-01-05")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
	assert.Contains(t, rec.Body.String(), `"isOpen":false`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		err    error
		status int
		field  string
	}{
		{name: "malformed date", date: "2025-13-01", status: http.StatusBadRequest, field: "date"},
		{name: "validation from service", date: "2025-01-06",
			err: &availability.ValidationError{Field: "date", Reason: "too far ahead"}, status: http.StatusBadRequest, field: "date"},
		{name: "backend failure", date: "2025-01-06",
			err: fmt.Errorf("%w: %v", availability.ErrInternal, errors.New("timeout")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("GetDateAvailability", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := get(newRouter(svc), tt.date)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}
