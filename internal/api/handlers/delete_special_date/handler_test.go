package delete_special_date

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) DeleteSpecialDate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type utcLocation struct{}

func (utcLocation) Location() *time.Location { return time.UTC }

func del(svc *mockService, date string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/special-dates/{date}", NewHandler(svc, utcLocation{}, logger.Nop()).Handle).Methods(http.MethodDelete)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/special-dates/"+date, nil))
	return rec
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		err    error
		called bool
		status int
	}{
		{name: "deleted", date: "2025-01-07", called: true, status: http.StatusNoContent},
		{name: "malformed date", date: "07-01-2025", status: http.StatusBadRequest},
		{name: "not found", date: "2025-01-08", called: true, err: schedule.ErrSpecialDateNotFound, status: http.StatusNotFound},
		{name: "backend failure", date: "2025-01-07", called: true,
			err: fmt.Errorf("%w: %v", schedule.ErrInternal, errors.New("timeout")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.called {
				date, _ := time.Parse("2006-01-02", tt.date)
				svc.On("DeleteSpecialDate", mock.Anything, date).Return(tt.err)
			}

			rec := del(svc, tt.date)

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
