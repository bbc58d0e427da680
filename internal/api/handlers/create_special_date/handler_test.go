package create_special_date

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) CreateSpecialDate(ctx context.Context, req *models.CreateSpecialDateRequest) (*models.SpecialDateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialDateResponse), args.Error(1)
}

func post(svc *mockService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/special-dates", strings.NewReader(body)))
	return rec
}

func TestHandler_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateSpecialDate", mock.Anything, mock.MatchedBy(func(req *models.CreateSpecialDateRequest) bool {
		return req.Date == "2025-01-07" && req.Type == "holiday"
	})).Return(&models.SpecialDateResponse{ID: 3, Date: "2025-01-07", Type: "holiday"}, nil)

	rec := post(svc, `{"date":"2025-01-07","type":"holiday","name":"Рождество"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.SpecialDateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `not json`, status: http.StatusBadRequest},
		{name: "validation from service", body: `{"date":"2025-01-07","type":"vacation"}`,
			err: fmt.Errorf("%w: unknown type", schedule.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "date already taken", body: `{"date":"2025-01-07","type":"closure"}`,
			err: schedule.ErrSpecialDateExists, status: http.StatusConflict},
		{name: "backend failure", body: `{"date":"2025-01-07","type":"closure"}`,
			err: fmt.Errorf("%w: %v", schedule.ErrInternal, errors.New("timeout")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("CreateSpecialDate", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := post(svc, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}
