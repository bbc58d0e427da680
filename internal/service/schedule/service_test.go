package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	specialDateRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/special_date"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockHoursRepo struct{ mock.Mock }

func (m *mockHoursRepo) GetAll(ctx context.Context) ([]*domain.BusinessHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BusinessHours), args.Error(1)
}

func (m *mockHoursRepo) Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error) {
	args := m.Called(ctx, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessHours), args.Error(1)
}

type mockSpecialRepo struct{ mock.Mock }

func (m *mockSpecialRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SpecialDate), args.Error(1)
}

func (m *mockSpecialRepo) Create(ctx context.Context, sd *domain.SpecialDate) (*domain.SpecialDate, error) {
	args := m.Called(ctx, sd)
	if fn, ok := args.Get(0).(func(context.Context, *domain.SpecialDate) *domain.SpecialDate); ok {
		return fn(ctx, sd), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpecialDate), args.Error(1)
}

func (m *mockSpecialRepo) Delete(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) InvalidateBusinessHours(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockCache) InvalidateSpecialDate(ctx context.Context, date time.Time) {
	m.Called(ctx, types.FormatDate(date))
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *mockHoursRepo, *mockSpecialRepo, *mockCache) {
	hours, special, cache := &mockHoursRepo{}, &mockSpecialRepo{}, &mockCache{}
	return NewService(hours, special, cache, time.UTC, nopLogger{}), hours, special, cache
}

func TestService_UpsertBusinessHours(t *testing.T) {
	svc, hoursRepo, _, cache := newTestService()
	ctx := context.Background()

	hoursRepo.On("Upsert", ctx, mock.MatchedBy(func(h *domain.BusinessHours) bool {
		return h.DayOfWeek == 1 && h.OpenTime == "09:00" && h.CloseTime == "17:00" &&
			h.BreakStart != nil && *h.BreakStart == "12:00" && h.IsActive
	})).Return(&domain.BusinessHours{
		ID: 3, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00", IsActive: true,
	}, nil)
	cache.On("InvalidateBusinessHours", ctx).Once()

	resp, err := svc.UpsertBusinessHours(ctx, &models.UpsertBusinessHoursRequest{
		DayOfWeek:  1,
		OpenTime:   "09:00:00",
		CloseTime:  "17:00",
		BreakStart: ptr.Ptr("12:00"),
		BreakEnd:   ptr.Ptr("13:00:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.ID)
	hoursRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_UpsertBusinessHours_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertBusinessHoursRequest
	}{
		{name: "day out of range", req: models.UpsertBusinessHoursRequest{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "17:00"}},
		{name: "bad open time", req: models.UpsertBusinessHoursRequest{DayOfWeek: 1, OpenTime: "9am", CloseTime: "17:00"}},
		{name: "open after close", req: models.UpsertBusinessHoursRequest{DayOfWeek: 1, OpenTime: "18:00", CloseTime: "17:00"}},
		{name: "half break", req: models.UpsertBusinessHoursRequest{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00", BreakStart: ptr.Ptr("12:00")}},
		{name: "inverted break", req: models.UpsertBusinessHoursRequest{
			DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00",
			BreakStart: ptr.Ptr("13:00"), BreakEnd: ptr.Ptr("12:00"),
		}},
		{name: "break outside hours", req: models.UpsertBusinessHoursRequest{
			DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00",
			BreakStart: ptr.Ptr("16:30"), BreakEnd: ptr.Ptr("17:30"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, hoursRepo, _, cache := newTestService()

			_, err := svc.UpsertBusinessHours(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			hoursRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			cache.AssertNotCalled(t, "InvalidateBusinessHours", mock.Anything)
		})
	}
}

func TestService_CreateSpecialDate(t *testing.T) {
	svc, _, specialRepo, cache := newTestService()
	ctx := context.Background()

	specialRepo.On("Create", ctx, mock.MatchedBy(func(sd *domain.SpecialDate) bool {
		return types.FormatDate(sd.Date) == "2025-01-06" &&
			sd.Type == domain.SpecialDateSpecialHours &&
			*sd.OpenTime == "10:00" && *sd.CloseTime == "14:00"
	})).Return(func(_ context.Context, sd *domain.SpecialDate) *domain.SpecialDate {
		sd.ID = 11
		return sd
	}, nil)
	cache.On("InvalidateSpecialDate", ctx, "2025-01-06").Once()

	resp, err := svc.CreateSpecialDate(ctx, &models.CreateSpecialDateRequest{
		Date:      "2025-01-06",
		Type:      "special_hours",
		Name:      ptr.Ptr("Short day"),
		OpenTime:  ptr.Ptr("10:00"),
		CloseTime: ptr.Ptr("14:00:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "2025-01-06", resp.Date)
	cache.AssertExpectations(t)
}

func TestService_CreateSpecialDate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateSpecialDateRequest
	}{
		{name: "bad date", req: models.CreateSpecialDateRequest{Date: "06.01.2025", Type: "holiday"}},
		{name: "unknown type", req: models.CreateSpecialDateRequest{Date: "2025-01-06", Type: "vacation"}},
		{name: "holiday with hours", req: models.CreateSpecialDateRequest{
			Date: "2025-01-06", Type: "holiday", OpenTime: ptr.Ptr("10:00"), CloseTime: ptr.Ptr("12:00"),
		}},
		{name: "special hours without hours", req: models.CreateSpecialDateRequest{Date: "2025-01-06", Type: "special_hours"}},
		{name: "special hours inverted", req: models.CreateSpecialDateRequest{
			Date: "2025-01-06", Type: "special_hours", OpenTime: ptr.Ptr("14:00"), CloseTime: ptr.Ptr("10:00"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, specialRepo, _ := newTestService()

			_, err := svc.CreateSpecialDate(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			specialRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateSpecialDate_Duplicate(t *testing.T) {
	svc, _, specialRepo, cache := newTestService()
	ctx := context.Background()

	specialRepo.On("Create", ctx, mock.Anything).Return(nil, specialDateRepo.ErrDuplicateDate)

	_, err := svc.CreateSpecialDate(ctx, &models.CreateSpecialDateRequest{Date: "2025-01-06", Type: "holiday"})

	assert.ErrorIs(t, err, ErrSpecialDateExists)
	cache.AssertNotCalled(t, "InvalidateSpecialDate", mock.Anything, mock.Anything)
}

func TestService_DeleteSpecialDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	t.Run("deleted", func(t *testing.T) {
		svc, _, specialRepo, cache := newTestService()
		specialRepo.On("Delete", ctx, date).Return(nil)
		cache.On("InvalidateSpecialDate", ctx, "2025-01-06").Once()

		require.NoError(t, svc.DeleteSpecialDate(ctx, date))
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, specialRepo, _ := newTestService()
		specialRepo.On("Delete", ctx, date).Return(specialDateRepo.ErrSpecialDateNotFound)

		assert.ErrorIs(t, svc.DeleteSpecialDate(ctx, date), ErrSpecialDateNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, _, specialRepo, _ := newTestService()
		specialRepo.On("Delete", ctx, date).Return(errors.New("connection reset"))

		assert.ErrorIs(t, svc.DeleteSpecialDate(ctx, date), ErrInternal)
	})
}

func TestService_ListSpecialDates_RangeValidation(t *testing.T) {
	svc, _, specialRepo, _ := newTestService()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListSpecialDates(context.Background(), from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListSpecialDates(context.Background(), from, from.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	specialRepo.AssertNotCalled(t, "GetByDateRange", mock.Anything, mock.Anything, mock.Anything)
}
