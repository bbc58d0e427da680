package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID, from domain.AppointmentStatus, reason string) error {
	return m.Called(ctx, id, from, reason).Error(0)
}

type mockSlots struct{ mock.Mock }

func (m *mockSlots) ReleaseSlot(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, appointmentID)
	return args.Bool(0), args.Error(1)
}

// inlineTx выполняет функцию без транзакции и запоминает результат
type inlineTx struct {
	calls   int
	lastErr error
}

func (t *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.lastErr = fn(ctx)
	return t.lastErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *mockAppointmentRepo, *mockSlots, *inlineTx) {
	repo, slots, tx := &mockAppointmentRepo{}, &mockSlots{}, &inlineTx{}
	return NewService(repo, slots, tx, nopLogger{}), repo, slots, tx
}

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		CustomerName:    "Anna",
		CustomerPhone:   "+100000000",
		Urgency:         domain.UrgencyNormal,
		Date:            time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:30",
		DurationMinutes: 30,
		Status:          status,
	}
}

func TestService_GetByID(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	appt := appointmentWithStatus(domain.AppointmentScheduled)

	repo.On("GetByID", ctx, appt.ID).Return(appt, nil)

	resp, err := svc.GetByID(ctx, appt.ID)
	require.NoError(t, err)

	assert.Equal(t, appt.ID.String(), resp.ID)
	assert.Equal(t, "2025-01-06", resp.Date)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Cancel_ReleasesSlot(t *testing.T) {
	svc, repo, slots, tx := newTestService()
	ctx := context.Background()
	appt := appointmentWithStatus(domain.AppointmentConfirmed)

	repo.On("GetByID", ctx, appt.ID).Return(appt, nil)
	repo.On("Cancel", ctx, appt.ID, domain.AppointmentConfirmed, "customer called").Return(nil)
	slots.On("ReleaseSlot", ctx, appt.ID).Return(true, nil).Once()

	err := svc.Cancel(ctx, appt.ID, &models.CancelAppointmentRequest{CancellationReason: "customer called"})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
	slots.AssertExpectations(t)
}

func TestService_Cancel_NotCancellable(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentInProgress,
		domain.AppointmentCompleted,
		domain.AppointmentCancelled,
		domain.AppointmentNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo, slots, _ := newTestService()
			appt := appointmentWithStatus(status)
			repo.On("GetByID", mock.Anything, appt.ID).Return(appt, nil)

			err := svc.Cancel(context.Background(), appt.ID, &models.CancelAppointmentRequest{})

			assert.ErrorIs(t, err, ErrCannotCancel)
			repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			slots.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Cancel_ReleaseFailureRollsBack(t *testing.T) {
	svc, repo, slots, tx := newTestService()
	appt := appointmentWithStatus(domain.AppointmentScheduled)

	repo.On("GetByID", mock.Anything, appt.ID).Return(appt, nil)
	repo.On("Cancel", mock.Anything, appt.ID, domain.AppointmentScheduled, "").Return(nil)
	slots.On("ReleaseSlot", mock.Anything, appt.ID).Return(false, errors.New("connection reset"))

	err := svc.Cancel(context.Background(), appt.ID, &models.CancelAppointmentRequest{})

	assert.ErrorIs(t, err, ErrInternal)
	// ошибка возвращена из транзакции, значит отмена будет откачена
	assert.ErrorIs(t, tx.lastErr, ErrInternal)
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	svc, repo, _, tx := newTestService()

	err := svc.Cancel(context.Background(), uuid.New(), &models.CancelAppointmentRequest{
		CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, tx.calls)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.AppointmentStatus
		next    string
		wantErr error
	}{
		{name: "confirm", current: domain.AppointmentScheduled, next: "confirmed"},
		{name: "start work", current: domain.AppointmentConfirmed, next: "in_progress"},
		{name: "complete", current: domain.AppointmentInProgress, next: "completed"},
		{name: "no show", current: domain.AppointmentConfirmed, next: "no_show"},
		{name: "reopen completed", current: domain.AppointmentCompleted, next: "in_progress", wantErr: ErrInvalidStatusTransition},
		{name: "cancel via status", current: domain.AppointmentScheduled, next: "cancelled", wantErr: ErrInvalidStatusTransition},
		{name: "unknown status", current: domain.AppointmentScheduled, next: "lost", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService()
			appt := appointmentWithStatus(tt.current)
			repo.On("GetByID", mock.Anything, appt.ID).Return(appt, nil)
			repo.On("UpdateStatus", mock.Anything, appt.ID, tt.current, domain.AppointmentStatus(tt.next)).Return(nil)

			err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: tt.next})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "UpdateStatus", mock.Anything, appt.ID, tt.current, domain.AppointmentStatus(tt.next))
		})
	}
}

func TestService_UpdateStatus_ConcurrentChange(t *testing.T) {
	svc, repo, _, _ := newTestService()
	appt := appointmentWithStatus(domain.AppointmentScheduled)

	// статус прочитан как scheduled, но до записи запись успели отменить
	repo.On("GetByID", mock.Anything, appt.ID).Return(appt, nil)
	repo.On("UpdateStatus", mock.Anything, appt.ID, domain.AppointmentScheduled, domain.AppointmentConfirmed).
		Return(appointmentRepo.ErrStatusChanged)

	err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_Cancel_ConcurrentChange(t *testing.T) {
	svc, repo, slots, tx := newTestService()
	appt := appointmentWithStatus(domain.AppointmentConfirmed)

	repo.On("GetByID", mock.Anything, appt.ID).Return(appt, nil)
	repo.On("Cancel", mock.Anything, appt.ID, domain.AppointmentConfirmed, "").
		Return(appointmentRepo.ErrStatusChanged)

	err := svc.Cancel(context.Background(), appt.ID, &models.CancelAppointmentRequest{})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.ErrorIs(t, tx.lastErr, ErrCannotCancel)
	slots.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything)
}

func TestService_ListByDateRange(t *testing.T) {
	svc, repo, _, _ := newTestService()
	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	repo.On("GetByDateRange", mock.Anything, from, to).
		Return([]*domain.Appointment{appointmentWithStatus(domain.AppointmentScheduled)}, nil)

	resp, err := svc.ListByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.ListByDateRange(context.Background(), to, from)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByDateRange(context.Background(), from, from.AddDate(1, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
