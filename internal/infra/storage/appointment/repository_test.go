package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func appointmentRow(id uuid.UUID, status string) *sqlmock.Rows {
	created := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(selectColumns).AddRow(
		id.String(), "Anna", "+15550102030", nil, "laptop", nil, "normal",
		time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), "09:30:00", 30, status, nil, nil, nil,
		created, created,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

	appt := &domain.Appointment{
		CustomerName:    "Anna",
		CustomerPhone:   "+15550102030",
		Urgency:         domain.UrgencyNormal,
		Date:            time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:30",
		DurationMinutes: 30,
		Status:          domain.AppointmentScheduled,
	}

	mock.ExpectQuery(`INSERT INTO appointments \(id,customer_name,.*\) VALUES .* RETURNING created_at, updated_at`).
		WithArgs(sqlmock.AnyArg(), "Anna", "+15550102030", nil, nil, nil,
			"normal", "2025-01-06", "09:30", 30, "scheduled", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), appt)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(appointmentRow(id, "confirmed"))

	appt, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, appt.ID)
	assert.Equal(t, domain.AppointmentConfirmed, appt.Status)
	assert.Equal(t, "09:30", appt.StartTime.String())
	require.NotNil(t, appt.DeviceType)
	assert.Equal(t, "laptop", *appt.DeviceType)
	assert.Nil(t, appt.CustomerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByDateRange_SkipsInactive(t *testing.T) {
	repo, mock := newMockRepo(t)
	from := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE appointment_date >= \$1 AND appointment_date <= \$2 AND status NOT IN \(\$3,\$4\) ORDER BY appointment_date ASC, start_time ASC`).
		WithArgs("2025-01-06", "2025-01-12", "cancelled", "no_show").
		WillReturnRows(appointmentRow(uuid.New(), "scheduled"))

	list, err := repo.GetByDateRange(context.Background(), from, from.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	id := uuid.New()

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("completed", id, "in_progress").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), id, domain.AppointmentInProgress, domain.AppointmentCompleted)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("confirmed", id, "scheduled").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, domain.AppointmentScheduled, domain.AppointmentConfirmed)
		assert.ErrorIs(t, err, ErrStatusChanged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Cancel(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE appointments SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
		WithArgs("cancelled", "customer called", id, "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), id, domain.AppointmentConfirmed, "customer called"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_StatusChanged(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE appointments SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
		WithArgs("cancelled", "", id, "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), id, domain.AppointmentScheduled, "")
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}
