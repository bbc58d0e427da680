package business_hours

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(selectColumns).
		AddRow(1, 1, "09:00:00", "17:00:00", "12:00:00", "13:00:00", true, now, now).
		AddRow(7, 0, "10:00:00", "14:00:00", nil, nil, false, now, now)

	mock.ExpectQuery(`SELECT .* FROM business_hours ORDER BY day_of_week ASC`).
		WillReturnRows(rows)

	hours, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, hours, 2)

	assert.Equal(t, types.TimeString("09:00"), hours[0].OpenTime)
	require.NotNil(t, hours[0].BreakStart)
	assert.Equal(t, types.TimeString("12:00"), *hours[0].BreakStart)
	assert.True(t, hours[0].IsActive)

	assert.Nil(t, hours[1].BreakStart)
	assert.False(t, hours[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO business_hours .* ON CONFLICT \(day_of_week\) DO UPDATE SET`).
		WithArgs(1, "09:00", "17:00", nil, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, now, now))

	saved, err := repo.Upsert(context.Background(), &domain.BusinessHours{
		DayOfWeek: 1,
		OpenTime:  "09:00",
		CloseTime: "17:00",
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
