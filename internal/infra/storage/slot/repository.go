package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	tableName = "slots"

	// insertBatchSize ограничивает число строк в одном INSERT (4 параметра на строку)
	insertBatchSize = 1000
)

var selectColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"is_available",
	"appointment_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий сохраненных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountByDateRange возвращает количество всех и свободных слотов по датам диапазона
// одним агрегирующим запросом. Даты без слотов в результат не попадают
func (r *Repository) CountByDateRange(ctx context.Context, from, to time.Time) (map[string]domain.SlotCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_date",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE is_available) AS available",
	).
		From(tableName).
		Where(squirrel.GtOrEq{"slot_date": types.FormatDate(from)}).
		Where(squirrel.LtOrEq{"slot_date": types.FormatDate(to)}).
		GroupBy("slot_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]domain.SlotCounts)
	for rows.Next() {
		var (
			date time.Time
			c    domain.SlotCounts
		)
		if err := rows.Scan(&date, &c.Total, &c.Available); err != nil {
			return nil, fmt.Errorf("%w: CountByDateRange - scan row: %v", ErrScanRow, err)
		}
		counts[types.FormatDate(date)] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// InsertIfAbsent вставляет слоты, пропуская уже существующие (date, start_time)
// Конкурентные вызовы для одной даты не создают дублей благодаря уникальному ключу
// Возвращает количество реально вставленных строк
func (r *Repository) InsertIfAbsent(ctx context.Context, slots []domain.Slot) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var inserted int64
	for start := 0; start < len(slots); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		builder := psqlbuilder.Insert(tableName).
			Columns("slot_date", "start_time", "end_time", "is_available")
		for _, s := range slots[start:end] {
			builder = builder.Values(types.FormatDate(s.Date), s.StartTime, s.EndTime, true)
		}

		query, args, err := builder.
			Suffix("ON CONFLICT (slot_date, start_time) DO NOTHING").
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - execute insert: %v", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - get rows affected: %v", ErrExecQuery, err)
		}
		inserted += affected
	}

	return inserted, nil
}

// GetByDateRange возвращает слоты диапазона дат, отсортированные по дате и времени
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.GtOrEq{"slot_date": types.FormatDate(from)}).
		Where(squirrel.LtOrEq{"slot_date": types.FormatDate(to)}).
		OrderBy("slot_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan row: %v", ErrScanRow, err)
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Reserve атомарно занимает свободный слот одним условным UPDATE
// (compare-and-set по is_available = true). Из конкурентных вызовов для
// одного слота успешен ровно один, остальные получают ErrSlotNotAvailable
func (r *Repository) Reserve(ctx context.Context, date time.Time, startTime types.TimeString, appointmentID uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", false).
		Set("appointment_id", appointmentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"slot_date":    types.FormatDate(date),
			"start_time":   startTime,
			"is_available": true,
		}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// ReleaseByAppointment освобождает слот записи и убирает ссылку на неё
// Возвращает false, если слот уже освобожден или не найден
func (r *Repository) ReleaseByAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", true).
		Set("appointment_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ReleaseByAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ReleaseByAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ReleaseByAppointment - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s                    domain.Slot
		appointmentID        uuid.NullUUID
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsAvailable,
		&appointmentID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentID.Valid {
		id := appointmentID.UUID
		s.AppointmentID = &id
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
