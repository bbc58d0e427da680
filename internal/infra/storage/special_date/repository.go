package special_date

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	tableName = "special_dates"

	// код ошибки postgres unique_violation
	uniqueViolationCode = "23505"
)

var selectColumns = []string{
	"id",
	"special_date",
	"type",
	"name",
	"notes",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий особых дат (праздники, закрытия, особые часы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDateRange возвращает особые даты в диапазоне [from, to] одним запросом
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.GtOrEq{"special_date": types.FormatDate(from)}).
		Where(squirrel.LtOrEq{"special_date": types.FormatDate(to)}).
		OrderBy("special_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SpecialDate, 0)
	for rows.Next() {
		sd, err := scanSpecialDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan row: %v", ErrScanRow, err)
		}
		result = append(result, sd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Create создает особую дату
// Повторная дата возвращает ErrDuplicateDate
func (r *Repository) Create(ctx context.Context, sd *domain.SpecialDate) (*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"special_date",
			"type",
			"name",
			"notes",
			"open_time",
			"close_time",
		).
		Values(
			types.FormatDate(sd.Date),
			sd.Type,
			sd.Name,
			sd.Notes,
			sd.OpenTime,
			sd.CloseTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sd.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateDate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sd.CreatedAt = createdAt.Time
	sd.UpdatedAt = updatedAt.Time

	return sd, nil
}

// Delete удаляет особую дату
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"special_date": types.FormatDate(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialDateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpecialDate(row rowScanner) (*domain.SpecialDate, error) {
	var (
		sd                   domain.SpecialDate
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&sd.ID,
		&sd.Date,
		&sd.Type,
		&sd.Name,
		&sd.Notes,
		&sd.OpenTime,
		&sd.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sd.CreatedAt = createdAt.Time
	sd.UpdatedAt = updatedAt.Time

	return &sd, nil
}
