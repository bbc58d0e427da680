package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BusinessHoursRepository интерфейс репозитория расписания по дням недели
type BusinessHoursRepository interface {
	GetAll(ctx context.Context) ([]*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error)
}

// SpecialDateRepository интерфейс репозитория особых дат
type SpecialDateRepository interface {
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error)
	Create(ctx context.Context, sd *domain.SpecialDate) (*domain.SpecialDate, error)
	Delete(ctx context.Context, date time.Time) error
}

// Cache кеш расписания, сбрасываемый после изменений
type Cache interface {
	InvalidateBusinessHours(ctx context.Context)
	InvalidateSpecialDate(ctx context.Context, date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
