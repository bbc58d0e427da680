package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BusinessHoursRepository источник расписания по дням недели
type BusinessHoursRepository interface {
	GetAll(ctx context.Context) ([]*domain.BusinessHours, error)
}

// SpecialDateRepository источник особых дат
type SpecialDateRepository interface {
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error)
}

// Metrics метрики попаданий в кеш
type Metrics interface {
	ObserveCache(kind string, hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
