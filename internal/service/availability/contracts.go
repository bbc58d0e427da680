package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	CountByDateRange(ctx context.Context, from, to time.Time) (map[string]domain.SlotCounts, error)
	InsertIfAbsent(ctx context.Context, slots []domain.Slot) (int64, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]domain.Slot, error)
	Reserve(ctx context.Context, date time.Time, startTime types.TimeString, appointmentID uuid.UUID) (*domain.Slot, error)
	ReleaseByAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
}

// ScheduleSource источник расписания (часы работы и особые даты)
// Реализуется кешем расписания поверх репозиториев
type ScheduleSource interface {
	GetBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error)
	GetSpecialDates(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error)
}

// Metrics доменные метрики сервиса
type Metrics interface {
	ObserveReservation(outcome string)
	ObserveRelease(outcome string)
	ObserveGeneratedSlots(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
