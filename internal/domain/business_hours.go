package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BusinessHours расписание работы мастерской на день недели
type BusinessHours struct {
	ID         int64
	DayOfWeek  int // 0 = воскресенье ... 6 = суббота
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasBreak возвращает true, если на день задан перерыв
func (h *BusinessHours) HasBreak() bool {
	return h.BreakStart != nil && h.BreakEnd != nil &&
		!h.BreakStart.IsZero() && !h.BreakEnd.IsZero()
}

// IsValidDayOfWeek проверяет, что день недели в диапазоне 0..6
func IsValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}
