package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Slot сохраненный временной слот на дату
// Создается лениво при первом запросе даты, не удаляется и не перегенерируется
type Slot struct {
	ID            int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	IsAvailable   bool
	AppointmentID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsReserved возвращает true, если слот привязан к записи
func (s *Slot) IsReserved() bool {
	return !s.IsAvailable && s.AppointmentID != nil
}

// SlotWindow интервал [Start, End) кандидата в слоты
type SlotWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// Граничащие интервалы (10:00-10:30 и 10:30-11:00) не пересекаются
func (w SlotWindow) Overlaps(other SlotWindow) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// SlotCounts агрегат по слотам одной даты
type SlotCounts struct {
	Total     int
	Available int
}
