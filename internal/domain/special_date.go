package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SpecialDateType тип особой даты
type SpecialDateType string

const (
	SpecialDateHoliday      SpecialDateType = "holiday"
	SpecialDateClosure      SpecialDateType = "closure"
	SpecialDateSpecialHours SpecialDateType = "special_hours"
)

// IsValid проверяет, что тип известен
func (t SpecialDateType) IsValid() bool {
	switch t {
	case SpecialDateHoliday, SpecialDateClosure, SpecialDateSpecialHours:
		return true
	default:
		return false
	}
}

// SpecialDate переопределение расписания на конкретную дату
// holiday и closure закрывают день целиком,
// special_hours заменяет часы работы дня недели своими OpenTime/CloseTime
type SpecialDate struct {
	ID        int64
	Date      time.Time
	Type      SpecialDateType
	Name      *string
	Notes     *string
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClosesDay возвращает true для праздников и закрытий
func (s *SpecialDate) ClosesDay() bool {
	return s.Type == SpecialDateHoliday || s.Type == SpecialDateClosure
}

// HasCustomHours возвращает true, если дата задает собственные часы работы
func (s *SpecialDate) HasCustomHours() bool {
	return s.Type == SpecialDateSpecialHours &&
		s.OpenTime != nil && s.CloseTime != nil &&
		!s.OpenTime.IsZero() && !s.CloseTime.IsZero()
}
