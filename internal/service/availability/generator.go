package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Источники расписания дня
const (
	sourceWeekday      = "weekday"
	sourceSpecialHours = "special_hours"
	sourceInactive     = "inactive"
	sourceMissing      = "missing"
)

// ResolveEffectiveHours возвращает фактические часы работы на дату
// Приоритет: special_hours > holiday/closure > расписание дня недели
// hours - расписание на день недели даты (nil, если строки нет),
// special - особая дата (nil, если дата обычная)
func ResolveEffectiveHours(hours *domain.BusinessHours, special *domain.SpecialDate) domain.EffectiveHours {
	if special != nil {
		if special.HasCustomHours() {
			return domain.EffectiveHours{
				IsOpen: special.OpenTime.IsBefore(*special.CloseTime),
				Open:   domain.SlotWindow{Start: *special.OpenTime, End: *special.CloseTime},
				Source: sourceSpecialHours,
			}
		}
		if special.ClosesDay() {
			return domain.EffectiveHours{IsOpen: false, Source: string(special.Type)}
		}
	}

	if hours == nil {
		return domain.EffectiveHours{IsOpen: false, Source: sourceMissing}
	}
	if !hours.IsActive {
		return domain.EffectiveHours{IsOpen: false, Source: sourceInactive}
	}

	eff := domain.EffectiveHours{
		IsOpen: hours.OpenTime.IsBefore(hours.CloseTime),
		Open:   domain.SlotWindow{Start: hours.OpenTime, End: hours.CloseTime},
		Source: sourceWeekday,
	}
	if hours.HasBreak() && hours.BreakStart.IsBefore(*hours.BreakEnd) {
		eff.Break = &domain.SlotWindow{Start: *hours.BreakStart, End: *hours.BreakEnd}
	}

	return eff
}

// GenerateSlots генерирует окна слотов на день
// Слоты идут с начала работы с шагом durationMinutes,
// слот, пересекающийся с перерывом, пропускается,
// неполный последний слот отбрасывается
func GenerateSlots(hours domain.EffectiveHours, durationMinutes int) []domain.SlotWindow {
	if !hours.IsOpen || durationMinutes <= 0 {
		return []domain.SlotWindow{}
	}

	result := make([]domain.SlotWindow, 0)
	current := hours.Open.Start

	for current.IsBefore(hours.Open.End) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// конец слота за пределами суток
			break
		}
		if end.IsAfter(hours.Open.End) {
			break
		}

		window := domain.SlotWindow{Start: current, End: end}
		// Граничащие с перерывом слоты (11:30-12:00 при перерыве 12:00-13:00) допустимы
		if hours.Break == nil || !window.Overlaps(*hours.Break) {
			result = append(result, window)
		}

		current = end
	}

	return result
}

// daySchedule расписание на диапазон дат, прочитанное один раз
type daySchedule struct {
	byWeekday map[int]*domain.BusinessHours
	special   map[string]*domain.SpecialDate
}

func newDaySchedule(hours []*domain.BusinessHours, specials []*domain.SpecialDate) *daySchedule {
	s := &daySchedule{
		byWeekday: make(map[int]*domain.BusinessHours, len(hours)),
		special:   make(map[string]*domain.SpecialDate, len(specials)),
	}
	for _, h := range hours {
		s.byWeekday[h.DayOfWeek] = h
	}
	for _, sd := range specials {
		s.special[types.FormatDate(sd.Date)] = sd
	}
	return s
}

func (s *daySchedule) effective(date time.Time) domain.EffectiveHours {
	return ResolveEffectiveHours(s.byWeekday[int(date.Weekday())], s.special[types.FormatDate(date)])
}

func (s *daySchedule) specialDate(date time.Time) *domain.SpecialDate {
	return s.special[types.FormatDate(date)]
}

// buildSlots превращает окна в строки слотов для вставки
func buildSlots(date time.Time, windows []domain.SlotWindow) []domain.Slot {
	slots := make([]domain.Slot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, domain.Slot{
			Date:        date,
			StartTime:   w.Start,
			EndTime:     w.End,
			IsAvailable: true,
		})
	}
	return slots
}
