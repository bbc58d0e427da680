package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// rangeView расписание, счетчики и (опционально) слоты диапазона дат
type rangeView struct {
	schedule *daySchedule
	counts   map[string]domain.SlotCounts
	slots    map[string][]domain.Slot // nil, если слоты не запрашивались
	// horizon последняя дата, открытая для бронирования
	horizon time.Time
}

// loadRange гарантирует наличие слотов на открытые дни диапазона и читает их состояние
// Количество запросов не зависит от длины диапазона:
// часы работы, особые даты, агрегат по слотам, одна пакетная вставка недостающих
// и повторное чтение после вставки
func (s *Service) loadRange(ctx context.Context, from, to time.Time, withSlots bool) (*rangeView, error) {
	hours, err := s.schedule.GetBusinessHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRange - get business hours: %v", ErrInternal, err)
	}

	specials, err := s.schedule.GetSpecialDates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRange - get special dates: %v", ErrInternal, err)
	}

	view := &rangeView{
		schedule: newDaySchedule(hours, specials),
		horizon:  s.horizon(s.Today()),
	}

	view.counts, err = s.slotRepo.CountByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: loadRange - count slots: %v", ErrInternal, err)
	}

	generated, err := s.generateMissing(ctx, from, to, view)
	if err != nil {
		return nil, err
	}

	if withSlots {
		slots, err := s.slotRepo.GetByDateRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: loadRange - get slots: %v", ErrInternal, err)
		}
		view.slots = groupByDate(slots)
		view.counts = countSlots(view.slots)
		return view, nil
	}

	if generated {
		view.counts, err = s.slotRepo.CountByDateRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: loadRange - recount slots: %v", ErrInternal, err)
		}
	}

	return view, nil
}

// generateMissing создает слоты для открытых дат без слотов, начиная с сегодня
// Прошедшие даты и даты дальше горизонта не генерируются. Даты, где слоты уже есть,
// не перегенерируются, даже если расписание с тех пор изменилось
func (s *Service) generateMissing(ctx context.Context, from, to time.Time, view *rangeView) (bool, error) {
	today := s.Today()
	if from.Before(today) {
		from = today
	}
	if to.After(view.horizon) {
		to = view.horizon
	}

	missing := make([]domain.Slot, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if view.counts[types.FormatDate(d)].Total > 0 {
			continue
		}

		windows := GenerateSlots(view.schedule.effective(d), s.slotDuration)
		missing = append(missing, buildSlots(d, windows)...)
	}

	if len(missing) == 0 {
		return false, nil
	}

	inserted, err := s.slotRepo.InsertIfAbsent(ctx, missing)
	if err != nil {
		return false, fmt.Errorf("%w: generateMissing - insert slots: %v", ErrInternal, err)
	}

	s.metrics.ObserveGeneratedSlots(int(inserted))
	s.logger.Info("generateMissing: inserted %d of %d slots for %s..%s",
		inserted, len(missing), types.FormatDate(from), types.FormatDate(to))

	return true, nil
}

// calendarDay собирает представление дня
// Для закрытого дня счетчики и слоты не учитываются, даже если строки слотов остались
func (v *rangeView) calendarDay(date, today time.Time, withSlots bool) domain.CalendarDay {
	key := types.FormatDate(date)
	eff := v.schedule.effective(date)

	day := domain.CalendarDay{
		Date:          date,
		DayOfWeek:     int(date.Weekday()),
		IsToday:       types.SameDay(date, today),
		IsPast:        date.Before(today),
		IsOpen:        eff.IsOpen,
		BeyondHorizon: date.After(v.horizon),
		SpecialDate:   v.schedule.specialDate(date),
	}
	if day.BeyondHorizon {
		day.IsOpen = false
	}

	if day.IsOpen {
		counts := v.counts[key]
		day.TotalSlots = counts.Total
		day.AvailableSlots = counts.Available
		if withSlots {
			day.Slots = v.slots[key]
		}
	}
	if withSlots && day.Slots == nil {
		day.Slots = []domain.Slot{}
	}

	day.IsAvailable = day.IsOpen && day.AvailableSlots > 0 && !day.IsPast

	return day
}

func groupByDate(slots []domain.Slot) map[string][]domain.Slot {
	result := make(map[string][]domain.Slot)
	for _, slot := range slots {
		key := types.FormatDate(slot.Date)
		result[key] = append(result[key], slot)
	}
	return result
}

func countSlots(byDate map[string][]domain.Slot) map[string]domain.SlotCounts {
	result := make(map[string]domain.SlotCounts, len(byDate))
	for key, slots := range byDate {
		c := domain.SlotCounts{Total: len(slots)}
		for _, slot := range slots {
			if slot.IsAvailable {
				c.Available++
			}
		}
		result[key] = c
	}
	return result
}
