package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// GetSuggestedTimes подбирает рекомендуемые слоты:
//   - emergency: до 3 слотов на сегодня и до 3 на завтра;
//   - задана preferredDate: до 5 слотов на эту дату;
//   - иначе: по 2 слота на каждую из 3 ближайших свободных дат, не больше 6.
//
// Уже начавшиеся сегодня слоты не предлагаются
func (s *Service) GetSuggestedTimes(ctx context.Context, opts domain.SuggestionOptions) ([]domain.Slot, error) {
	if opts.Urgency == "" {
		opts.Urgency = domain.UrgencyNormal
	}
	if !opts.Urgency.IsValid() {
		return nil, invalid("urgency", "unknown value %q", opts.Urgency)
	}

	now := s.timeProvider.Now().In(s.loc)
	today := types.DateOnly(now)

	switch {
	case opts.Urgency == domain.UrgencyEmergency:
		return s.suggestEmergency(ctx, today, now)
	case opts.PreferredDate != nil:
		preferred := s.localDate(*opts.PreferredDate)
		if preferred.Before(today) {
			return nil, invalid("preferredDate", "%s is in the past", types.FormatDate(preferred))
		}
		return s.suggestForDate(ctx, preferred, now)
	default:
		return s.suggestNextDates(ctx, today, now)
	}
}

func (s *Service) suggestEmergency(ctx context.Context, today, now time.Time) ([]domain.Slot, error) {
	tomorrow := today.AddDate(0, 0, 1)

	view, err := s.loadRange(ctx, today, tomorrow, true)
	if err != nil {
		s.logger.Error("GetSuggestedTimes: emergency: %v", err)
		return nil, err
	}

	result := make([]domain.Slot, 0, 2*domain.EmergencySlotsPerDay)
	for _, d := range []time.Time{today, tomorrow} {
		result = append(result, view.freeSlots(d, now, domain.EmergencySlotsPerDay)...)
	}

	return result, nil
}

func (s *Service) suggestForDate(ctx context.Context, date, now time.Time) ([]domain.Slot, error) {
	view, err := s.loadRange(ctx, date, date, true)
	if err != nil {
		s.logger.Error("GetSuggestedTimes: preferred date=%s: %v", types.FormatDate(date), err)
		return nil, err
	}

	return view.freeSlots(date, now, domain.PreferredDateSlotsLimit), nil
}

func (s *Service) suggestNextDates(ctx context.Context, today, now time.Time) ([]domain.Slot, error) {
	days, err := s.nextAvailableDates(ctx, today, domain.SuggestedDatesCount)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return []domain.Slot{}, nil
	}

	view, err := s.loadRange(ctx, days[0].Date, days[len(days)-1].Date, true)
	if err != nil {
		s.logger.Error("GetSuggestedTimes: next dates: %v", err)
		return nil, err
	}

	result := make([]domain.Slot, 0, domain.MaxSuggestedSlots)
	for _, day := range days {
		for _, slot := range view.freeSlots(day.Date, now, domain.SuggestedSlotsPerDate) {
			if len(result) == domain.MaxSuggestedSlots {
				return result, nil
			}
			result = append(result, slot)
		}
	}

	return result, nil
}

// freeSlots возвращает до limit свободных слотов открытого дня
// Для сегодняшней даты слоты, начало которых не позже now, пропускаются
func (v *rangeView) freeSlots(date, now time.Time, limit int) []domain.Slot {
	result := make([]domain.Slot, 0, limit)
	if !v.schedule.effective(date).IsOpen {
		return result
	}

	isToday := types.SameDay(date, now)

	for _, slot := range v.slots[types.FormatDate(date)] {
		if len(result) == limit {
			break
		}
		if !slot.IsAvailable {
			continue
		}
		if isToday && !slot.StartTime.OnDate(date).After(now) {
			continue
		}
		result = append(result, slot)
	}

	return result
}
