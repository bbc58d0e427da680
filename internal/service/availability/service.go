package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Исходы бронирования для метрик
const (
	outcomeReserved    = "reserved"
	outcomeConflict    = "conflict"
	outcomeUnavailable = "unavailable"
	outcomeReleased    = "released"
	outcomeNoop        = "noop"
	outcomeError       = "error"
)

// Config параметры сервиса доступности
type Config struct {
	SlotDurationMinutes int
	// MaxAdvanceDays на сколько дней вперед от сегодня создаются слоты и принимаются записи
	MaxAdvanceDays int
	Location       *time.Location
}

// Service сервис доступности: генерация слотов, представления по дням/неделям/месяцам,
// бронирование и освобождение слотов
// Не хранит состояния между вызовами, всё состояние в БД
type Service struct {
	slotRepo     SlotRepository
	schedule     ScheduleSource
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	slotDuration   int
	maxAdvanceDays int
	loc            *time.Location
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	slotRepo SlotRepository,
	schedule ScheduleSource,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.SlotDurationMinutes <= 0 {
		cfg.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if cfg.MaxAdvanceDays <= 0 {
		cfg.MaxAdvanceDays = domain.DefaultMaxAdvanceDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		slotRepo:     slotRepo,
		schedule:     schedule,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		slotDuration:   cfg.SlotDurationMinutes,
		maxAdvanceDays: cfg.MaxAdvanceDays,
		loc:            cfg.Location,
	}
}

// SlotDuration возвращает длительность слота в минутах
func (s *Service) SlotDuration() int {
	return s.slotDuration
}

// MaxAdvanceDays возвращает горизонт бронирования в днях
func (s *Service) MaxAdvanceDays() int {
	return s.maxAdvanceDays
}

// Location возвращает часовой пояс мастерской
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today возвращает текущую дату в часовом поясе мастерской
func (s *Service) Today() time.Time {
	return types.DateOnly(s.timeProvider.Now().In(s.loc))
}

// horizon последняя дата, на которую создаются слоты
func (s *Service) horizon(today time.Time) time.Time {
	return today.AddDate(0, 0, s.maxAdvanceDays)
}

// GetDateAvailability возвращает слоты на дату, генерируя их при первом запросе
// Для закрытого дня IsOpen=false и список слотов пуст
func (s *Service) GetDateAvailability(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	if date.IsZero() {
		return nil, invalid("date", "is required")
	}
	date = s.localDate(date)
	if date.After(s.horizon(s.Today())) {
		return &domain.DayAvailability{Date: date, Slots: []domain.Slot{}, BeyondHorizon: true}, nil
	}

	view, err := s.loadRange(ctx, date, date, true)
	if err != nil {
		s.logger.Error("GetDateAvailability: date=%s: %v", types.FormatDate(date), err)
		return nil, err
	}

	eff := view.schedule.effective(date)
	result := &domain.DayAvailability{
		Date:        date,
		IsOpen:      eff.IsOpen,
		Slots:       []domain.Slot{},
		BreakWindow: eff.Break,
	}
	if eff.IsOpen {
		if slots, ok := view.slots[types.FormatDate(date)]; ok {
			result.Slots = slots
		}
	}

	return result, nil
}

// GetWeekAvailability возвращает неделю (с понедельника по воскресенье), содержащую anchor
func (s *Service) GetWeekAvailability(ctx context.Context, anchor time.Time) (*domain.WeekAvailability, error) {
	if anchor.IsZero() {
		return nil, invalid("date", "is required")
	}

	weekStart := types.WeekStart(s.localDate(anchor))
	weekEnd := weekStart.AddDate(0, 0, 6)

	view, err := s.loadRange(ctx, weekStart, weekEnd, true)
	if err != nil {
		s.logger.Error("GetWeekAvailability: week=%s: %v", types.FormatDate(weekStart), err)
		return nil, err
	}

	today := s.Today()
	days := make([]domain.CalendarDay, 0, 7)
	for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, view.calendarDay(d, today, true))
	}

	return &domain.WeekAvailability{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Days:      days,
	}, nil
}

// GetMonthAvailability возвращает дни календарного месяца по ключу YYYY-MM-DD
// Слоты по дням не заполняются, только счетчики
func (s *Service) GetMonthAvailability(ctx context.Context, year int, month time.Month) (domain.MonthAvailability, error) {
	if year < 1 || year > 9999 {
		return nil, invalid("year", "must be between 1 and 9999, got %d", year)
	}
	if month < time.January || month > time.December {
		return nil, invalid("month", "must be between 1 and 12, got %d", month)
	}

	first, last := types.MonthBounds(year, month, s.loc)

	view, err := s.loadRange(ctx, first, last, false)
	if err != nil {
		s.logger.Error("GetMonthAvailability: %04d-%02d: %v", year, month, err)
		return nil, err
	}

	today := s.Today()
	result := make(domain.MonthAvailability, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		result[types.FormatDate(d)] = view.calendarDay(d, today, false)
	}

	return result, nil
}

// GetNextAvailableDates возвращает первые limit дат, начиная с сегодня, где есть свободные слоты
// Просматривает не более MaxScanDays дней; число запросов к БД не зависит от длины диапазона
func (s *Service) GetNextAvailableDates(ctx context.Context, limit int) ([]domain.CalendarDay, error) {
	if limit == 0 {
		limit = domain.DefaultNextDatesLimit
	}
	if limit < 0 || limit > domain.MaxNextDatesLimit {
		return nil, invalid("limit", "must be between 1 and %d, got %d", domain.MaxNextDatesLimit, limit)
	}

	today := s.Today()
	return s.nextAvailableDates(ctx, today, limit)
}

func (s *Service) nextAvailableDates(ctx context.Context, today time.Time, limit int) ([]domain.CalendarDay, error) {
	last := today.AddDate(0, 0, domain.MaxScanDays-1)

	view, err := s.loadRange(ctx, today, last, false)
	if err != nil {
		s.logger.Error("GetNextAvailableDates: %v", err)
		return nil, err
	}

	result := make([]domain.CalendarDay, 0, limit)
	for d := today; !d.After(last) && len(result) < limit; d = d.AddDate(0, 0, 1) {
		day := view.calendarDay(d, today, false)
		if day.IsAvailable {
			result = append(result, day)
		}
	}

	if len(result) < limit {
		s.logger.Info("GetNextAvailableDates: found %d of %d dates within %d days", len(result), limit, domain.MaxScanDays)
	}

	return result, nil
}

// IsSlotAvailable проверяет, можно ли занять время timeStr на durationMinutes минут
// Время принимается как HH:MM и HH:MM:SS. Для durationMinutes больше слота
// требуется непрерывная цепочка свободных слотов. durationMinutes=0 означает длительность слота
func (s *Service) IsSlotAvailable(ctx context.Context, date time.Time, timeStr string, durationMinutes int) (bool, error) {
	if date.IsZero() {
		return false, invalid("date", "is required")
	}
	start, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return false, invalid("time", "%v", err)
	}
	if durationMinutes == 0 {
		durationMinutes = s.slotDuration
	}
	if durationMinutes < domain.MinSlotDurationMinutes || durationMinutes > domain.MaxSlotDurationMinutes {
		return false, invalid("duration", "must be between %d and %d minutes, got %d",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, durationMinutes)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// интервал выходит за пределы суток
		return false, nil
	}

	day, err := s.GetDateAvailability(ctx, date)
	if err != nil {
		return false, err
	}
	if !day.IsOpen {
		return false, nil
	}

	return coversInterval(day.Slots, start, end), nil
}

// coversInterval проверяет, что свободные слоты без разрывов покрывают [start, end)
// Слоты отсортированы по времени начала
func coversInterval(slots []domain.Slot, start, end types.TimeString) bool {
	cursor := start
	for _, slot := range slots {
		if !slot.StartTime.Equal(cursor) {
			continue
		}
		if !slot.IsAvailable {
			return false
		}
		cursor = slot.EndTime
		if !cursor.IsBefore(end) {
			return true
		}
	}
	return false
}

// ReserveSlot атомарно занимает слот date/timeStr под запись appointmentID
// Возвращает false без ошибки, если день закрыт, слота нет или его уже заняли:
// из конкурентных вызовов для одного слота успешен ровно один
func (s *Service) ReserveSlot(ctx context.Context, date time.Time, timeStr string, appointmentID uuid.UUID) (bool, error) {
	if date.IsZero() {
		return false, invalid("date", "is required")
	}
	start, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return false, invalid("time", "%v", err)
	}
	if appointmentID == uuid.Nil {
		return false, invalid("appointmentId", "is required")
	}
	date = s.localDate(date)
	if date.After(s.horizon(s.Today())) {
		return false, invalid("date", "must be within %d days from today", s.maxAdvanceDays)
	}

	// Слоты должны существовать до попытки бронирования
	view, err := s.loadRange(ctx, date, date, false)
	if err != nil {
		s.metrics.ObserveReservation(outcomeError)
		s.logger.Error("ReserveSlot: date=%s time=%s: %v", types.FormatDate(date), start, err)
		return false, err
	}
	if !view.schedule.effective(date).IsOpen {
		s.metrics.ObserveReservation(outcomeUnavailable)
		s.logger.Warn("ReserveSlot: date=%s is closed", types.FormatDate(date))
		return false, nil
	}

	slot, err := s.slotRepo.Reserve(ctx, date, start, appointmentID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			s.metrics.ObserveReservation(outcomeConflict)
			s.logger.Warn("ReserveSlot: slot %s %s is not available for appointment=%s",
				types.FormatDate(date), start, appointmentID)
			return false, nil
		}
		s.metrics.ObserveReservation(outcomeError)
		s.logger.Error("ReserveSlot: date=%s time=%s: %v", types.FormatDate(date), start, err)
		return false, fmt.Errorf("%w: ReserveSlot - reserve: %v", ErrInternal, err)
	}

	s.metrics.ObserveReservation(outcomeReserved)
	s.logger.Info("ReserveSlot: slot id=%d %s %s reserved for appointment=%s",
		slot.ID, types.FormatDate(date), start, appointmentID)

	return true, nil
}

// ReleaseSlot освобождает слот записи; повторный вызов безопасен и возвращает false
func (s *Service) ReleaseSlot(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	if appointmentID == uuid.Nil {
		return false, invalid("appointmentId", "is required")
	}

	released, err := s.slotRepo.ReleaseByAppointment(ctx, appointmentID)
	if err != nil {
		s.metrics.ObserveRelease(outcomeError)
		s.logger.Error("ReleaseSlot: appointment=%s: %v", appointmentID, err)
		return false, fmt.Errorf("%w: ReleaseSlot - release: %v", ErrInternal, err)
	}

	if released {
		s.metrics.ObserveRelease(outcomeReleased)
		s.logger.Info("ReleaseSlot: slot of appointment=%s released", appointmentID)
	} else {
		s.metrics.ObserveRelease(outcomeNoop)
		s.logger.Info("ReleaseSlot: no slot bound to appointment=%s", appointmentID)
	}

	return released, nil
}

func (s *Service) localDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
}
