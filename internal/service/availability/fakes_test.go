package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// memorySlots хранилище слотов в памяти с уникальностью (date, start_time)
// и атомарным Reserve, как у таблицы slots
type memorySlots struct {
	mu     sync.Mutex
	rows   map[string]*domain.Slot
	nextID int64

	countCalls  int
	insertCalls int
	lastFrom    time.Time
	lastTo      time.Time
}

func newMemorySlots() *memorySlots {
	return &memorySlots{rows: make(map[string]*domain.Slot)}
}

func slotKey(date time.Time, start types.TimeString) string {
	return types.FormatDate(date) + " " + start.String()
}

func inRange(date, from, to time.Time) bool {
	d := types.FormatDate(date)
	return d >= types.FormatDate(from) && d <= types.FormatDate(to)
}

func (m *memorySlots) CountByDateRange(_ context.Context, from, to time.Time) (map[string]domain.SlotCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.countCalls++
	m.lastFrom, m.lastTo = from, to

	result := make(map[string]domain.SlotCounts)
	for _, s := range m.rows {
		if !inRange(s.Date, from, to) {
			continue
		}
		key := types.FormatDate(s.Date)
		c := result[key]
		c.Total++
		if s.IsAvailable {
			c.Available++
		}
		result[key] = c
	}
	return result, nil
}

func (m *memorySlots) InsertIfAbsent(_ context.Context, slots []domain.Slot) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	var inserted int64
	for _, s := range slots {
		key := slotKey(s.Date, s.StartTime)
		if _, ok := m.rows[key]; ok {
			continue
		}
		m.nextID++
		row := s
		row.ID = m.nextID
		row.IsAvailable = true
		m.rows[key] = &row
		inserted++
	}
	return inserted, nil
}

func (m *memorySlots) GetByDateRange(_ context.Context, from, to time.Time) ([]domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]domain.Slot, 0)
	for _, s := range m.rows {
		if inRange(s.Date, from, to) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return slotKey(result[i].Date, result[i].StartTime) < slotKey(result[j].Date, result[j].StartTime)
	})
	return result, nil
}

func (m *memorySlots) Reserve(_ context.Context, date time.Time, start types.TimeString, appointmentID uuid.UUID) (*domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[slotKey(date, start)]
	if !ok || !row.IsAvailable {
		return nil, slotRepo.ErrSlotNotAvailable
	}
	id := appointmentID
	row.IsAvailable = false
	row.AppointmentID = &id
	reserved := *row
	return &reserved, nil
}

func (m *memorySlots) ReleaseByAppointment(_ context.Context, appointmentID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	released := false
	for _, row := range m.rows {
		if row.AppointmentID != nil && *row.AppointmentID == appointmentID {
			row.IsAvailable = true
			row.AppointmentID = nil
			released = true
		}
	}
	return released, nil
}

func (m *memorySlots) get(date time.Time, start string) *domain.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[slotKey(date, types.MustTimeString(start))]
	if !ok {
		return nil
	}
	copied := *row
	return &copied
}

func (m *memorySlots) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type staticSchedule struct {
	hours    []*domain.BusinessHours
	specials []*domain.SpecialDate
	err      error
}

func (s *staticSchedule) GetBusinessHours(context.Context) ([]*domain.BusinessHours, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.hours, nil
}

func (s *staticSchedule) GetSpecialDates(_ context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.SpecialDate, 0)
	for _, sd := range s.specials {
		if inRange(sd.Date, from, to) {
			result = append(result, sd)
		}
	}
	return result, nil
}

type recordingMetrics struct {
	mu           sync.Mutex
	reservations map[string]int
	releases     map[string]int
	generated    int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{reservations: map[string]int{}, releases: map[string]int{}}
}

func (m *recordingMetrics) ObserveReservation(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[outcome]++
}

func (m *recordingMetrics) ObserveRelease(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases[outcome]++
}

func (m *recordingMetrics) ObserveGeneratedSlots(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated += count
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(s string) *types.TimeString {
	t := types.MustTimeString(s)
	return &t
}

// weekdayHours пн-пт 09:00-17:00 с перерывом 12:00-13:00
func weekdayHours() []*domain.BusinessHours {
	hours := make([]*domain.BusinessHours, 0, 5)
	for day := 1; day <= 5; day++ {
		hours = append(hours, &domain.BusinessHours{
			DayOfWeek:  day,
			OpenTime:   "09:00",
			CloseTime:  "17:00",
			BreakStart: ts("12:00"),
			BreakEnd:   ts("13:00"),
			IsActive:   true,
		})
	}
	return hours
}

// понедельник 2025-01-06
func date(day int) time.Time {
	return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc      *Service
	slots    *memorySlots
	schedule *staticSchedule
	metrics  *recordingMetrics
	clock    *fixedTime
}

func newFixture(now time.Time, schedule *staticSchedule) *fixture {
	f := &fixture{
		slots:    newMemorySlots(),
		schedule: schedule,
		metrics:  newRecordingMetrics(),
		clock:    &fixedTime{now: now},
	}
	f.svc = NewService(f.slots, f.schedule, f.metrics, Config{
		SlotDurationMinutes: 30,
		Location:            time.UTC,
	}, nopLogger{})
	f.svc.timeProvider = f.clock
	return f
}
