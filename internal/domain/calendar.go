package domain

import (
	"time"
)

// EffectiveHours фактические часы работы на конкретную дату
// с учетом особых дат и расписания по дням недели
type EffectiveHours struct {
	IsOpen bool
	Open   SlotWindow
	Break  *SlotWindow
	// Source откуда взято расписание: weekday, special_hours, holiday, closure, inactive, missing
	Source string
}

// DayAvailability доступность на одну дату
type DayAvailability struct {
	Date        time.Time
	IsOpen      bool
	Slots       []Slot
	BreakWindow *SlotWindow
	// BeyondHorizon дата дальше горизонта бронирования, слоты не создаются
	BeyondHorizon bool
}

// FreeSlots возвращает только свободные слоты
func (d *DayAvailability) FreeSlots() []Slot {
	free := make([]Slot, 0, len(d.Slots))
	for _, s := range d.Slots {
		if s.IsAvailable {
			free = append(free, s)
		}
	}
	return free
}

// CalendarDay агрегированное представление дня в календаре
type CalendarDay struct {
	Date           time.Time
	DayOfWeek      int
	IsToday        bool
	IsPast         bool
	IsOpen         bool
	BeyondHorizon  bool
	IsAvailable    bool
	AvailableSlots int
	TotalSlots     int
	SpecialDate    *SpecialDate
	Slots          []Slot // заполняется только при запросе детализации
}

// WeekAvailability неделя с понедельника по воскресенье
type WeekAvailability struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Days      []CalendarDay
}

// MonthAvailability дни месяца по ключу YYYY-MM-DD
type MonthAvailability map[string]CalendarDay

// Urgency срочность ремонта
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyEmergency Urgency = "emergency"
)

// IsValid проверяет, что срочность известна
func (u Urgency) IsValid() bool {
	return u == UrgencyNormal || u == UrgencyEmergency
}

// SuggestionOptions параметры подбора рекомендуемого времени
type SuggestionOptions struct {
	Urgency       Urgency
	PreferredDate *time.Time
}
