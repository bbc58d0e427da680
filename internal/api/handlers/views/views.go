// Package views содержит HTTP модели доступности, общие для нескольких handlers
package views

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotResponse временной слот
type SlotResponse struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// WindowResponse интервал времени
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailabilityResponse доступность на дату
type DayAvailabilityResponse struct {
	Date           string          `json:"date"`
	IsOpen         bool            `json:"isOpen"`
	BeyondHorizon  bool            `json:"beyondHorizon,omitempty"`
	AvailableSlots int             `json:"availableSlots"`
	Slots          []SlotResponse  `json:"slots"`
	Break          *WindowResponse `json:"break,omitempty"`
}

// SpecialDateResponse краткое описание особой даты в календаре
type SpecialDateResponse struct {
	Type string  `json:"type"`
	Name *string `json:"name,omitempty"`
}

// CalendarDayResponse день календаря
type CalendarDayResponse struct {
	Date           string               `json:"date"`
	DayOfWeek      int                  `json:"dayOfWeek"`
	IsToday        bool                 `json:"isToday"`
	IsPast         bool                 `json:"isPast"`
	IsOpen         bool                 `json:"isOpen"`
	BeyondHorizon  bool                 `json:"beyondHorizon,omitempty"`
	IsAvailable    bool                 `json:"isAvailable"`
	AvailableSlots int                  `json:"availableSlots"`
	TotalSlots     int                  `json:"totalSlots"`
	SpecialDate    *SpecialDateResponse `json:"specialDate,omitempty"`
	Slots          []SlotResponse       `json:"slots,omitempty"`
}

// FromSlot конвертирует доменный слот; ID записи наружу не отдается
func FromSlot(s domain.Slot) SlotResponse {
	return SlotResponse{
		Date:        types.FormatDate(s.Date),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsAvailable: s.IsAvailable,
	}
}

// FromSlots конвертирует список слотов, всегда возвращает не-nil срез
func FromSlots(slots []domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromSlot(s))
	}
	return result
}

// FromDayAvailability конвертирует доступность даты
func FromDayAvailability(day *domain.DayAvailability) *DayAvailabilityResponse {
	resp := &DayAvailabilityResponse{
		Date:           types.FormatDate(day.Date),
		IsOpen:         day.IsOpen,
		BeyondHorizon:  day.BeyondHorizon,
		AvailableSlots: len(day.FreeSlots()),
		Slots:          FromSlots(day.Slots),
	}
	if day.BreakWindow != nil {
		resp.Break = &WindowResponse{
			Start: day.BreakWindow.Start.String(),
			End:   day.BreakWindow.End.String(),
		}
	}
	return resp
}

// FromCalendarDay конвертирует день календаря
func FromCalendarDay(day domain.CalendarDay) CalendarDayResponse {
	resp := CalendarDayResponse{
		Date:           types.FormatDate(day.Date),
		DayOfWeek:      day.DayOfWeek,
		IsToday:        day.IsToday,
		IsPast:         day.IsPast,
		IsOpen:         day.IsOpen,
		BeyondHorizon:  day.BeyondHorizon,
		IsAvailable:    day.IsAvailable,
		AvailableSlots: day.AvailableSlots,
		TotalSlots:     day.TotalSlots,
	}
	if day.SpecialDate != nil {
		resp.SpecialDate = &SpecialDateResponse{
			Type: string(day.SpecialDate.Type),
			Name: day.SpecialDate.Name,
		}
	}
	if day.Slots != nil {
		resp.Slots = FromSlots(day.Slots)
	}
	return resp
}

// FromCalendarDays конвертирует список дней
func FromCalendarDays(days []domain.CalendarDay) []CalendarDayResponse {
	result := make([]CalendarDayResponse, 0, len(days))
	for _, d := range days {
		result = append(result, FromCalendarDay(d))
	}
	return result
}
