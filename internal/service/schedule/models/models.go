package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// UpsertBusinessHoursRequest запрос на установку расписания дня недели
type UpsertBusinessHoursRequest struct {
	DayOfWeek  int     `json:"dayOfWeek"`            // 0 = воскресенье ... 6 = суббота
	OpenTime   string  `json:"openTime"`             // HH:MM или HH:MM:SS
	CloseTime  string  `json:"closeTime"`            // HH:MM или HH:MM:SS
	BreakStart *string `json:"breakStart,omitempty"` // перерыв задается парой breakStart/breakEnd
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// CreateSpecialDateRequest запрос на создание особой даты
type CreateSpecialDateRequest struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Type      string  `json:"type"` // holiday, closure, special_hours
	Name      *string `json:"name,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	OpenTime  *string `json:"openTime,omitempty"`  // только для special_hours
	CloseTime *string `json:"closeTime,omitempty"` // только для special_hours
}

// Response модели

// BusinessHoursResponse расписание дня недели
type BusinessHoursResponse struct {
	ID         int64             `json:"id"`
	DayOfWeek  int               `json:"dayOfWeek"`
	OpenTime   types.TimeString  `json:"openTime"`
	CloseTime  types.TimeString  `json:"closeTime"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
	IsActive   bool              `json:"isActive"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// BusinessHoursListResponse расписание на неделю
type BusinessHoursListResponse struct {
	Days []BusinessHoursResponse `json:"days"`
}

// SpecialDateResponse особая дата
type SpecialDateResponse struct {
	ID        int64             `json:"id"`
	Date      string            `json:"date"`
	Type      string            `json:"type"`
	Name      *string           `json:"name,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SpecialDateListResponse список особых дат
type SpecialDateListResponse struct {
	SpecialDates []SpecialDateResponse `json:"specialDates"`
}

// FromDomainBusinessHours конвертирует доменную модель в ответ
func FromDomainBusinessHours(h *domain.BusinessHours) *BusinessHoursResponse {
	return &BusinessHoursResponse{
		ID:         h.ID,
		DayOfWeek:  h.DayOfWeek,
		OpenTime:   h.OpenTime,
		CloseTime:  h.CloseTime,
		BreakStart: h.BreakStart,
		BreakEnd:   h.BreakEnd,
		IsActive:   h.IsActive,
		UpdatedAt:  h.UpdatedAt,
	}
}

// FromDomainBusinessHoursList конвертирует список расписаний
func FromDomainBusinessHoursList(list []*domain.BusinessHours) *BusinessHoursListResponse {
	days := make([]BusinessHoursResponse, 0, len(list))
	for _, h := range list {
		days = append(days, *FromDomainBusinessHours(h))
	}
	return &BusinessHoursListResponse{Days: days}
}

// FromDomainSpecialDate конвертирует особую дату в ответ
func FromDomainSpecialDate(sd *domain.SpecialDate) *SpecialDateResponse {
	return &SpecialDateResponse{
		ID:        sd.ID,
		Date:      types.FormatDate(sd.Date),
		Type:      string(sd.Type),
		Name:      sd.Name,
		Notes:     sd.Notes,
		OpenTime:  sd.OpenTime,
		CloseTime: sd.CloseTime,
		CreatedAt: sd.CreatedAt,
	}
}

// FromDomainSpecialDateList конвертирует список особых дат
func FromDomainSpecialDateList(list []*domain.SpecialDate) *SpecialDateListResponse {
	dates := make([]SpecialDateResponse, 0, len(list))
	for _, sd := range list {
		dates = append(dates, *FromDomainSpecialDate(sd))
	}
	return &SpecialDateListResponse{SpecialDates: dates}
}
