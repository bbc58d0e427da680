package get_week_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WeekResponse HTTP response model
type WeekResponse struct {
	WeekStart string                      `json:"weekStart"`
	WeekEnd   string                      `json:"weekEnd"`
	Days      []views.CalendarDayResponse `json:"days"`
}

// FromDomain конвертирует неделю в HTTP response
func FromDomain(week *domain.WeekAvailability) *WeekResponse {
	return &WeekResponse{
		WeekStart: types.FormatDate(week.WeekStart),
		WeekEnd:   types.FormatDate(week.WeekEnd),
		Days:      views.FromCalendarDays(week.Days),
	}
}
