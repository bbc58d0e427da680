package get_month_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// MonthResponse HTTP response model, дни по ключу YYYY-MM-DD
type MonthResponse struct {
	Year  int                                  `json:"year"`
	Month int                                  `json:"month"`
	Days  map[string]views.CalendarDayResponse `json:"days"`
}

// FromDomain конвертирует месяц в HTTP response
func FromDomain(year, month int, days domain.MonthAvailability) *MonthResponse {
	result := make(map[string]views.CalendarDayResponse, len(days))
	for key, day := range days {
		result[key] = views.FromCalendarDay(day)
	}
	return &MonthResponse{Year: year, Month: month, Days: result}
}
