package get_next_available_dates

import "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"

// NextDatesResponse HTTP response model
type NextDatesResponse struct {
	Dates []views.CalendarDayResponse `json:"dates"`
}
