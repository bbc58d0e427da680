package get_suggested_times

import "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"

// SuggestionsResponse HTTP response model
type SuggestionsResponse struct {
	Urgency string               `json:"urgency"`
	Slots   []views.SlotResponse `json:"slots"`
}
