package get_next_available_dates

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
)

const msgInvalidLimit = "некорректный limit, ожидается целое число"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/next?limit=
// Без limit возвращается 5 ближайших дат
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			h.logger.Warn("GET /availability/next - Invalid limit: %v", err)
			handlers.RespondFieldError(w, "limit", msgInvalidLimit)
			return
		}
		limit = parsed
	}

	days, err := h.service.GetNextAvailableDates(r.Context(), limit)
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/next - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/next - Failed to get next dates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/next - found %d dates", len(days))
	handlers.RespondJSON(w, http.StatusOK, &NextDatesResponse{Dates: views.FromCalendarDays(days)})
}
