package get_date_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/availability/dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := types.ParseDate(dateStr, h.service.Location())
	if err != nil {
		h.logger.Warn("GET /availability/dates/{date} - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", msgInvalidDate)
		return
	}

	day, err := h.service.GetDateAvailability(r.Context(), date)
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/dates/{date} - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/dates/{date} - Failed to get availability: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/dates/{date} - date=%s, open=%t, slots=%d", dateStr, day.IsOpen, len(day.Slots))
	handlers.RespondJSON(w, http.StatusOK, views.FromDayAvailability(day))
}
