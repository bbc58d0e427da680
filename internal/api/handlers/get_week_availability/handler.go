package get_week_availability

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

// Handle GET /api/v1/availability/weeks/{date}
// date - любой день недели, неделя начинается с понедельника
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	anchor, err := types.ParseDate(dateStr, h.service.Location())
	if err != nil {
		h.logger.Warn("GET /availability/weeks/{date} - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", msgInvalidDate)
		return
	}

	week, err := h.service.GetWeekAvailability(r.Context(), anchor)
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/weeks/{date} - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/weeks/{date} - Failed to get week: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/weeks/{date} - week %s..%s",
		types.FormatDate(week.WeekStart), types.FormatDate(week.WeekEnd))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(week))
}
