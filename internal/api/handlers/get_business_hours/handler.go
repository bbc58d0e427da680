package get_business_hours

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hours, err := h.service.ListBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/business-hours - Failed to list business hours: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/business-hours - days=%d", len(hours.Days))
	handlers.RespondJSON(w, http.StatusOK, hours)
}
