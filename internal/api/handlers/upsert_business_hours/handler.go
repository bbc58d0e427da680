package upsert_business_hours

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle PUT /api/v1/admin/business-hours
// Уже сгенерированные слоты не пересчитываются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours, err := h.service.UpsertBusinessHours(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/business-hours - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), schedule.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("PUT /admin/business-hours - Failed to save: day=%d, error=%v", req.DayOfWeek, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/business-hours - Saved day=%d", hours.DayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, hours)
}
