package create_special_date

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyExists      = "на эту дату уже задана особая дата"
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

// Handle POST /api/v1/admin/special-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpecialDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/special-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateSpecialDate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/special-dates - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), schedule.ErrInvalidInput.Error()+": "))

		case errors.Is(err, schedule.ErrSpecialDateExists):
			h.logger.Warn("POST /admin/special-dates - Already exists: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /admin/special-dates - Failed to create: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/special-dates - Created id=%d, date=%s, type=%s", created.ID, created.Date, created.Type)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
