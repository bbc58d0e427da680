package delete_special_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "особая дата не найдена"
)

type Handler struct {
	service  ScheduleService
	location LocationProvider
	logger   Logger
}

func NewHandler(service ScheduleService, location LocationProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle DELETE /api/v1/admin/special-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := types.ParseDate(dateStr, h.location.Location())
	if err != nil {
		h.logger.Warn("DELETE /admin/special-dates/{date} - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", msgInvalidDate)
		return
	}

	if err := h.service.DeleteSpecialDate(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSpecialDateNotFound):
			h.logger.Warn("DELETE /admin/special-dates/{date} - Not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/special-dates/{date} - Failed to delete: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/special-dates/{date} - Deleted date=%s", dateStr)
	w.WriteHeader(http.StatusNoContent)
}
