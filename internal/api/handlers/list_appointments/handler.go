package list_appointments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgInvalidFrom = "некорректный параметр from, ожидается YYYY-MM-DD"
	msgInvalidTo   = "некорректный параметр to, ожидается YYYY-MM-DD"
)

type Handler struct {
	service  AppointmentService
	location LocationProvider
	logger   Logger
}

func NewHandler(service AppointmentService, location LocationProvider, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/appointments?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	loc := h.location.Location()
	query := r.URL.Query()

	from, err := types.ParseDate(query.Get("from"), loc)
	if err != nil {
		handlers.RespondFieldError(w, "from", msgInvalidFrom)
		return
	}
	to, err := types.ParseDate(query.Get("to"), loc)
	if err != nil {
		handlers.RespondFieldError(w, "to", msgInvalidTo)
		return
	}

	list, err := h.service.ListByDateRange(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /admin/appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), appointments.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("GET /admin/appointments - Failed to list appointments: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/appointments - %s..%s, count=%d",
		types.FormatDate(from), types.FormatDate(to), len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
