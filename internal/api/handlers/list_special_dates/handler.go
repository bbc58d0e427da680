package list_special_dates

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgInvalidFrom = "некорректный параметр from, ожидается YYYY-MM-DD"
	msgInvalidTo   = "некорректный параметр to, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/special-dates?from=&to=
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

	dates, err := h.service.ListSpecialDates(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /admin/special-dates - Validation failed: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), schedule.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("GET /admin/special-dates - Failed to list: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/special-dates - %s..%s, count=%d",
		types.FormatDate(from), types.FormatDate(to), len(dates.SpecialDates))
	handlers.RespondJSON(w, http.StatusOK, dates)
}
