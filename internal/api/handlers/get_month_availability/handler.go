package get_month_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
)

const (
	msgInvalidYear  = "некорректный год"
	msgInvalidMonth = "некорректный месяц, ожидается число от 1 до 12"
)

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

// Handle GET /api/v1/availability/months/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /availability/months/{year}/{month} - Invalid year: %v", err)
		handlers.RespondFieldError(w, "year", msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /availability/months/{year}/{month} - Invalid month: %v", err)
		handlers.RespondFieldError(w, "month", msgInvalidMonth)
		return
	}

	days, err := h.service.GetMonthAvailability(r.Context(), year, time.Month(month))
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/months/{year}/{month} - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/months/{year}/{month} - Failed to get month: %d-%d, error=%v", year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/months/{year}/{month} - %04d-%02d, days=%d", year, month, len(days))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(year, month, days))
}
