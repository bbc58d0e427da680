package check_slot_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTime     = "время обязательно"
	msgInvalidDuration = "некорректная длительность, ожидается целое число минут"
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

// Handle GET /api/v1/availability/check?date=&time=&duration=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondFieldError(w, "date", msgMissingDate)
		return
	}
	date, err := types.ParseDate(dateStr, h.service.Location())
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", msgInvalidDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		handlers.RespondFieldError(w, "time", msgMissingTime)
		return
	}

	// без duration проверяется один слот
	duration := h.service.SlotDuration()
	if durationStr := query.Get("duration"); durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /availability/check - Invalid duration: %v", err)
			handlers.RespondFieldError(w, "duration", msgInvalidDuration)
			return
		}
	}

	available, err := h.service.IsSlotAvailable(r.Context(), date, timeStr, duration)
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/check - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/check - Failed to check slot: date=%s, time=%s, error=%v", dateStr, timeStr, err)
		handlers.RespondInternalError(w)
		return
	}

	// Время возвращается нормализованным, ошибки здесь уже быть не может
	normalized, _ := types.Normalize(timeStr)

	h.logger.Info("GET /availability/check - date=%s, time=%s, available=%t", dateStr, normalized, available)
	handlers.RespondJSON(w, http.StatusOK, &CheckResponse{
		Date:            dateStr,
		Time:            normalized,
		DurationMinutes: duration,
		Available:       available,
	})
}
