package get_suggested_times

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/views"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const msgInvalidPreferredDate = "некорректный формат preferredDate, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/availability/suggestions?urgency=&preferredDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := domain.SuggestionOptions{Urgency: domain.Urgency(query.Get("urgency"))}

	if preferredStr := query.Get("preferredDate"); preferredStr != "" {
		preferred, err := types.ParseDate(preferredStr, h.service.Location())
		if err != nil {
			h.logger.Warn("GET /availability/suggestions - Invalid preferredDate: %v", err)
			handlers.RespondFieldError(w, "preferredDate", msgInvalidPreferredDate)
			return
		}
		opts.PreferredDate = &preferred
	}

	slots, err := h.service.GetSuggestedTimes(r.Context(), opts)
	if err != nil {
		if field, reason, ok := views.ValidationField(err); ok {
			h.logger.Warn("GET /availability/suggestions - Validation failed: %v", err)
			handlers.RespondFieldError(w, field, reason)
			return
		}
		h.logger.Error("GET /availability/suggestions - Failed to get suggestions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	urgency := string(opts.Urgency)
	if urgency == "" {
		urgency = string(domain.UrgencyNormal)
	}

	h.logger.Info("GET /availability/suggestions - urgency=%s, suggested=%d", urgency, len(slots))
	handlers.RespondJSON(w, http.StatusOK, &SuggestionsResponse{
		Urgency: urgency,
		Slots:   views.FromSlots(slots),
	})
}
