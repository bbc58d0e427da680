package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgShopClosed         = "мастерская закрыта в выбранную дату"
	msgDateInPast         = "дата записи в прошлом"
	msgTooLateToBook      = "выбранное время уже наступило"
	msgTooFarInAdvance    = "запись на эту дату еще не открыта"
	msgInvalidField       = "некорректное значение поля"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location LocationProvider
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location LocationProvider, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location.Location())
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var fieldErr *createAppointment.FieldError
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrShopClosed):
			h.logger.Warn("POST /appointments - Shop closed: date=%s", req.Date)
			handlers.RespondFieldError(w, "date", msgShopClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: date=%s", req.Date)
			handlers.RespondFieldError(w, "date", msgDateInPast)

		case errors.Is(err, createAppointment.ErrTooFarInAdvance):
			h.logger.Warn("POST /appointments - Date beyond booking horizon: date=%s", req.Date)
			handlers.RespondFieldError(w, "date", msgTooFarInAdvance)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondFieldError(w, "startTime", msgTooLateToBook)

		case errors.As(err, &fieldErr):
			h.logger.Warn("POST /appointments - Validation failed: field=%s, reason=%s", fieldErr.Field, fieldErr.Reason)
			handlers.RespondFieldError(w, fieldErr.Field, fieldErr.Field+" "+fieldErr.Reason)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidField)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%s, date=%s, time=%s",
		result.ID, req.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
