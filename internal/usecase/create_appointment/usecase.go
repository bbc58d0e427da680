package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// errSlotTaken откатывает транзакцию, когда слот не удалось занять
var errSlotTaken = errors.New("create_appointment: slot taken")

// UseCase use case для создания записи на ремонт
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Запись и бронирование слота выполняются в одной транзакции:
// при конфликте не остается ни записи без слота, ни занятого слота без записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, urgency=%s",
		types.FormatDate(req.Date), req.StartTime, req.Urgency)

	// 1. Валидация входных данных
	start, urgency, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату относительно текущего времени мастерской
	loc := uc.availability.Location()
	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	if err := validateDateTime(date, start, now, uc.availability.MaxAdvanceDays()); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем, что мастерская работает в этот день
	day, err := uc.availability.GetDateAvailability(ctx, date)
	if err != nil {
		var vErr *availability.ValidationError
		if errors.As(err, &vErr) {
			return nil, invalidField(vErr.Field, "%s", vErr.Reason)
		}
		uc.logger.Error("CreateAppointment: failed to get availability for %s: %v", types.FormatDate(date), err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	if !day.IsOpen {
		uc.logger.Warn("CreateAppointment: shop is closed on %s", types.FormatDate(date))
		return nil, ErrShopClosed
	}

	var result *domain.Appointment

	// 4. Создаем запись и занимаем слот в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt := &domain.Appointment{
			ID:               uuid.New(),
			CustomerName:     req.CustomerName,
			CustomerPhone:    req.CustomerPhone,
			CustomerEmail:    req.CustomerEmail,
			DeviceType:       req.DeviceType,
			IssueDescription: req.IssueDescription,
			Urgency:          urgency,
			Date:             date,
			StartTime:        start,
			DurationMinutes:  uc.availability.SlotDuration(),
			Status:           domain.AppointmentScheduled,
			Notes:            req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		reserved, err := uc.availability.ReserveSlot(txCtx, date, start.String(), created.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to reserve slot %s %s: %v", types.FormatDate(date), start, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
		if !reserved {
			return errSlotTaken
		}

		result = created
		return nil
	})

	if errors.Is(err, errSlotTaken) {
		uc.logger.Warn("CreateAppointment: slot %s %s is not available", types.FormatDate(date), start)
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		ID:               result.ID.String(),
		CustomerName:     result.CustomerName,
		CustomerPhone:    result.CustomerPhone,
		CustomerEmail:    result.CustomerEmail,
		DeviceType:       result.DeviceType,
		IssueDescription: result.IssueDescription,
		Urgency:          string(result.Urgency),
		Date:             result.Date,
		StartTime:        result.StartTime,
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
