package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// maxListRangeDays ограничение периода выборки записей
const maxListRangeDays = 93

// Service сервис для работы с записями на ремонт
type Service struct {
	appointmentRepo AppointmentRepository
	slots           SlotReleaser
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	slots SlotReleaser,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		slots:           slots,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByDateRange возвращает активные записи за период [from, to]
func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) (*models.AppointmentListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if types.DaysBetween(from, to) > maxListRangeDays {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, maxListRangeDays)
	}

	list, err := s.appointmentRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListByDateRange: repository error for %s..%s: %v",
			types.FormatDate(from), types.FormatDate(to), err)
		return nil, fmt.Errorf("%w: ListByDateRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDateRange: fetched %d appointments for %s..%s",
		len(list), types.FormatDate(from), types.FormatDate(to))
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет запись и освобождает её слот в одной транзакции
// Отменить можно только запись в статусе scheduled или confirmed
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - get appointment: %v", ErrInternal, err)
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, appt.Status, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				s.logger.Warn("Cancel: appointment id=%s changed status concurrently", id)
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - update appointment: %v", ErrInternal, err)
		}

		released, err := s.slots.ReleaseSlot(txCtx, id)
		if err != nil {
			s.logger.Error("Cancel: failed to release slot of appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - release slot: %v", ErrInternal, err)
		}
		if !released {
			s.logger.Warn("Cancel: appointment id=%s had no reserved slot", id)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return nil
}

// UpdateStatus переводит запись в новый статус по правилам жизненного цикла
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s", id, req.Status)

	next := domain.AppointmentStatus(req.Status)
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if next == domain.AppointmentCancelled {
		return fmt.Errorf("%w: use cancel to cancel an appointment", ErrInvalidStatusTransition)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - get appointment: %v", ErrInternal, err)
	}

	if !appt.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: appointment id=%s transition %s -> %s rejected", id, appt.Status, next)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, appt.Status, next)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, appt.Status, next); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			s.logger.Warn("UpdateStatus: appointment id=%s changed status concurrently", id)
			return fmt.Errorf("%w: status of appointment changed concurrently", ErrInvalidStatusTransition)
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, next)
	return nil
}
