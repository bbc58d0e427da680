package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AppointmentStatus статус записи в мастерскую
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

// Appointment запись клиента на ремонт
type Appointment struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    *string
	DeviceType       *string
	IssueDescription *string
	Urgency          Urgency
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	Status           AppointmentStatus
	Notes            *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentNoShow
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed
}

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentInProgress,
		AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// statusTransitions допустимые переходы статуса; отмена выполняется отдельной операцией
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled:  {AppointmentConfirmed, AppointmentInProgress, AppointmentNoShow},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted},
}

// CanTransitionTo возвращает true, если запись можно перевести в статус next
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
