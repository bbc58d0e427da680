package create_appointment

import (
	"context"
	"time"

	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
)

type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error)
}

// LocationProvider часовой пояс мастерской для разбора даты
type LocationProvider interface {
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
