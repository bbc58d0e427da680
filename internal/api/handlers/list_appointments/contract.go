package list_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByDateRange(ctx context.Context, from, to time.Time) (*models.AppointmentListResponse, error)
}

type LocationProvider interface {
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
