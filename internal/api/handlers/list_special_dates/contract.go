package list_special_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSpecialDates(ctx context.Context, from, to time.Time) (*models.SpecialDateListResponse, error)
}

type LocationProvider interface {
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
