package check_slot_availability

import (
	"context"
	"time"
)

type AvailabilityService interface {
	IsSlotAvailable(ctx context.Context, date time.Time, timeStr string, durationMinutes int) (bool, error)
	SlotDuration() int
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
