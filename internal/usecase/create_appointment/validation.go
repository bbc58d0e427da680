package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	minPhoneDigits = 7
	maxPhoneLength = 32
)

// validateRequest валидирует входные данные запроса и возвращает нормализованное время и срочность
func validateRequest(req *Request) (types.TimeString, domain.Urgency, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return "", "", invalidField("customerName", "is required")
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return "", "", invalidField("customerName", "must not exceed %d characters", domain.MaxCustomerNameLength)
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return "", "", err
	}

	if req.CustomerEmail != nil && !strings.Contains(*req.CustomerEmail, "@") {
		return "", "", invalidField("customerEmail", "is not a valid email")
	}
	if len(ptr.Value(req.DeviceType)) > domain.MaxDeviceTypeLength {
		return "", "", invalidField("deviceType", "must not exceed %d characters", domain.MaxDeviceTypeLength)
	}
	if len(ptr.Value(req.IssueDescription)) > domain.MaxIssueDescriptionLength {
		return "", "", invalidField("issueDescription", "must not exceed %d characters", domain.MaxIssueDescriptionLength)
	}
	if len(ptr.Value(req.Notes)) > domain.MaxNotesLength {
		return "", "", invalidField("notes", "must not exceed %d characters", domain.MaxNotesLength)
	}

	urgency := domain.UrgencyNormal
	if req.Urgency != "" {
		urgency = domain.Urgency(req.Urgency)
		if !urgency.IsValid() {
			return "", "", invalidField("urgency", "must be normal or emergency")
		}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return "", "", invalidField("date", "is required")
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", "", invalidField("startTime", "%v", err)
	}

	return start, urgency, nil
}

// validatePhone допускает цифры, пробелы, +, -, скобки
func validatePhone(phone string) error {
	if phone == "" {
		return invalidField("customerPhone", "is required")
	}
	if len(phone) > maxPhoneLength {
		return invalidField("customerPhone", "must not exceed %d characters", maxPhoneLength)
	}

	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return invalidField("customerPhone", "contains invalid character %q", r)
		}
	}
	if digits < minPhoneDigits {
		return invalidField("customerPhone", "must contain at least %d digits", minPhoneDigits)
	}

	return nil
}

// validateDateTime проверяет, что дата не в прошлом и не дальше горизонта бронирования,
// а сегодняшний слот еще не начался
func validateDateTime(date time.Time, start types.TimeString, now time.Time, maxAdvanceDays int) error {
	today := types.DateOnly(now)
	if date.Before(today) {
		return ErrInvalidDate
	}
	if date.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: booking is open for %d days ahead", ErrTooFarInAdvance, maxAdvanceDays)
	}

	if !start.OnDate(date).After(now) {
		return fmt.Errorf("%w: slot %s has already started", ErrTooLateToBook, start)
	}

	return nil
}
