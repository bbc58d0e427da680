package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateBusinessHours проверяет расписание дня и собирает доменную модель
func validateBusinessHours(req *models.UpsertBusinessHoursRequest) (*domain.BusinessHours, error) {
	if !domain.IsValidDayOfWeek(req.DayOfWeek) {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	open, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}
	if !open.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	hours := &domain.BusinessHours{
		DayOfWeek: req.DayOfWeek,
		OpenTime:  open,
		CloseTime: closeTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		hours.IsActive = *req.IsActive
	}

	if (req.BreakStart == nil) != (req.BreakEnd == nil) {
		return nil, fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidInput)
	}
	if req.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*req.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("%w: breakStart: %v", ErrInvalidInput, err)
		}
		breakEnd, err := types.NewTimeStringFromString(*req.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: breakEnd: %v", ErrInvalidInput, err)
		}
		if !breakStart.IsBefore(breakEnd) {
			return nil, fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
		}
		// Перерыв должен лежать внутри рабочего дня
		if breakStart.IsBefore(open) || breakEnd.IsAfter(closeTime) {
			return nil, fmt.Errorf("%w: break must be within opening hours", ErrInvalidInput)
		}
		hours.BreakStart = &breakStart
		hours.BreakEnd = &breakEnd
	}

	return hours, nil
}

// validateSpecialDate проверяет особую дату и собирает доменную модель
// special_hours требует openTime/closeTime, holiday и closure их не допускают
func validateSpecialDate(req *models.CreateSpecialDateRequest, loc *time.Location) (*domain.SpecialDate, error) {
	date, err := types.ParseDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	sdType := domain.SpecialDateType(req.Type)
	if !sdType.IsValid() {
		return nil, fmt.Errorf("%w: type must be one of holiday, closure, special_hours", ErrInvalidInput)
	}

	if req.Name != nil && len(*req.Name) > domain.MaxSpecialDateNameLength {
		return nil, fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxSpecialDateNameLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	sd := &domain.SpecialDate{
		Date:  date,
		Type:  sdType,
		Name:  req.Name,
		Notes: req.Notes,
	}

	if sdType != domain.SpecialDateSpecialHours {
		if req.OpenTime != nil || req.CloseTime != nil {
			return nil, fmt.Errorf("%w: openTime and closeTime are allowed only for special_hours", ErrInvalidInput)
		}
		return sd, nil
	}

	if req.OpenTime == nil || req.CloseTime == nil {
		return nil, fmt.Errorf("%w: special_hours requires openTime and closeTime", ErrInvalidInput)
	}
	open, err := types.NewTimeStringFromString(*req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}
	if !open.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}
	sd.OpenTime = &open
	sd.CloseTime = &closeTime

	return sd, nil
}
