package schedule

import "errors"

var (
	// ErrLoadBusinessHours возвращается при ошибке чтения расписания из БД
	ErrLoadBusinessHours = errors.New("schedule.cache: failed to load business hours")

	// ErrLoadSpecialDates возвращается при ошибке чтения особых дат из БД
	ErrLoadSpecialDates = errors.New("schedule.cache: failed to load special dates")
)
