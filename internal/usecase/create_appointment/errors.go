package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrTooFarInAdvance возвращается, когда дата записи за пределами горизонта бронирования
	ErrTooFarInAdvance = errors.New("create_appointment: date is beyond booking horizon")

	// ErrShopClosed возвращается, когда мастерская закрыта в указанную дату
	ErrShopClosed = errors.New("create_appointment: shop is closed on this date")

	// ErrSlotNotAvailable возвращается, когда слот занят или не существует
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается, когда время слота сегодня уже наступило
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// FieldError ошибка валидации конкретного поля запроса
// errors.Is(err, ErrInvalidInput) == true
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field, format string, v ...interface{}) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, v...)}
}
