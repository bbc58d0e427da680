package views

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// ValidationField извлекает поле и причину из ошибки валидации сервиса доступности
func ValidationField(err error) (field, reason string, ok bool) {
	var vErr *availability.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Field, vErr.Reason, true
	}
	return "", "", false
}
