package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerName     string    // Имя клиента
	CustomerPhone    string    // Телефон клиента
	CustomerEmail    *string   // Email (опционально)
	DeviceType       *string   // Тип устройства (опционально)
	IssueDescription *string   // Описание неисправности (опционально)
	Urgency          string    // normal или emergency, пусто = normal
	Date             time.Time // Дата записи (без времени)
	StartTime        string    // Время начала слота, HH:MM или HH:MM:SS
	Notes            *string   // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID               string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    *string
	DeviceType       *string
	IssueDescription *string
	Urgency          string
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	Status           string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
