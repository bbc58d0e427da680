package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	CustomerEmail    *string `json:"customerEmail,omitempty"`
	DeviceType       *string `json:"deviceType,omitempty"`
	IssueDescription *string `json:"issueDescription,omitempty"`
	Urgency          string  `json:"urgency,omitempty"` // normal | emergency
	Date             string  `json:"date"`              // "2025-01-06"
	StartTime        string  `json:"startTime"`         // "10:00"
	Notes            *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               string  `json:"id"`
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	CustomerEmail    *string `json:"customerEmail,omitempty"`
	DeviceType       *string `json:"deviceType,omitempty"`
	IssueDescription *string `json:"issueDescription,omitempty"`
	Urgency          string  `json:"urgency"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	date, err := types.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		CustomerEmail:    r.CustomerEmail,
		DeviceType:       r.DeviceType,
		IssueDescription: r.IssueDescription,
		Urgency:          r.Urgency,
		Date:             date,
		StartTime:        r.StartTime,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               resp.ID,
		CustomerName:     resp.CustomerName,
		CustomerPhone:    resp.CustomerPhone,
		CustomerEmail:    resp.CustomerEmail,
		DeviceType:       resp.DeviceType,
		IssueDescription: resp.IssueDescription,
		Urgency:          resp.Urgency,
		Date:             types.FormatDate(resp.Date),
		StartTime:        resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
