package create_appointment

import (
	"time"

	"github.com/holistia/booking-service/internal/domain"
	createAppointment "github.com/holistia/booking-service/internal/usecase/create_appointment"
	"github.com/holistia/booking-service/pkg/types"
)

// CreateAppointmentRequest is the HTTP request body. The patient is taken
// from the authenticated identity, not from the body.
type CreateAppointmentRequest struct {
	ProfessionalID int64   `json:"professional_id"`
	Date           string  `json:"date"`       // "2026-03-09"
	StartTime      string  `json:"start_time"` // "10:00"
	DurationMin    int     `json:"duration_min,omitempty"`
	ServiceName    string  `json:"service_name"`
	Price          int64   `json:"price"`
	Notes          *string `json:"notes,omitempty"`
}

// AppointmentResponse is the HTTP response body.
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	PatientID      int64   `json:"patient_id"`
	ProfessionalID int64   `json:"professional_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	DurationMin    int     `json:"duration_min"`
	Status         string  `json:"status"`
	ServiceName    string  `json:"service_name"`
	Price          int64   `json:"price"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ToUseCaseRequest parses the date and time fields and builds the use case
// request for the authenticated patient.
func (r *CreateAppointmentRequest) ToUseCaseRequest(patientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:      patientID,
		ProfessionalID: r.ProfessionalID,
		Date:           date,
		StartTime:      startTime,
		DurationMin:    r.DurationMin,
		ServiceName:    r.ServiceName,
		Price:          r.Price,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		PatientID:      resp.PatientID,
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		DurationMin:    resp.DurationMin,
		Status:         resp.Status,
		ServiceName:    resp.ServiceName,
		Price:          resp.Price,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
