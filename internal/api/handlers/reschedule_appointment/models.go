package reschedule_appointment

import (
	"time"

	"github.com/holistia/booking-service/internal/domain"
	rescheduleAppointment "github.com/holistia/booking-service/internal/usecase/reschedule_appointment"
	"github.com/holistia/booking-service/pkg/types"
)

// RescheduleAppointmentRequest is the HTTP request body.
type RescheduleAppointmentRequest struct {
	Date        string `json:"date"`       // "2026-03-09"
	StartTime   string `json:"start_time"` // "10:00"
	DurationMin int    `json:"duration_min,omitempty"`
}

// AppointmentResponse is the HTTP response body.
type AppointmentResponse struct {
	ID             int64  `json:"id"`
	PatientID      int64  `json:"patient_id"`
	ProfessionalID int64  `json:"professional_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	DurationMin    int    `json:"duration_min"`
	Status         string `json:"status"`
}

// ToUseCaseRequest parses the date and time fields and builds the use case
// request for the authenticated requester.
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, requesterID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		RequesterID:   requesterID,
		Date:          date,
		StartTime:     startTime,
		DurationMin:   r.DurationMin,
	}, nil
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		PatientID:      resp.PatientID,
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		DurationMin:    resp.DurationMin,
		Status:         resp.Status,
	}
}
