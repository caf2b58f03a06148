package models

import (
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/pkg/types"
)

// AppointmentResponse is the service-level view of one appointment.
type AppointmentResponse struct {
	ID                 int64            `json:"id"`
	PatientID          int64            `json:"patient_id"`
	ProfessionalID     int64            `json:"professional_id"`
	Date               time.Time        `json:"date"`
	StartTime          types.TimeString `json:"start_time"`
	DurationMin        int              `json:"duration_min"`
	Status             string           `json:"status"`
	ServiceName        string           `json:"service_name"`
	Price              int64            `json:"price"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AppointmentListResponse wraps a listing with its count.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// GetPatientAppointmentsRequest filters a patient's history.
type GetPatientAppointmentsRequest struct {
	PatientID int64
	Status    *string
}

// GetAgendaRequest filters the clinic or professional agenda.
type GetAgendaRequest struct {
	// RequesterID is the authenticated user; must be a professional.
	RequesterID    int64
	ProfessionalID *int64
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *string
	// IncludeInactive also lists cancelled and no-show appointments.
	IncludeInactive bool
}

// UpdateStatusRequest moves an appointment through its lifecycle.
type UpdateStatusRequest struct {
	// RequesterID is the authenticated user; must be clinic staff.
	RequesterID   int64
	AppointmentID int64
	Status        string
}

// FromDomainAppointment converts a domain appointment to the response model.
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		PatientID:          appt.PatientID,
		ProfessionalID:     appt.ProfessionalID,
		Date:               appt.Date,
		StartTime:          appt.StartTime,
		DurationMin:        appt.DurationMin,
		Status:             string(appt.Status),
		ServiceName:        appt.ServiceName,
		Price:              appt.Price,
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointments converts a domain listing to the response model.
func FromDomainAppointments(appts []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		out[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}

// ToDomainStatus parses a status string into the domain type.
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	switch status := domain.AppointmentStatus(s); status {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByPatient,
		domain.StatusCancelledByClinic,
		domain.StatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}
