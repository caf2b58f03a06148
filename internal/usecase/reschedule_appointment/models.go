package reschedule_appointment

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// Request moves an appointment to a new slot.
type Request struct {
	AppointmentID int64
	// RequesterID is the authenticated user. Patients may move their own
	// appointments; clinic staff may move any.
	RequesterID int64
	Date        time.Time
	StartTime   types.TimeString
	// DurationMin is optional; zero keeps the current duration.
	DurationMin int
}

// Response is the appointment at its new slot.
type Response struct {
	ID             int64            `json:"id"`
	PatientID      int64            `json:"patient_id"`
	ProfessionalID int64            `json:"professional_id"`
	Date           time.Time        `json:"date"`
	StartTime      types.TimeString `json:"start_time"`
	EndTime        types.TimeString `json:"end_time"`
	DurationMin    int              `json:"duration_min"`
	Status         string           `json:"status"`
}
