package create_appointment

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// Request carries the data needed to book an appointment.
type Request struct {
	PatientID      int64
	ProfessionalID int64
	Date           time.Time
	StartTime      types.TimeString
	// DurationMin is optional; zero means the configured default.
	DurationMin int
	ServiceName string
	Price       int64
	Notes       *string
}

// Response is the created appointment.
type Response struct {
	ID             int64            `json:"id"`
	PatientID      int64            `json:"patient_id"`
	ProfessionalID int64            `json:"professional_id"`
	Date           time.Time        `json:"date"`
	StartTime      types.TimeString `json:"start_time"`
	EndTime        types.TimeString `json:"end_time"`
	DurationMin    int              `json:"duration_min"`
	Status         string           `json:"status"`
	ServiceName    string           `json:"service_name"`
	Price          int64            `json:"price"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
