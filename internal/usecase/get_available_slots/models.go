package get_available_slots

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// Request asks for the bookable slots of one professional on one date.
type Request struct {
	ProfessionalID int64
	Date           time.Time
	// DurationMin is optional; zero means the configured default. It sets
	// both the slot length and the grid step.
	DurationMin int
}

// Response lists the slots still bookable at request time.
type Response struct {
	ProfessionalID int64     `json:"professional_id"`
	Date           time.Time `json:"date"`
	DurationMin    int       `json:"duration_min"`
	Slots          []Slot    `json:"slots"`
}

// Slot is one bookable window.
type Slot struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}
