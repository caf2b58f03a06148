package schedule_class

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// Request schedules one Breathe & Move session in the clinic room.
type Request struct {
	// RequesterID is the authenticated user; must be clinic staff.
	RequesterID  int64
	InstructorID int64
	Title        string
	Date         time.Time
	StartTime    types.TimeString
	DurationMin  int
	// Capacity is optional; zero means the configured session cap.
	Capacity int
}

// Response is the scheduled session.
type Response struct {
	ID           int64            `json:"id"`
	InstructorID int64            `json:"instructor_id"`
	Title        string           `json:"title"`
	Date         time.Time        `json:"date"`
	StartTime    types.TimeString `json:"start_time"`
	EndTime      types.TimeString `json:"end_time"`
	DurationMin  int              `json:"duration_min"`
	Capacity     int              `json:"capacity"`
	SpotsLeft    int              `json:"spots_left"`
	CreatedAt    time.Time        `json:"created_at"`
}
