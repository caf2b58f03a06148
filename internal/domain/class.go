package domain

import (
	"time"

	"github.com/holistia/booking-service/internal/schedule"
	"github.com/holistia/booking-service/pkg/types"
)

// ClassSession is a scheduled Breathe & Move group class in the clinic room.
type ClassSession struct {
	ID           int64
	InstructorID int64
	Title        string
	Date         time.Time
	StartTime    types.TimeString
	DurationMin  int
	Capacity     int
	Enrolled     int
	Cancelled    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull reports whether the session has no spots left.
func (s *ClassSession) IsFull() bool {
	return s.Enrolled >= s.Capacity
}

// SpotsLeft returns the remaining enrollment capacity.
func (s *ClassSession) SpotsLeft() int {
	left := s.Capacity - s.Enrolled
	if left < 0 {
		return 0
	}
	return left
}

// IsActive reports whether the session still occupies the room.
func (s *ClassSession) IsActive() bool {
	return !s.Cancelled
}

// EndTime returns the session's end as a time of day.
func (s *ClassSession) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMin)
}

// RoomPeriod projects the session onto the shared room resource.
func (s *ClassSession) RoomPeriod() (schedule.Period, error) {
	end, err := s.EndTime()
	if err != nil {
		return schedule.Period{}, err
	}
	return schedule.Period{
		ID:       s.ID,
		Resource: RoomResource(),
		Date:     s.Date,
		Start:    s.StartTime,
		End:      end,
	}, nil
}

// InstructorPeriod projects the session onto its instructor. Instructors are
// professionals, so an instructor teaching a class cannot simultaneously hold
// an appointment.
func (s *ClassSession) InstructorPeriod() (schedule.Period, error) {
	end, err := s.EndTime()
	if err != nil {
		return schedule.Period{}, err
	}
	return schedule.Period{
		ID:       s.ID,
		Resource: ProfessionalResource(s.InstructorID),
		Date:     s.Date,
		Start:    s.StartTime,
		End:      end,
	}, nil
}

// Enrollment is one patient's spot in a class session.
type Enrollment struct {
	ID        int64
	SessionID int64
	PatientID int64
	// PurchaseID links the enrollment to the package that paid for it.
	PurchaseID int64
	CreatedAt  time.Time
}
