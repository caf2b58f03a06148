package models

import (
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/pkg/types"
)

// SessionResponse is the public view of one class session.
type SessionResponse struct {
	ID           int64            `json:"id"`
	InstructorID int64            `json:"instructor_id"`
	Title        string           `json:"title"`
	Date         time.Time        `json:"date"`
	StartTime    types.TimeString `json:"start_time"`
	DurationMin  int              `json:"duration_min"`
	Capacity     int              `json:"capacity"`
	SpotsLeft    int              `json:"spots_left"`
	Cancelled    bool             `json:"cancelled"`
}

// SessionListResponse wraps a day's schedule.
type SessionListResponse struct {
	Date     time.Time          `json:"date"`
	Sessions []*SessionResponse `json:"sessions"`
}

// FromDomainSession converts a session to the response model.
func FromDomainSession(session *domain.ClassSession) *SessionResponse {
	return &SessionResponse{
		ID:           session.ID,
		InstructorID: session.InstructorID,
		Title:        session.Title,
		Date:         session.Date,
		StartTime:    session.StartTime,
		DurationMin:  session.DurationMin,
		Capacity:     session.Capacity,
		SpotsLeft:    session.SpotsLeft(),
		Cancelled:    session.Cancelled,
	}
}
