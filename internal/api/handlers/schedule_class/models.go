package schedule_class

import (
	"time"

	"github.com/holistia/booking-service/internal/domain"
	scheduleClass "github.com/holistia/booking-service/internal/usecase/schedule_class"
	"github.com/holistia/booking-service/pkg/types"
)

// ScheduleClassRequest is the HTTP request body.
type ScheduleClassRequest struct {
	InstructorID int64  `json:"instructor_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`       // "2026-03-09"
	StartTime    string `json:"start_time"` // "17:00"
	DurationMin  int    `json:"duration_min"`
	Capacity     int    `json:"capacity,omitempty"`
}

// SessionResponse is the HTTP response body.
type SessionResponse struct {
	ID           int64  `json:"id"`
	InstructorID int64  `json:"instructor_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DurationMin  int    `json:"duration_min"`
	Capacity     int    `json:"capacity"`
	SpotsLeft    int    `json:"spots_left"`
	CreatedAt    string `json:"created_at"`
}

// ToUseCaseRequest parses the date and time fields and builds the use case
// request for the authenticated requester.
func (r *ScheduleClassRequest) ToUseCaseRequest(requesterID int64) (*scheduleClass.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &scheduleClass.Request{
		RequesterID:  requesterID,
		InstructorID: r.InstructorID,
		Title:        r.Title,
		Date:         date,
		StartTime:    startTime,
		DurationMin:  r.DurationMin,
		Capacity:     r.Capacity,
	}, nil
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *scheduleClass.Response) *SessionResponse {
	return &SessionResponse{
		ID:           resp.ID,
		InstructorID: resp.InstructorID,
		Title:        resp.Title,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		DurationMin:  resp.DurationMin,
		Capacity:     resp.Capacity,
		SpotsLeft:    resp.SpotsLeft,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
