package domain

import (
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/schedule"
	"github.com/holistia/booking-service/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending            AppointmentStatus = "pending"
	StatusConfirmed          AppointmentStatus = "confirmed"
	StatusCompleted          AppointmentStatus = "completed"
	StatusCancelledByPatient AppointmentStatus = "cancelled_by_patient"
	StatusCancelledByClinic  AppointmentStatus = "cancelled_by_clinic"
	StatusNoShow             AppointmentStatus = "no_show"
)

// Appointment is a booked consultation with a professional in the clinic's
// consulting room.
type Appointment struct {
	ID             int64
	PatientID      int64
	ProfessionalID int64
	Date           time.Time
	StartTime      types.TimeString
	DurationMin    int
	Status         AppointmentStatus

	// Denormalized for history: the service name and price at booking time.
	ServiceName string
	Price       int64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByPatient &&
		a.Status != StatusCancelledByClinic &&
		a.Status != StatusNoShow
}

// CanBeCancelled reports whether the appointment may still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled reports whether the appointment may be moved.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// EndTime returns the appointment's end as a time of day.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMin)
}

// StartsAt combines the date and start time into a single timestamp in loc.
// Used to measure cancellation lead time against the clock.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	m := a.StartTime.Minutes()
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), m/60, m%60, 0, 0, loc)
}

// RoomPeriod projects the appointment onto the shared room resource.
func (a *Appointment) RoomPeriod() (schedule.Period, error) {
	end, err := a.EndTime()
	if err != nil {
		return schedule.Period{}, err
	}
	return schedule.Period{
		ID:       a.ID,
		Resource: RoomResource(),
		Date:     a.Date,
		Start:    a.StartTime,
		End:      end,
	}, nil
}

// ProfessionalPeriod projects the appointment onto its professional.
func (a *Appointment) ProfessionalPeriod() (schedule.Period, error) {
	end, err := a.EndTime()
	if err != nil {
		return schedule.Period{}, err
	}
	return schedule.Period{
		ID:       a.ID,
		Resource: ProfessionalResource(a.ProfessionalID),
		Date:     a.Date,
		Start:    a.StartTime,
		End:      end,
	}, nil
}

// RoomResource identifies the clinic's single physical room.
func RoomResource() string {
	return "room:" + MainRoom
}

// ProfessionalResource identifies a professional as a bookable resource.
func ProfessionalResource(professionalID int64) string {
	return fmt.Sprintf("professional:%d", professionalID)
}

// AppointmentsFilter narrows professional/clinic appointment listings.
type AppointmentsFilter struct {
	ProfessionalID  *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool
}
