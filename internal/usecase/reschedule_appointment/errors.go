package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied is returned when the requester is neither the owner nor
	// clinic staff.
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule is returned when the appointment is already finished
	// or cancelled.
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance-booking window.
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrInvalidDuration is returned when the duration violates the configured bounds.
	ErrInvalidDuration = errors.New("reschedule_appointment: invalid duration")

	// ErrOutsideWorkingHours is returned when the new slot falls outside
	// working hours or crosses the lunch break.
	ErrOutsideWorkingHours = errors.New("reschedule_appointment: outside working hours")

	// ErrTooLateToBook is returned when the new slot violates the minimum notice.
	ErrTooLateToBook = errors.New("reschedule_appointment: too late to book this slot")

	// ErrRoomConflict is returned when the room is already booked in the new window.
	ErrRoomConflict = errors.New("reschedule_appointment: room is already booked")

	// ErrProfessionalConflict is returned when the professional is already booked.
	ErrProfessionalConflict = errors.New("reschedule_appointment: professional is already booked")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
