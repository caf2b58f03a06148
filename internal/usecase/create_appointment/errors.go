package create_appointment

import "errors"

var (
	// ErrPatientNotFound is returned when the patient is not in the directory.
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrProfessionalNotFound is returned when the professional is not in the directory.
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrProfessionalInactive is returned when the professional no longer takes bookings.
	ErrProfessionalInactive = errors.New("create_appointment: professional is not active")

	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance-booking window.
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidDuration is returned when the duration violates the configured bounds.
	ErrInvalidDuration = errors.New("create_appointment: invalid duration")

	// ErrOutsideWorkingHours is returned when the slot falls outside working hours
	// or crosses the lunch break.
	ErrOutsideWorkingHours = errors.New("create_appointment: outside working hours")

	// ErrTooLateToBook is returned when the slot violates the minimum notice.
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrDailyLimitReached is returned when the patient hit the per-day cap.
	ErrDailyLimitReached = errors.New("create_appointment: daily appointment limit reached")

	// ErrTooManyPending is returned when the patient has too many unconfirmed appointments.
	ErrTooManyPending = errors.New("create_appointment: too many pending appointments")

	// ErrRoomConflict is returned when the room is already booked in the window.
	ErrRoomConflict = errors.New("create_appointment: room is already booked")

	// ErrProfessionalConflict is returned when the professional is already booked.
	ErrProfessionalConflict = errors.New("create_appointment: professional is already booked")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_appointment: internal error")
)
