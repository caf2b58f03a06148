package schedule_class

import "errors"

var (
	// ErrAccessDenied is returned when the requester is not clinic staff.
	ErrAccessDenied = errors.New("schedule_class: access denied")

	// ErrInstructorNotFound is returned when the instructor is not in the directory.
	ErrInstructorNotFound = errors.New("schedule_class: instructor not found")

	// ErrInstructorInactive is returned when the instructor no longer teaches.
	ErrInstructorInactive = errors.New("schedule_class: instructor is not active")

	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("schedule_class: invalid session date")

	// ErrInvalidCapacity is returned when the capacity violates the configured cap.
	ErrInvalidCapacity = errors.New("schedule_class: invalid session capacity")

	// ErrOutsideWorkingHours is returned when the session falls outside working
	// hours or crosses the lunch break.
	ErrOutsideWorkingHours = errors.New("schedule_class: outside working hours")

	// ErrRoomConflict is returned when the room is already booked in the window.
	ErrRoomConflict = errors.New("schedule_class: room is already booked")

	// ErrInstructorConflict is returned when the instructor is already booked.
	ErrInstructorConflict = errors.New("schedule_class: instructor is already booked")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("schedule_class: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("schedule_class: internal error")
)
