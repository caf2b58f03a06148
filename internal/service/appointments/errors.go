package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointments service: appointment not found")

	// ErrAccessDenied is returned when the requester may not see or change the
	// appointment.
	ErrAccessDenied = errors.New("appointments service: access denied")

	// ErrInvalidStatus is returned for unknown or unreachable status values.
	ErrInvalidStatus = errors.New("appointments service: invalid status")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("appointments service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("appointments service: internal error")
)
