package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied is returned when the requester is neither the owner nor
	// clinic staff.
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrCannotCancel is returned when the appointment is already finished or
	// cancelled.
	ErrCannotCancel = errors.New("cancel_appointment: appointment cannot be cancelled")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("cancel_appointment: internal error")
)
