package get_available_slots

import "errors"

var (
	// ErrProfessionalNotFound is returned when the professional is not in the directory.
	ErrProfessionalNotFound = errors.New("get_available_slots: professional not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
