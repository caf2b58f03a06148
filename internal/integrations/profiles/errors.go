package profiles

import "errors"

var (
	// ErrPatientNotFound is returned when the directory has no such patient.
	ErrPatientNotFound = errors.New("profiles client: patient not found")

	// ErrProfessionalNotFound is returned when the directory has no such professional.
	ErrProfessionalNotFound = errors.New("profiles client: professional not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("profiles client: internal error")

	// ErrInvalidResponse is returned on malformed or unexpected responses.
	ErrInvalidResponse = errors.New("profiles client: invalid response")
)
