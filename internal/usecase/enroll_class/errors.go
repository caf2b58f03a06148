package enroll_class

import "errors"

var (
	// ErrSessionNotFound is returned when the class session does not exist.
	ErrSessionNotFound = errors.New("enroll_class: session not found")

	// ErrSessionCancelled is returned when the session was cancelled.
	ErrSessionCancelled = errors.New("enroll_class: session is cancelled")

	// ErrSessionFull is returned when the session has no spots left.
	ErrSessionFull = errors.New("enroll_class: session is full")

	// ErrSessionStarted is returned when the session already started.
	ErrSessionStarted = errors.New("enroll_class: session already started")

	// ErrAlreadyEnrolled is returned when the patient holds a spot already.
	ErrAlreadyEnrolled = errors.New("enroll_class: patient already enrolled")

	// ErrNoUsablePackage is returned when the patient has no package able to
	// pay for the class.
	ErrNoUsablePackage = errors.New("enroll_class: no usable class package")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("enroll_class: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("enroll_class: internal error")
)
