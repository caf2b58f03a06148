package credits

import "errors"

var (
	// ErrAlreadyGranted is returned when the patient already received the
	// welcome bonus.
	ErrAlreadyGranted = errors.New("credits service: welcome bonus already granted")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("credits service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("credits service: internal error")
)
