package classes

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("classes service: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("classes service: internal error")
)
