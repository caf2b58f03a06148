package reminders

import "errors"

// ErrInternal is returned on unexpected failures.
var ErrInternal = errors.New("reminders service: internal error")
