package classsession

import "errors"

var (
	// ErrSessionNotFound is returned when no class session matches.
	ErrSessionNotFound = errors.New("classsession.repository: session not found")

	// ErrAlreadyEnrolled is returned on a duplicate enrollment insert.
	ErrAlreadyEnrolled = errors.New("classsession.repository: patient already enrolled")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("classsession.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("classsession.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("classsession.repository: failed to scan row")
)
