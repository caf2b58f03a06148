package credit

import "errors"

var (
	// ErrEntryNotFound is returned when no ledger entry matches.
	ErrEntryNotFound = errors.New("credit.repository: entry not found")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("credit.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("credit.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("credit.repository: failed to scan row")
)
