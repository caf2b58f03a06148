package packagepurchase

import "errors"

var (
	// ErrPurchaseNotFound is returned when no purchase matches.
	ErrPurchaseNotFound = errors.New("packagepurchase.repository: purchase not found")

	// ErrNoClassesLeft is returned when decrementing an exhausted package.
	ErrNoClassesLeft = errors.New("packagepurchase.repository: no classes left")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("packagepurchase.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("packagepurchase.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("packagepurchase.repository: failed to scan row")
)
