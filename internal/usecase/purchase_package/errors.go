package purchase_package

import "errors"

var (
	// ErrUnknownTier is returned when the tier is not in the package table.
	ErrUnknownTier = errors.New("purchase_package: unknown package tier")

	// ErrUnknownPaymentMethod is returned for methods not in the payment table.
	ErrUnknownPaymentMethod = errors.New("purchase_package: unknown payment method")

	// ErrPaymentMethodDisabled is returned when the method is configured off.
	ErrPaymentMethodDisabled = errors.New("purchase_package: payment method is disabled")

	// ErrAmountOutOfRange is returned when the charged amount violates the
	// method's limits.
	ErrAmountOutOfRange = errors.New("purchase_package: amount outside the payment method limits")

	// ErrCreditBelowMinimum is returned when the available credit is below the
	// minimum usable amount.
	ErrCreditBelowMinimum = errors.New("purchase_package: credit balance below the usable minimum")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("purchase_package: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("purchase_package: internal error")
)
