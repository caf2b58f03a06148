package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPaymentMethod is returned for methods absent from the table.
	ErrUnknownPaymentMethod = errors.New("rules: unknown payment method")

	// ErrPaymentMethodDisabled is returned for configured but disabled methods.
	ErrPaymentMethodDisabled = errors.New("rules: payment method is disabled")

	// ErrAmountOutOfRange is returned when the amount violates the method limits.
	ErrAmountOutOfRange = errors.New("rules: amount outside payment method limits")
)

// MethodLimits are the per-payment-method transaction limits.
type MethodLimits struct {
	Enabled   bool
	MinAmount int64
	MaxAmount int64
}

// PaymentRules is the declarative payment-method table. It follows the same
// shape as the rest of the engine: a policy table plus a pure validator.
type PaymentRules struct {
	Methods map[string]MethodLimits
}

// ValidateAmount checks a proposed amount against a payment method before any
// gateway call is attempted. Amounts are in the smallest currency unit.
func (p PaymentRules) ValidateAmount(method string, amount int64) error {
	limits, ok := p.Methods[method]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}
	if !limits.Enabled {
		return fmt.Errorf("%w: %q", ErrPaymentMethodDisabled, method)
	}
	if amount < limits.MinAmount || amount > limits.MaxAmount {
		return fmt.Errorf("%w: %d not in [%d, %d] for %q",
			ErrAmountOutOfRange, amount, limits.MinAmount, limits.MaxAmount, method)
	}
	return nil
}
