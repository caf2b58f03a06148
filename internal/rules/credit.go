package rules

import (
	"fmt"
	"math"
	"time"
)

// CancellationTier grants a credit fraction when a cancellation happens at
// least MinHoursBefore hours before the appointment. The lower bound is
// inclusive: cancelling at exactly the threshold earns the tier.
type CancellationTier struct {
	MinHoursBefore float64
	Fraction       float64
}

// CancellationPolicy is the ordered tier table for cancellation credits.
// Tiers are evaluated from the most generous threshold down; the first match
// wins. Anything below the last threshold (including cancelling after the
// appointment already started) earns no credit.
type CancellationPolicy struct {
	Tiers []CancellationTier

	// User-facing messages. PartialCreditFormat interpolates the integer
	// percentage; clients pattern-match on the "<N>%" substring, so the
	// format must keep the literal percent sign next to the number.
	FullCreditMessage   string
	PartialCreditFormat string
	NoCreditMessage     string
}

// CreditQuote is the outcome of evaluating the cancellation policy against a
// concrete appointment. It is computed fresh on every request and never
// stored; the caller persists Amount as a credit ledger entry.
type CreditQuote struct {
	// Amount is the credit in the smallest currency unit (COP).
	Amount int64
	// Fraction is the granted tier fraction in [0, 1].
	Fraction float64
	Message  string
}

// Quote computes the credit earned by cancelling at cancelledAt an
// appointment starting at appointmentAt, paid at the given price.
//
// The function is total: it never fails and has no side effects. Inputs are
// assumed pre-validated by the caller's form/request validation (price
// non-negative, parseable timestamps).
func (p CancellationPolicy) Quote(appointmentAt, cancelledAt time.Time, price int64) CreditQuote {
	hoursBefore := appointmentAt.Sub(cancelledAt).Hours()

	for _, tier := range p.Tiers {
		if hoursBefore >= tier.MinHoursBefore {
			return CreditQuote{
				Amount:   roundHalfUp(float64(price) * tier.Fraction),
				Fraction: tier.Fraction,
				Message:  p.messageFor(tier.Fraction),
			}
		}
	}

	return CreditQuote{Amount: 0, Fraction: 0, Message: p.NoCreditMessage}
}

func (p CancellationPolicy) messageFor(fraction float64) string {
	if fraction >= 1 {
		return p.FullCreditMessage
	}
	return fmt.Sprintf(p.PartialCreditFormat, int(math.Round(fraction*100)))
}

// roundHalfUp rounds to the nearest integer, with .5 rounding away from zero
// toward the patient's favor. The tie-break is part of the public contract:
// credit amounts are user-visible money.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
