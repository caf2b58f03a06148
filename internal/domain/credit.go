package domain

import "time"

// CreditReason is the business reason behind a ledger entry.
type CreditReason string

const (
	CreditReasonCancellation CreditReason = "cancellation"
	CreditReasonWelcome      CreditReason = "welcome_bonus"
	CreditReasonUsage        CreditReason = "usage"
	CreditReasonAdjustment   CreditReason = "adjustment"
)

// CreditEntry is one row of a patient's credit ledger. Positive amounts issue
// credit, negative amounts consume it. Entries are append-only; the available
// balance is derived, never stored.
type CreditEntry struct {
	ID        int64
	PatientID int64
	// Reference is an external identifier for reconciliation with the
	// hosted backend and payment records.
	Reference   string
	Amount      int64
	Reason      CreditReason
	Description string
	// ExpiresAt is nil for consumption entries; issued credit carries the
	// expiry derived from the credit rules at issue time.
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the entry's credit is no longer usable at now.
func (e *CreditEntry) IsExpired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// AvailableCredit folds a ledger into the balance usable at now. Expired
// issue entries do not count; consumption entries always do. The floor is
// zero: spending credit that later expires never leaves a debt.
func AvailableCredit(entries []*CreditEntry, now time.Time) int64 {
	var balance int64
	for _, entry := range entries {
		if entry.Amount > 0 && entry.IsExpired(now) {
			continue
		}
		balance += entry.Amount
	}
	if balance < 0 {
		return 0
	}
	return balance
}
