package domain

import (
	"time"

	"github.com/holistia/booking-service/internal/rules"
)

// PackagePurchase is a patient's purchased Breathe & Move class package.
type PackagePurchase struct {
	ID        int64
	PatientID int64
	// Tier is the package key in the Breathe & Move rules table.
	Tier string
	// ClassesLeft counts down with each enrollment;
	// rules.UnlimitedClasses means it never decrements.
	ClassesLeft   int
	PricePaid     int64
	PaymentMethod string
	CreditApplied int64
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsUnlimited reports whether the package has no class count limit.
func (p *PackagePurchase) IsUnlimited() bool {
	return p.ClassesLeft == rules.UnlimitedClasses
}

// IsUsable reports whether the package can pay for a class at now.
func (p *PackagePurchase) IsUsable(now time.Time) bool {
	if now.After(p.ExpiresAt) {
		return false
	}
	return p.IsUnlimited() || p.ClassesLeft > 0
}
