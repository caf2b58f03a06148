package purchase_package

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
)

// PackageRepository persists package purchases.
type PackageRepository interface {
	Create(ctx context.Context, purchase *domain.PackagePurchase) (*domain.PackagePurchase, error)
}

// CreditRepository reads the ledger for balance derivation and appends the
// usage entry when credit pays part of the purchase.
type CreditRepository interface {
	GetByPatient(ctx context.Context, patientID int64) ([]*domain.CreditEntry, error)
	CreateEntry(ctx context.Context, entry *domain.CreditEntry) (*domain.CreditEntry, error)
}

// TransactionManager scopes the purchase-and-debit sequence.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; injected for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging dependency.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
