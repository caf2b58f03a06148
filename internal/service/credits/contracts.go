package credits

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
)

// CreditRepository is the ledger persistence dependency.
type CreditRepository interface {
	GetByPatient(ctx context.Context, patientID int64) ([]*domain.CreditEntry, error)
	CreateEntry(ctx context.Context, entry *domain.CreditEntry) (*domain.CreditEntry, error)
	HasEntryWithReason(ctx context.Context, patientID int64, reason domain.CreditReason) (bool, error)
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
