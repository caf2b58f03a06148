package cancel_appointment

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
)

// AppointmentRepository is the persistence dependency for appointments.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason *string) error
}

// CreditRepository appends issued credit to the patient's ledger.
type CreditRepository interface {
	CreateEntry(ctx context.Context, entry *domain.CreditEntry) (*domain.CreditEntry, error)
}

// ProfilesClient resolves whether the requester is clinic staff.
type ProfilesClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*profiles.Professional, error)
}

// TransactionManager scopes the cancel-and-issue-credit sequence.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; injected for testing.
type TimeProvider interface {
	Now() time.Time
}

// Metrics records business-level counters.
type Metrics interface {
	AppointmentCancelled(creditAmount int64)
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

// NopMetrics is used when metrics are disabled.
type NopMetrics struct{}

func (NopMetrics) AppointmentCancelled(creditAmount int64) {}
