package reschedule_appointment

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
)

// AppointmentRepository is the persistence dependency for appointments.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, id int64, date time.Time, startTime string, durationMin int) error
}

// ClassSessionRepository supplies the class sessions competing for the room.
type ClassSessionRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ClassSession, error)
}

// ProfilesClient resolves whether the requester is clinic staff.
type ProfilesClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*profiles.Professional, error)
}

// TransactionManager scopes the check-then-move sequence.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; injected for testing.
type TimeProvider interface {
	Now() time.Time
}

// Metrics records business-level counters.
type Metrics interface {
	ConflictRejected(resource string)
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

func (NopMetrics) ConflictRejected(resource string) {}
