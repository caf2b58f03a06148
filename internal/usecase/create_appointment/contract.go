package create_appointment

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
)

// AppointmentRepository is the persistence dependency for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	CountActiveByPatientOnDate(ctx context.Context, patientID int64, date time.Time) (int, error)
	CountPendingByPatient(ctx context.Context, patientID int64) (int, error)
}

// ClassSessionRepository supplies the class sessions competing for the room.
type ClassSessionRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ClassSession, error)
}

// ProfilesClient is the patient/professional directory dependency.
type ProfilesClient interface {
	GetPatient(ctx context.Context, patientID int64) (*profiles.Patient, error)
	GetProfessional(ctx context.Context, professionalID int64) (*profiles.Professional, error)
}

// TransactionManager scopes the check-then-insert sequence.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; injected for testing.
type TimeProvider interface {
	Now() time.Time
}

// Metrics records business-level counters.
type Metrics interface {
	AppointmentCreated()
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

func (NopMetrics) AppointmentCreated()              {}
func (NopMetrics) ConflictRejected(resource string) {}
