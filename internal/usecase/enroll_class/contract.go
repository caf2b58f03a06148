package enroll_class

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
)

// ClassSessionRepository is the persistence dependency for sessions and
// enrollments.
type ClassSessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSession, error)
	CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	HasEnrollment(ctx context.Context, sessionID, patientID int64) (bool, error)
}

// PackageRepository supplies and consumes the patient's class packages.
type PackageRepository interface {
	GetUsableByPatient(ctx context.Context, patientID int64, now time.Time) ([]*domain.PackagePurchase, error)
	ConsumeClass(ctx context.Context, id int64) error
}

// TransactionManager scopes the check-then-enroll sequence.
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
