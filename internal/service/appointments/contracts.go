package appointments

import (
	"context"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
)

// AppointmentRepository is the persistence dependency of the service.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatient(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// ProfilesClient resolves staff membership for access checks.
type ProfilesClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*profiles.Professional, error)
}

// Logger is the logging dependency.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
