package get_available_slots

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
)

// AppointmentRepository supplies the day's active appointments.
type AppointmentRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// ClassSessionRepository supplies the class sessions occupying the room.
type ClassSessionRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ClassSession, error)
}

// ProfilesClient is the professional directory dependency.
type ProfilesClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*profiles.Professional, error)
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
