package reminders

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/notify"
)

// AppointmentRepository supplies upcoming appointments.
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// NotifyClient delivers reminders to the notification service.
type NotifyClient interface {
	SendReminder(ctx context.Context, reminder *notify.Reminder) error
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
