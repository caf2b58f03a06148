package classes

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
)

// ClassSessionRepository is the persistence dependency of the service.
type ClassSessionRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.ClassSession, error)
}

// Logger is the logging dependency.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
