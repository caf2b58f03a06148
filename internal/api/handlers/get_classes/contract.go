package get_classes

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/service/classes/models"
)

type ClassesService interface {
	GetByDate(ctx context.Context, date time.Time) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
