package get_agenda

import (
	"context"

	"github.com/holistia/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetAgenda(ctx context.Context, req *models.GetAgendaRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
