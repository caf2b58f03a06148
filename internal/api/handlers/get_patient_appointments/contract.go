package get_patient_appointments

import (
	"context"

	"github.com/holistia/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
