package create_appointment

import (
	"errors"
	"net/http"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	createAppointment "github.com/holistia/booking-service/internal/usecase/create_appointment"
)

const (
	msgUnauthorized         = "se requiere autenticación"
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime    = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgPatientNotFound      = "paciente no encontrado"
	msgProfessionalNotFound = "profesional no encontrado"
	msgProfessionalInactive = "el profesional no está activo"
	msgInvalidDate          = "la fecha de la cita no es válida"
	msgDateTooFar           = "la fecha de la cita está demasiado lejos en el futuro"
	msgInvalidDuration      = "la duración de la cita no es válida"
	msgOutsideWorkingHours  = "el horario seleccionado está fuera del horario de atención"
	msgTooLateToBook        = "es demasiado tarde para reservar este horario"
	msgDailyLimitReached    = "has alcanzado el límite de citas para ese día"
	msgTooManyPending       = "tienes demasiadas citas pendientes de confirmación"
	msgSlotTaken            = "el horario seleccionado ya no está disponible"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createAppointment.ErrProfessionalNotFound):
			h.logger.Warn("POST /appointments - Professional not found: professional_id=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createAppointment.ErrProfessionalInactive):
			h.logger.Warn("POST /appointments - Professional inactive: professional_id=%d", req.ProfessionalID)
			handlers.RespondBadRequest(w, msgProfessionalInactive)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: patient_id=%d, date=%s", patientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: patient_id=%d, date=%s", patientID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: patient_id=%d, duration=%d", patientID, req.DurationMin)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: patient_id=%d, date=%s, start=%s",
				patientID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: patient_id=%d, date=%s, start=%s",
				patientID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrDailyLimitReached):
			h.logger.Warn("POST /appointments - Daily limit reached: patient_id=%d, date=%s", patientID, req.Date)
			handlers.RespondConflict(w, msgDailyLimitReached)

		case errors.Is(err, createAppointment.ErrTooManyPending):
			h.logger.Warn("POST /appointments - Too many pending: patient_id=%d", patientID)
			handlers.RespondConflict(w, msgTooManyPending)

		case errors.Is(err, createAppointment.ErrRoomConflict),
			errors.Is(err, createAppointment.ErrProfessionalConflict):
			h.logger.Warn("POST /appointments - Slot taken: patient_id=%d, professional_id=%d, date=%s, start=%s",
				patientID, req.ProfessionalID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, patient_id=%d, professional_id=%d",
		result.ID, patientID, req.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
