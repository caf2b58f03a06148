package enroll_class

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	enrollClass "github.com/holistia/booking-service/internal/usecase/enroll_class"
)

const (
	msgUnauthorized     = "se requiere autenticación"
	msgInvalidSessionID = "ID de sesión inválido"
	msgSessionNotFound  = "sesión no encontrada"
	msgSessionCancelled = "la sesión fue cancelada"
	msgSessionFull      = "la sesión no tiene cupos disponibles"
	msgSessionStarted   = "la sesión ya comenzó"
	msgAlreadyEnrolled  = "ya estás inscrito en esta sesión"
	msgNoUsablePackage  = "no tienes un paquete de clases vigente"
)

type Handler struct {
	useCase EnrollClassUseCase
	logger  Logger
}

func NewHandler(useCase EnrollClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/classes/{sessionId}/enrollments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /classes/{id}/enrollments - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &enrollClass.Request{
		SessionID: sessionID,
		PatientID: patientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, enrollClass.ErrInvalidInput):
			h.logger.Warn("POST /classes/{id}/enrollments - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		case errors.Is(err, enrollClass.ErrSessionNotFound):
			h.logger.Warn("POST /classes/{id}/enrollments - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, enrollClass.ErrSessionCancelled):
			h.logger.Warn("POST /classes/{id}/enrollments - Session cancelled: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgSessionCancelled)

		case errors.Is(err, enrollClass.ErrSessionFull):
			h.logger.Warn("POST /classes/{id}/enrollments - Session full: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, enrollClass.ErrSessionStarted):
			h.logger.Warn("POST /classes/{id}/enrollments - Session started: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgSessionStarted)

		case errors.Is(err, enrollClass.ErrAlreadyEnrolled):
			h.logger.Warn("POST /classes/{id}/enrollments - Already enrolled: session_id=%d, patient_id=%d",
				sessionID, patientID)
			handlers.RespondConflict(w, msgAlreadyEnrolled)

		case errors.Is(err, enrollClass.ErrNoUsablePackage):
			h.logger.Warn("POST /classes/{id}/enrollments - No usable package: patient_id=%d", patientID)
			handlers.RespondConflict(w, msgNoUsablePackage)

		default:
			h.logger.Error("POST /classes/{id}/enrollments - Failed to enroll: session_id=%d, patient_id=%d, error=%v",
				sessionID, patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /classes/{id}/enrollments - Enrolled: enrollment_id=%d, session_id=%d, patient_id=%d",
		result.EnrollmentID, sessionID, patientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
