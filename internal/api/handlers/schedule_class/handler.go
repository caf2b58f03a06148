package schedule_class

import (
	"errors"
	"net/http"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	scheduleClass "github.com/holistia/booking-service/internal/usecase/schedule_class"
)

const (
	msgUnauthorized        = "se requiere autenticación"
	msgInvalidRequestBody  = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime   = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgForbidden           = "acceso denegado"
	msgInstructorNotFound  = "instructor no encontrado"
	msgInstructorInactive  = "el instructor no está activo"
	msgInvalidDate         = "la fecha de la sesión no es válida"
	msgInvalidCapacity     = "la capacidad de la sesión no es válida"
	msgOutsideWorkingHours = "el horario seleccionado está fuera del horario de atención"
	msgSlotTaken           = "el horario seleccionado ya no está disponible"
)

type Handler struct {
	useCase ScheduleClassUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/classes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ScheduleClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /classes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /classes - Failed to parse date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleClass.ErrInvalidInput):
			h.logger.Warn("POST /classes - Invalid input: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, scheduleClass.ErrAccessDenied):
			h.logger.Warn("POST /classes - Access denied: requester_id=%d", requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleClass.ErrInstructorNotFound):
			h.logger.Warn("POST /classes - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, scheduleClass.ErrInstructorInactive):
			h.logger.Warn("POST /classes - Instructor inactive: instructor_id=%d", req.InstructorID)
			handlers.RespondBadRequest(w, msgInstructorInactive)

		case errors.Is(err, scheduleClass.ErrInvalidDate):
			h.logger.Warn("POST /classes - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, scheduleClass.ErrInvalidCapacity):
			h.logger.Warn("POST /classes - Invalid capacity: capacity=%d", req.Capacity)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, scheduleClass.ErrOutsideWorkingHours):
			h.logger.Warn("POST /classes - Outside working hours: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, scheduleClass.ErrRoomConflict),
			errors.Is(err, scheduleClass.ErrInstructorConflict):
			h.logger.Warn("POST /classes - Slot taken: instructor_id=%d, date=%s, start=%s",
				req.InstructorID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /classes - Failed to schedule session: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /classes - Session scheduled: session_id=%d, instructor_id=%d, date=%s",
		result.ID, req.InstructorID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
