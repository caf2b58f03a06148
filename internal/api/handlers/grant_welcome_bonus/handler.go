package grant_welcome_bonus

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	"github.com/holistia/booking-service/internal/service/credits"
)

const (
	msgUnauthorized     = "se requiere autenticación"
	msgInvalidPatientID = "ID de paciente inválido"
	msgForbidden        = "acceso denegado"
	msgAlreadyGranted   = "el bono de bienvenida ya fue otorgado"
)

type Handler struct {
	service CreditsService
	logger  Logger
}

func NewHandler(service CreditsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/patients/{patientId}/credits/welcome
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /patients/{id}/credits/welcome - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if requesterID != patientID {
		h.logger.Warn("POST /patients/{id}/credits/welcome - Access denied: patient_id=%d, requester_id=%d",
			patientID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GrantWelcomeBonus(r.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, credits.ErrAlreadyGranted):
			h.logger.Warn("POST /patients/{id}/credits/welcome - Already granted: patient_id=%d", patientID)
			handlers.RespondConflict(w, msgAlreadyGranted)

		default:
			h.logger.Error("POST /patients/{id}/credits/welcome - Failed to grant: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /patients/{id}/credits/welcome - Bonus granted: patient_id=%d, amount=%d",
		patientID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
