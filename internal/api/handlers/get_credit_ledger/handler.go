package get_credit_ledger

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
)

const (
	msgUnauthorized     = "se requiere autenticación"
	msgInvalidPatientID = "ID de paciente inválido"
	msgForbidden        = "acceso denegado"
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

// Handle GET /api/v1/patients/{patientId}/credits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{id}/credits - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if requesterID != patientID {
		h.logger.Warn("GET /patients/{id}/credits - Access denied: patient_id=%d, requester_id=%d",
			patientID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetLedger(r.Context(), patientID)
	if err != nil {
		h.logger.Error("GET /patients/{id}/credits - Failed to get ledger: patient_id=%d, error=%v",
			patientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
