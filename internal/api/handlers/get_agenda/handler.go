package get_agenda

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/service/appointments"
	"github.com/holistia/booking-service/internal/service/appointments/models"
)

const (
	msgUnauthorized          = "se requiere autenticación"
	msgInvalidProfessionalID = "ID de profesional inválido"
	msgInvalidDate           = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidStatus         = "estado de cita inválido"
	msgForbidden             = "acceso denegado"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agenda
//
// Query parameters: professional_id, start_date, end_date, status,
// include_inactive. Professionals see their own agenda; clinic staff may
// query any professional or the whole clinic.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.GetAgendaRequest{RequesterID: requesterID}
	query := r.URL.Query()

	if raw := query.Get("professional_id"); raw != "" {
		professionalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /agenda - Invalid professional ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)
			return
		}
		req.ProfessionalID = &professionalID
	}

	for _, bound := range []struct {
		param  string
		target **time.Time
	}{
		{"start_date", &req.StartDate},
		{"end_date", &req.EndDate},
	} {
		raw := query.Get(bound.param)
		if raw == "" {
			continue
		}
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /agenda - Invalid %s: %v", bound.param, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		*bound.target = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("include_inactive") == "true"

	result, err := h.service.GetAgenda(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /agenda - Access denied: requester_id=%d", requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /agenda - Invalid status filter: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /agenda - Failed to list: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
