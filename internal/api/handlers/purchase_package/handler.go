package purchase_package

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/api/middleware"
	purchasePackage "github.com/holistia/booking-service/internal/usecase/purchase_package"
)

const (
	msgUnauthorized          = "se requiere autenticación"
	msgInvalidPatientID      = "ID de paciente inválido"
	msgInvalidRequestBody    = "cuerpo de la solicitud inválido"
	msgForbidden             = "acceso denegado"
	msgUnknownTier           = "paquete desconocido"
	msgUnknownPaymentMethod  = "método de pago desconocido"
	msgPaymentMethodDisabled = "método de pago no disponible"
	msgAmountOutOfRange      = "el monto está fuera de los límites del método de pago"
	msgCreditBelowMinimum    = "tu crédito disponible no alcanza el mínimo aplicable"
)

// PurchasePackageRequest is the HTTP request body.
type PurchasePackageRequest struct {
	Tier          string `json:"tier"`
	PaymentMethod string `json:"payment_method"`
	UseCredit     bool   `json:"use_credit,omitempty"`
}

type Handler struct {
	useCase PurchasePackageUseCase
	logger  Logger
}

func NewHandler(useCase PurchasePackageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/patients/{patientId}/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /patients/{id}/packages - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if requesterID != patientID {
		h.logger.Warn("POST /patients/{id}/packages - Access denied: patient_id=%d, requester_id=%d",
			patientID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req PurchasePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /patients/{id}/packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &purchasePackage.Request{
		PatientID:     patientID,
		Tier:          req.Tier,
		PaymentMethod: req.PaymentMethod,
		UseCredit:     req.UseCredit,
	})
	if err != nil {
		switch {
		case errors.Is(err, purchasePackage.ErrInvalidInput):
			h.logger.Warn("POST /patients/{id}/packages - Invalid input: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, purchasePackage.ErrUnknownTier):
			h.logger.Warn("POST /patients/{id}/packages - Unknown tier: patient_id=%d, tier=%q", patientID, req.Tier)
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, purchasePackage.ErrUnknownPaymentMethod):
			h.logger.Warn("POST /patients/{id}/packages - Unknown payment method: patient_id=%d, method=%q",
				patientID, req.PaymentMethod)
			handlers.RespondBadRequest(w, msgUnknownPaymentMethod)

		case errors.Is(err, purchasePackage.ErrPaymentMethodDisabled):
			h.logger.Warn("POST /patients/{id}/packages - Payment method disabled: patient_id=%d, method=%q",
				patientID, req.PaymentMethod)
			handlers.RespondBadRequest(w, msgPaymentMethodDisabled)

		case errors.Is(err, purchasePackage.ErrAmountOutOfRange):
			h.logger.Warn("POST /patients/{id}/packages - Amount out of range: patient_id=%d, tier=%q, method=%q",
				patientID, req.Tier, req.PaymentMethod)
			handlers.RespondBadRequest(w, msgAmountOutOfRange)

		case errors.Is(err, purchasePackage.ErrCreditBelowMinimum):
			h.logger.Warn("POST /patients/{id}/packages - Credit below minimum: patient_id=%d", patientID)
			handlers.RespondBadRequest(w, msgCreditBelowMinimum)

		default:
			h.logger.Error("POST /patients/{id}/packages - Failed to purchase: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /patients/{id}/packages - Package purchased: purchase_id=%d, patient_id=%d, tier=%s, charged=%d",
		result.ID, patientID, result.Tier, result.AmountCharged)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
