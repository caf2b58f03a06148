package cancel_appointment

import (
	"time"

	cancelAppointment "github.com/holistia/booking-service/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest is the HTTP request body.
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CreditResponse reports the credit granted by the cancellation policy.
// Message is the policy text shown to the patient verbatim.
type CreditResponse struct {
	Amount    int64   `json:"amount"`
	Fraction  float64 `json:"fraction"`
	Message   string  `json:"message"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

// CancelAppointmentResponse is the HTTP response body.
type CancelAppointmentResponse struct {
	ID          int64          `json:"id"`
	Status      string         `json:"status"`
	CancelledAt string         `json:"cancelled_at"`
	Credit      CreditResponse `json:"credit"`
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	credit := CreditResponse{
		Amount:   resp.Credit.Amount,
		Fraction: resp.Credit.Fraction,
		Message:  resp.Credit.Message,
	}
	if resp.Credit.ExpiresAt != nil {
		expiresAt := resp.Credit.ExpiresAt.Format(time.RFC3339)
		credit.ExpiresAt = &expiresAt
	}

	return &CancelAppointmentResponse{
		ID:          resp.ID,
		Status:      resp.Status,
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
		Credit:      credit,
	}
}
