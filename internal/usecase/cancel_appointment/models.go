package cancel_appointment

import "time"

// Request identifies the appointment to cancel and who is asking.
type Request struct {
	AppointmentID int64
	// RequesterID is the authenticated user. Patients may cancel their own
	// appointments; clinic staff may cancel any.
	RequesterID int64
	Reason      *string
}

// CreditResult is the credit granted by the cancellation policy.
type CreditResult struct {
	Amount   int64   `json:"amount"`
	Fraction float64 `json:"fraction"`
	Message  string  `json:"message"`
	// ExpiresAt is present only when credit was issued.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Response reports the cancelled appointment and its credit outcome.
type Response struct {
	ID          int64        `json:"id"`
	Status      string       `json:"status"`
	CancelledAt time.Time    `json:"cancelled_at"`
	Credit      CreditResult `json:"credit"`
}
