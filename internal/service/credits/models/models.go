package models

import (
	"time"

	"github.com/holistia/booking-service/internal/domain"
)

// EntryResponse is one ledger row.
type EntryResponse struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"`
	Amount      int64      `json:"amount"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Expired     bool       `json:"expired"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LedgerResponse is the full ledger plus the derived balance.
type LedgerResponse struct {
	PatientID int64            `json:"patient_id"`
	Balance   int64            `json:"balance"`
	Entries   []*EntryResponse `json:"entries"`
}

// FromDomainEntry converts a ledger entry to the response model.
func FromDomainEntry(entry *domain.CreditEntry, now time.Time) *EntryResponse {
	return &EntryResponse{
		ID:          entry.ID,
		Reference:   entry.Reference,
		Amount:      entry.Amount,
		Reason:      string(entry.Reason),
		Description: entry.Description,
		ExpiresAt:   entry.ExpiresAt,
		Expired:     entry.IsExpired(now),
		CreatedAt:   entry.CreatedAt,
	}
}
