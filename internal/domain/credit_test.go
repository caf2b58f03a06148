package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailableCredit(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)
	past := now.AddDate(0, 0, -1)

	issue := func(amount int64, expiresAt time.Time) *CreditEntry {
		return &CreditEntry{Amount: amount, Reason: CreditReasonCancellation, ExpiresAt: &expiresAt}
	}
	usage := func(amount int64) *CreditEntry {
		return &CreditEntry{Amount: -amount, Reason: CreditReasonUsage}
	}

	tests := []struct {
		name    string
		entries []*CreditEntry
		want    int64
	}{
		{
			name:    "empty ledger",
			entries: nil,
			want:    0,
		},
		{
			name:    "live issue counts",
			entries: []*CreditEntry{issue(30000, future)},
			want:    30000,
		},
		{
			name:    "expired issue is skipped",
			entries: []*CreditEntry{issue(30000, past), issue(10000, future)},
			want:    10000,
		},
		{
			name:    "expiry boundary is exclusive",
			entries: []*CreditEntry{issue(30000, now)},
			want:    0,
		},
		{
			name:    "usage always subtracts",
			entries: []*CreditEntry{issue(30000, future), usage(12000)},
			want:    18000,
		},
		{
			name:    "usage against expired issue floors at zero",
			entries: []*CreditEntry{issue(30000, past), usage(12000)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableCredit(tt.entries, now))
		})
	}
}
