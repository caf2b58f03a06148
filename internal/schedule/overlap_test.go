package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/holistia/booking-service/pkg/types"
)

var testDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func period(id int64, resource string, date time.Time, start, end string) Period {
	return Period{
		ID:       id,
		Resource: resource,
		Date:     date,
		Start:    types.TimeString(start),
		End:      types.TimeString(end),
	}
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name      string
		candidate Period
		existing  []Period
		want      bool
	}{
		{
			name:      "empty existing set never conflicts",
			candidate: period(0, "room:principal", testDate, "10:00", "11:00"),
			existing:  nil,
			want:      false,
		},
		{
			name:      "partial overlap conflicts",
			candidate: period(0, "room:principal", testDate, "10:30", "11:30"),
			existing:  []Period{period(1, "room:principal", testDate, "10:00", "11:00")},
			want:      true,
		},
		{
			name:      "containment conflicts",
			candidate: period(0, "room:principal", testDate, "10:00", "12:00"),
			existing:  []Period{period(1, "room:principal", testDate, "10:30", "11:00")},
			want:      true,
		},
		{
			name:      "identical range conflicts",
			candidate: period(0, "room:principal", testDate, "10:00", "11:00"),
			existing:  []Period{period(1, "room:principal", testDate, "10:00", "11:00")},
			want:      true,
		},
		{
			name:      "back-to-back before does not conflict",
			candidate: period(0, "room:principal", testDate, "09:00", "10:00"),
			existing:  []Period{period(1, "room:principal", testDate, "10:00", "11:00")},
			want:      false,
		},
		{
			name:      "back-to-back after does not conflict",
			candidate: period(0, "room:principal", testDate, "11:00", "12:00"),
			existing:  []Period{period(1, "room:principal", testDate, "10:00", "11:00")},
			want:      false,
		},
		{
			name:      "different date does not conflict",
			candidate: period(0, "room:principal", testDate.AddDate(0, 0, 1), "10:00", "11:00"),
			existing:  []Period{period(1, "room:principal", testDate, "10:00", "11:00")},
			want:      false,
		},
		{
			name:      "different resource does not conflict",
			candidate: period(0, "professional:7", testDate, "10:00", "11:00"),
			existing:  []Period{period(1, "professional:8", testDate, "10:00", "11:00")},
			want:      false,
		},
		{
			name:      "any overlapping member is enough",
			candidate: period(0, "room:principal", testDate, "11:30", "12:30"),
			existing: []Period{
				period(1, "room:principal", testDate, "09:00", "10:00"),
				period(2, "room:principal", testDate, "10:00", "11:00"),
				period(3, "room:principal", testDate, "12:00", "13:00"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOverlap(tt.candidate, tt.existing))
		})
	}
}

// Overlap must not depend on which period is the candidate.
func TestHasOverlap_Symmetry(t *testing.T) {
	pairs := [][2]Period{
		{period(1, "r", testDate, "10:00", "11:00"), period(2, "r", testDate, "10:30", "11:30")},
		{period(1, "r", testDate, "10:00", "11:00"), period(2, "r", testDate, "11:00", "12:00")},
		{period(1, "r", testDate, "09:00", "12:00"), period(2, "r", testDate, "10:00", "10:30")},
		{period(1, "r", testDate, "09:00", "09:30"), period(2, "r", testDate, "15:00", "16:00")},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.Equal(t,
			HasOverlap(a, []Period{b}),
			HasOverlap(b, []Period{a}),
			"symmetry violated for %v vs %v", a, b,
		)
	}
}

func TestExcludeID(t *testing.T) {
	existing := []Period{
		period(1, "r", testDate, "10:00", "11:00"),
		period(2, "r", testDate, "11:00", "12:00"),
	}

	filtered := ExcludeID(existing, 1)
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)

	// A rescheduled booking keeping its own time must not conflict with itself.
	candidate := period(1, "r", testDate, "10:00", "11:00")
	assert.True(t, HasOverlap(candidate, existing))
	assert.False(t, HasOverlap(candidate, ExcludeID(existing, 1)))
}
