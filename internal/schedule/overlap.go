// Package schedule implements the interval-conflict primitive shared by every
// booking path. Appointment and class bookings project their time range onto a
// resource (the clinic room or a specific professional) and ask whether the
// candidate period collides with any existing one on the same date.
package schedule

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// Period is a bookable time range for a single resource on a single date.
// Periods are comparable only when they share the same date and resource;
// HasOverlap enforces that filtering so callers never have to.
type Period struct {
	// ID identifies the underlying booking record, so that an update can be
	// excluded from the conflict check against itself.
	ID int64

	// Resource is the dimension being protected from double-booking:
	// the room or a professional. See domain.RoomResource / ProfessionalResource.
	Resource string

	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether p and other occupy overlapping time ranges.
// The comparison is strict on both ends: back-to-back periods, where one
// ends exactly when the other starts, do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.Start.IsBefore(other.End) && p.End.IsAfter(other.Start)
}

// SameSlot reports whether other competes for the same resource on the same date.
func (p Period) SameSlot(other Period) bool {
	return p.Resource == other.Resource && sameDay(p.Date, other.Date)
}

// HasOverlap reports whether candidate collides with any existing period that
// shares its date and resource. The empty set never conflicts.
//
// Callers validating a booking must invoke this once per protected resource:
// filtered by room and, independently, filtered by professional. When
// validating an update rather than a creation, pass the existing set through
// ExcludeID first so the record does not conflict with itself.
func HasOverlap(candidate Period, existing []Period) bool {
	for _, other := range existing {
		if !candidate.SameSlot(other) {
			continue
		}
		if candidate.Overlaps(other) {
			return true
		}
	}
	return false
}

// ExcludeID returns the periods whose ID differs from id.
func ExcludeID(periods []Period, id int64) []Period {
	out := make([]Period, 0, len(periods))
	for _, p := range periods {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
