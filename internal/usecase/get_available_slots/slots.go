package get_available_slots

import (
	"time"

	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/schedule"
	"github.com/holistia/booking-service/pkg/types"
)

// generateSlotGrid walks the working day from opening time with a fixed step
// and keeps the starts whose whole window fits: inside [Open, Close), not
// crossing the lunch break, not running past closing.
func generateSlotGrid(w rules.WorkingHours, date time.Time, stepMin int) ([]types.TimeString, error) {
	if !w.IsWorkingDay(date.Weekday()) {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0)
	current := w.Open

	for current.IsBefore(w.Close) {
		end, err := current.AddMinutes(stepMin)
		if err != nil {
			break
		}
		if end.IsAfter(w.Close) {
			break
		}

		if fitsWorkingHours(w, current, end) {
			slots = append(slots, current)
		}

		current, err = current.AddMinutes(stepMin)
		if err != nil {
			break
		}
	}

	return slots, nil
}

func fitsWorkingHours(w rules.WorkingHours, start, end types.TimeString) bool {
	if !w.ContainsTime(start) {
		return false
	}
	if w.LunchStart.IsZero() || w.LunchEnd.IsZero() {
		return true
	}
	return start.Minutes() >= w.LunchEnd.Minutes() || end.Minutes() <= w.LunchStart.Minutes()
}

// filterByNotice drops same-day slots starting inside the notice window.
// Dates other than today pass through untouched.
func filterByNotice(slots []types.TimeString, date, now time.Time, minNoticeMinutes int) []types.TimeString {
	if !isSameDay(date, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// The notice window runs past midnight; nothing today qualifies.
		return []types.TimeString{}
	}

	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(minAllowed) {
			available = append(available, slot)
		}
	}
	return available
}

// filterByConflicts keeps the slots free on both resource projections: the
// room and the requested professional.
func filterByConflicts(
	slots []types.TimeString,
	durationMin int,
	date time.Time,
	roomResource, professionalResource string,
	busy []schedule.Period,
) []Slot {
	available := make([]Slot, 0, len(slots))

	for _, start := range slots {
		end, err := start.AddMinutes(durationMin)
		if err != nil {
			continue
		}

		room := schedule.Period{Resource: roomResource, Date: date, Start: start, End: end}
		professional := schedule.Period{Resource: professionalResource, Date: date, Start: start, End: end}

		if schedule.HasOverlap(room, busy) || schedule.HasOverlap(professional, busy) {
			continue
		}
		available = append(available, Slot{StartTime: start, EndTime: end})
	}

	return available
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
