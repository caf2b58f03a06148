package rules

import (
	"time"

	"github.com/holistia/booking-service/pkg/types"
)

// WorkingHours describes when the clinic accepts bookings: a working-day set,
// a daily open/close window and an optional lunch break nested inside it.
type WorkingHours struct {
	Days []time.Weekday

	Open  types.TimeString
	Close types.TimeString

	// LunchStart/LunchEnd carve a closed window out of the day.
	// Both zero means no lunch break.
	LunchStart types.TimeString
	LunchEnd   types.TimeString
}

// IsWorkingDay reports whether d is in the configured working-day set.
func (w WorkingHours) IsWorkingDay(d time.Weekday) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}

// IsWorkingHour reports whether t falls inside working hours: a working day,
// within [Open, Close), and outside [LunchStart, LunchEnd). Both windows are
// half-open: the opening minute is bookable, the closing minute is not. The
// same convention applies to the lunch break.
func (w WorkingHours) IsWorkingHour(t time.Time) bool {
	if !w.IsWorkingDay(t.Weekday()) {
		return false
	}
	return w.ContainsTime(types.NewTimeString(t))
}

// ContainsTime applies the time-of-day portion of the working-hours check.
// Used directly by slot generation, which already knows the date is valid.
func (w WorkingHours) ContainsTime(t types.TimeString) bool {
	m := t.Minutes()

	if m < w.Open.Minutes() || m >= w.Close.Minutes() {
		return false
	}
	if w.hasLunchBreak() && m >= w.LunchStart.Minutes() && m < w.LunchEnd.Minutes() {
		return false
	}
	return true
}

func (w WorkingHours) hasLunchBreak() bool {
	return !w.LunchStart.IsZero() && !w.LunchEnd.IsZero()
}
