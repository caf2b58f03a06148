package create_appointment

import (
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/pkg/types"
)

// validateRequest checks the static shape of the request.
func validateRequest(req *Request, bounds rules.DurationBounds) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.ServiceName == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.DurationMin != 0 {
		if req.DurationMin < bounds.Min || req.DurationMin > bounds.Max {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidDuration, bounds.Min, bounds.Max)
		}
	}
	return nil
}

// validateDate rejects past dates and dates beyond the advance-booking window.
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	if dateOnly(date).Before(dateOnly(now)) {
		return ErrInvalidDate
	}

	maxDate := dateOnly(now).AddDate(0, 0, maxAdvanceDays)
	if dateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}
	return nil
}

// validateWorkingHours checks the whole slot fits inside working hours.
// The start must be bookable, the end must not run past closing, and the
// slot must not straddle the lunch break.
func validateWorkingHours(w rules.WorkingHours, date time.Time, start, end types.TimeString) error {
	if !w.IsWorkingDay(date.Weekday()) {
		return fmt.Errorf("%w: %s is not a working day", ErrOutsideWorkingHours, date.Weekday())
	}
	if !w.ContainsTime(start) {
		return fmt.Errorf("%w: start %s is outside working hours", ErrOutsideWorkingHours, start)
	}
	if end.IsAfter(w.Close) {
		return fmt.Errorf("%w: slot runs past closing time %s", ErrOutsideWorkingHours, w.Close)
	}
	// A slot touching the lunch break at its boundary is allowed; any real
	// intersection with [LunchStart, LunchEnd) is not.
	if !w.LunchStart.IsZero() && !w.LunchEnd.IsZero() {
		if start.Minutes() < w.LunchEnd.Minutes() && end.Minutes() > w.LunchStart.Minutes() {
			return fmt.Errorf("%w: slot crosses the lunch break", ErrOutsideWorkingHours)
		}
	}
	return nil
}

// validateNotice enforces the minimum same-day lead time.
func validateNotice(date time.Time, start types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Adding the notice window ran past midnight; nothing today is bookable.
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	if start.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
