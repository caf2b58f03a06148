package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeLayout is the wire and storage format for times of day.
const timeLayout = "15:04"

const minutesPerDay = 24 * 60

// TimeString is a time of day in "HH:MM" format.
// It is the shared primitive for slot times, working hours and bookable periods:
// comparisons are lexicographic-safe because the format is zero-padded 24h.
type TimeString string

// NewTimeString builds a TimeString from the clock portion of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
// Input must be zero-padded; lexicographic ordering breaks without it.
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) != len(timeLayout) {
		return "", fmt.Errorf("invalid time string format: %q is not zero-padded HH:MM", s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %v", err)
	}
	return NewTimeString(t), nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("minutes out of range: %d", m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate reports whether the value is a well-formed, zero-padded
// "HH:MM" time.
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return fmt.Errorf("invalid time string format: %q is not zero-padded HH:MM", string(t))
	}
	_, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
// Returns 0 for malformed values; callers are expected to Validate first.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes returns the time shifted forward by m minutes.
// Crossing midnight is an error: a bookable period never spans days.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + m
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time %s%+d minutes is outside the day", t, m)
	}
	if total == minutesPerDay {
		// Midnight as an exclusive end bound.
		return TimeString("24:00"), nil
	}
	return NewTimeStringFromMinutes(total)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value implements driver.Valuer for TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as time.Time
// through lib/pq, text columns as string or []byte.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		parsed, err := parseStored(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := parseStored(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// parseStored accepts "HH:MM" and "HH:MM:SS" (Postgres TIME text form).
func parseStored(s string) (TimeString, error) {
	if len(s) >= 5 {
		if ts, err := NewTimeStringFromString(s[:5]); err == nil {
			return ts, nil
		}
	}
	return "", fmt.Errorf("cannot parse %q as TimeString", s)
}
