package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkingHours(t *testing.T) WorkingHours {
	t.Helper()
	r, err := Load()
	require.NoError(t, err)
	return r.Appointments.WorkingHours
}

func TestWorkingHours_IsWorkingHour(t *testing.T) {
	wh := testWorkingHours(t)

	// 2024-01-08 is a Monday.
	day := func(offset, hour, minute int) time.Time {
		return time.Date(2024, 1, 8+offset, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "monday mid-morning", at: day(0, 10, 0), want: true},
		{name: "friday late afternoon", at: day(4, 17, 0), want: true},
		{name: "monday during lunch", at: day(0, 13, 30), want: false},
		{name: "opening minute is inclusive", at: day(0, 9, 0), want: true},
		{name: "minute before opening", at: day(0, 8, 59), want: false},
		{name: "closing minute is exclusive", at: day(0, 18, 0), want: false},
		{name: "last bookable minute", at: day(0, 17, 59), want: true},
		{name: "lunch start is excluded", at: day(0, 13, 0), want: false},
		{name: "lunch end is included again", at: day(0, 14, 0), want: true},
		{name: "minute before lunch", at: day(0, 12, 59), want: true},
		{name: "saturday morning", at: day(5, 10, 0), want: false},
		{name: "sunday afternoon", at: day(6, 15, 0), want: false},
		{name: "midnight on a weekday", at: day(2, 0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wh.IsWorkingHour(tt.at))
		})
	}
}

// Sweep every minute of a representative week and compare against the policy
// stated explicitly: Mon-Fri, [09:00, 18:00) minus [13:00, 14:00).
func TestWorkingHours_IsWorkingHour_WeekSweep(t *testing.T) {
	wh := testWorkingHours(t)

	// Week of Monday 2024-01-08.
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	for minute := 0; minute < 7*24*60; minute++ {
		at := start.Add(time.Duration(minute) * time.Minute)

		weekday := at.Weekday()
		m := at.Hour()*60 + at.Minute()
		expected := weekday >= time.Monday && weekday <= time.Friday &&
			m >= 9*60 && m < 18*60 &&
			!(m >= 13*60 && m < 14*60)

		if got := wh.IsWorkingHour(at); got != expected {
			t.Fatalf("IsWorkingHour(%s) = %v, want %v", at, got, expected)
		}
	}
}

func TestWorkingHours_NoLunchBreak(t *testing.T) {
	wh := WorkingHours{
		Days:  []time.Weekday{time.Saturday},
		Open:  "08:00",
		Close: "12:00",
	}
	require.NoError(t, wh.validate())

	saturday := time.Date(2024, 1, 13, 9, 30, 0, 0, time.UTC)
	assert.True(t, wh.IsWorkingHour(saturday))
}
