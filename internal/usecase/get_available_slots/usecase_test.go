package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeClassRepo struct {
	sessions []*domain.ClassSession
}

func (f *fakeClassRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.ClassSession, error) {
	return f.sessions, nil
}

type fakeProfiles struct {
	err error
}

func (f *fakeProfiles) GetProfessional(_ context.Context, professionalID int64) (*profiles.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &profiles.Professional{ID: professionalID, Active: true}, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Monday 2024-01-08, queried well in advance.
var (
	testDate = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
)

func newTestUseCase(t *testing.T) (*UseCase, *fakeAppointmentRepo, *fakeClassRepo, *fixedClock) {
	t.Helper()

	r, err := rules.Load()
	require.NoError(t, err)

	appts := &fakeAppointmentRepo{}
	classes := &fakeClassRepo{}
	clock := &fixedClock{now: testNow}

	uc := NewUseCase(appts, classes, &fakeProfiles{}, r, nopLogger{})
	uc.timeProvider = clock
	return uc, appts, classes, clock
}

func starts(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestExecute_FullDayGrid(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
	require.NoError(t, err)

	// 09:00-18:00 on the hour, minus the 13:00 slot eaten by lunch.
	assert.Equal(t, []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00",
	}, starts(resp.Slots))
	assert.Equal(t, 60, resp.DurationMin)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
}

func TestExecute_HalfHourGrid(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		Date:           testDate,
		DurationMin:    30,
	})
	require.NoError(t, err)

	// 16 slots before lunch (09:00-12:30) plus 8 after (14:00-17:30).
	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("12:30"), resp.Slots[7].StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[8].StartTime)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[15].StartTime)
}

func TestExecute_WeekendIsEmpty(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		Date:           time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), // Saturday
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateIsEmpty(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		Date:           time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	uc, _, _, clock := newTestUseCase(t)
	clock.now = time.Date(2024, 1, 8, 10, 30, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
	require.NoError(t, err)

	// With 60 minutes notice at 10:30, the first bookable slot is 12:00.
	assert.Equal(t, []types.TimeString{
		"12:00", "14:00", "15:00", "16:00", "17:00",
	}, starts(resp.Slots))
}

func TestExecute_BusySlotsRemoved(t *testing.T) {
	t.Run("any appointment blocks the room for everyone", func(t *testing.T) {
		uc, appts, _, _ := newTestUseCase(t)
		appts.appointments = []*domain.Appointment{
			{
				ID:             1,
				PatientID:      2,
				ProfessionalID: 20, // someone else's appointment
				Date:           testDate,
				StartTime:      "10:00",
				DurationMin:    60,
				Status:         domain.StatusConfirmed,
			},
		}

		resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
		require.NoError(t, err)
		assert.NotContains(t, starts(resp.Slots), types.TimeString("10:00"))
		assert.Contains(t, starts(resp.Slots), types.TimeString("11:00"))
	})

	t.Run("class session blocks the room", func(t *testing.T) {
		uc, _, classes, _ := newTestUseCase(t)
		classes.sessions = []*domain.ClassSession{
			{
				ID:           7,
				InstructorID: 30,
				Date:         testDate,
				StartTime:    "15:00",
				DurationMin:  60,
				Capacity:     10,
			},
		}

		resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
		require.NoError(t, err)
		assert.NotContains(t, starts(resp.Slots), types.TimeString("15:00"))
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		uc, appts, classes, _ := newTestUseCase(t)
		appts.appointments = []*domain.Appointment{
			{
				ID:             1,
				ProfessionalID: 20,
				Date:           testDate,
				StartTime:      "10:00",
				DurationMin:    60,
				Status:         domain.StatusCancelledByPatient,
			},
		}
		classes.sessions = []*domain.ClassSession{
			{
				ID:           7,
				InstructorID: 30,
				Date:         testDate,
				StartTime:    "15:00",
				DurationMin:  60,
				Capacity:     10,
				Cancelled:    true,
			},
		}

		resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
		require.NoError(t, err)
		assert.Contains(t, starts(resp.Slots), types.TimeString("10:00"))
		assert.Contains(t, starts(resp.Slots), types.TimeString("15:00"))
	})

	t.Run("half-hour booking blocks both hour slots it touches", func(t *testing.T) {
		uc, appts, _, _ := newTestUseCase(t)
		appts.appointments = []*domain.Appointment{
			{
				ID:             1,
				ProfessionalID: 20,
				Date:           testDate,
				StartTime:      "10:30",
				DurationMin:    60, // 10:30-11:30
				Status:         domain.StatusConfirmed,
			},
		}

		resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate})
		require.NoError(t, err)
		assert.NotContains(t, starts(resp.Slots), types.TimeString("10:00"))
		assert.NotContains(t, starts(resp.Slots), types.TimeString("11:00"))
		assert.Contains(t, starts(resp.Slots), types.TimeString("12:00"))
	})
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 10, Date: testDate, DurationMin: 15})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownProfessional(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)
	uc.profiles = &fakeProfiles{err: profiles.ErrProfessionalNotFound}

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
