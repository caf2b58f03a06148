package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/notify"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/pkg/types"
)

type fakeRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeNotify struct {
	sent []*notify.Reminder
	err  error
}

func (f *fakeNotify) SendReminder(_ context.Context, reminder *notify.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, reminder)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Sweeps run every 15 minutes; the clock sits at Monday 2024-01-08 10:00 UTC.
var testNow = time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

func appointmentAt(id int64, date time.Time, start string) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		PatientID:   1,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		DurationMin: 60,
		Status:      domain.StatusConfirmed,
		ServiceName: "Consulta psicología",
	}
}

func newService(t *testing.T) (*Service, *fakeRepo, *fakeNotify) {
	t.Helper()

	r, err := rules.Load()
	require.NoError(t, err)

	repo := &fakeRepo{}
	client := &fakeNotify{}
	svc := NewService(repo, client, r, 15*time.Minute, nopLogger{})
	svc.timeProvider = &fixedClock{now: testNow}
	return svc, repo, client
}

func TestSendDueReminders(t *testing.T) {
	t.Run("appointment 24h out gets the 24h reminder", func(t *testing.T) {
		svc, repo, client := newService(t)
		repo.appointments = []*domain.Appointment{
			// Tuesday 10:05, inside [Tue 10:00, Tue 10:15).
			appointmentAt(1, testNow.AddDate(0, 0, 1), "10:05"),
		}

		require.NoError(t, svc.SendDueReminders(context.Background()))
		require.Len(t, client.sent, 1)
		assert.Equal(t, int64(1), client.sent[0].AppointmentID)
		assert.Equal(t, 24, client.sent[0].LeadHours)
	})

	t.Run("appointment 2h out gets the 2h reminder", func(t *testing.T) {
		svc, repo, client := newService(t)
		repo.appointments = []*domain.Appointment{
			appointmentAt(2, testNow, "12:10"),
		}

		require.NoError(t, svc.SendDueReminders(context.Background()))
		require.Len(t, client.sent, 1)
		assert.Equal(t, 2, client.sent[0].LeadHours)
	})

	t.Run("appointment outside every window is silent", func(t *testing.T) {
		svc, repo, client := newService(t)
		repo.appointments = []*domain.Appointment{
			appointmentAt(3, testNow, "15:00"), // 5h out
		}

		require.NoError(t, svc.SendDueReminders(context.Background()))
		assert.Empty(t, client.sent)
	})

	t.Run("cancelled appointment is silent", func(t *testing.T) {
		svc, repo, client := newService(t)
		cancelled := appointmentAt(4, testNow, "12:10")
		cancelled.Status = domain.StatusCancelledByPatient
		repo.appointments = []*domain.Appointment{cancelled}

		require.NoError(t, svc.SendDueReminders(context.Background()))
		assert.Empty(t, client.sent)
	})

	t.Run("window start is inclusive, end exclusive", func(t *testing.T) {
		svc, repo, client := newService(t)
		repo.appointments = []*domain.Appointment{
			appointmentAt(5, testNow, "12:00"), // exactly 2h out
			appointmentAt(6, testNow, "12:15"), // exactly at the window end
		}

		require.NoError(t, svc.SendDueReminders(context.Background()))
		require.Len(t, client.sent, 1)
		assert.Equal(t, int64(5), client.sent[0].AppointmentID)
	})

	t.Run("delivery failure does not abort the sweep", func(t *testing.T) {
		svc, repo, client := newService(t)
		client.err = assert.AnError
		repo.appointments = []*domain.Appointment{
			appointmentAt(7, testNow, "12:10"),
		}

		assert.NoError(t, svc.SendDueReminders(context.Background()))
	})
}
