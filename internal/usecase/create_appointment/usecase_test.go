package create_appointment

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
	activeCount  int
	pendingCount int
	created      *domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	out := *appt
	f.nextID++
	out.ID = f.nextID
	out.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) CountActiveByPatientOnDate(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.activeCount, nil
}

func (f *fakeAppointmentRepo) CountPendingByPatient(_ context.Context, _ int64) (int, error) {
	return f.pendingCount, nil
}

type fakeClassRepo struct {
	sessions []*domain.ClassSession
}

func (f *fakeClassRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.ClassSession, error) {
	return f.sessions, nil
}

type fakeProfiles struct {
	patientErr      error
	professionalErr error
	inactiveProf    bool
}

func (f *fakeProfiles) GetPatient(_ context.Context, patientID int64) (*profiles.Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return &profiles.Patient{ID: patientID, FullName: "Laura Gómez", Active: true}, nil
}

func (f *fakeProfiles) GetProfessional(_ context.Context, professionalID int64) (*profiles.Professional, error) {
	if f.professionalErr != nil {
		return nil, f.professionalErr
	}
	return &profiles.Professional{
		ID:       professionalID,
		FullName: "Dr. Andrés Mejía",
		Active:   !f.inactiveProf,
	}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testDeps struct {
	appointments *fakeAppointmentRepo
	classes      *fakeClassRepo
	profiles     *fakeProfiles
	clock        *fixedClock
}

// Monday 2024-01-08; the clock sits at 08:00 that morning.
var (
	testDate = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
)

func newTestUseCase(t *testing.T) (*UseCase, *testDeps) {
	t.Helper()

	r, err := rules.Load()
	require.NoError(t, err)

	deps := &testDeps{
		appointments: &fakeAppointmentRepo{},
		classes:      &fakeClassRepo{},
		profiles:     &fakeProfiles{},
		clock:        &fixedClock{now: testNow},
	}

	uc := NewUseCase(deps.appointments, deps.classes, deps.profiles, fakeTxManager{}, r, NopMetrics{}, nopLogger{})
	uc.timeProvider = deps.clock
	return uc, deps
}

func validRequest() *Request {
	return &Request{
		PatientID:      1,
		ProfessionalID: 10,
		Date:           testDate,
		StartTime:      "10:00",
		DurationMin:    60,
		ServiceName:    "Consulta psicología",
		Price:          120_000,
	}
}

func existingAppointment(id, professionalID int64, start types.TimeString, durationMin int) *domain.Appointment {
	return &domain.Appointment{
		ID:             id,
		PatientID:      99,
		ProfessionalID: professionalID,
		Date:           testDate,
		StartTime:      start,
		DurationMin:    durationMin,
		Status:         domain.StatusConfirmed,
	}
}

func TestExecute_Success(t *testing.T) {
	uc, deps := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, int64(120_000), resp.Price)
	require.NotNil(t, deps.appointments.created)
	assert.Equal(t, domain.StatusPending, deps.appointments.created.Status)
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc, deps := newTestUseCase(t)

	req := validRequest()
	req.DurationMin = 0

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMin)
	assert.Equal(t, 60, deps.appointments.created.DurationMin)
}

func TestExecute_InputValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero patient", func(r *Request) { r.PatientID = 0 }, ErrInvalidInput},
		{"zero professional", func(r *Request) { r.ProfessionalID = 0 }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"missing start time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }, ErrInvalidInput},
		{"missing service name", func(r *Request) { r.ServiceName = "" }, ErrInvalidInput},
		{"negative price", func(r *Request) { r.Price = -1 }, ErrInvalidInput},
		{"duration below minimum", func(r *Request) { r.DurationMin = 15 }, ErrInvalidDuration},
		{"duration above maximum", func(r *Request) { r.DurationMin = 180 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_DateWindow(t *testing.T) {
	t.Run("past date rejected", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		req.Date = testDate.AddDate(0, 0, -3)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond advance window rejected", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		req.Date = testDate.AddDate(0, 0, 31)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("last day of window allowed", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		// 2024-02-07 is a Wednesday, 30 days out.
		req.Date = testDate.AddDate(0, 0, 30)

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_WorkingHours(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		startTime types.TimeString
		duration  int
		wantErr   error
	}{
		{"saturday rejected", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), "10:00", 60, ErrOutsideWorkingHours},
		{"before opening", testDate, "08:30", 30, ErrOutsideWorkingHours},
		{"at opening allowed", testDate, "09:00", 60, nil},
		{"runs past closing", testDate, "17:30", 60, ErrOutsideWorkingHours},
		{"ends exactly at closing", testDate, "17:00", 60, nil},
		{"starts inside lunch", testDate, "13:30", 30, ErrOutsideWorkingHours},
		{"crosses into lunch", testDate, "12:30", 60, ErrOutsideWorkingHours},
		{"spans the whole lunch break", testDate, "12:30", 120, ErrOutsideWorkingHours},
		{"ends exactly at lunch start", testDate, "12:00", 60, nil},
		{"starts exactly at lunch end", testDate, "14:00", 60, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t)

			req := validRequest()
			req.Date = tt.date
			req.StartTime = tt.startTime
			req.DurationMin = tt.duration

			_, err := uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_MinimumNotice(t *testing.T) {
	t.Run("same-day slot inside the notice window rejected", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.clock.now = time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)

		req := validRequest()
		req.StartTime = "10:00" // only 30 minutes away

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("same-day slot at exactly the notice boundary allowed", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.clock.now = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

		req := validRequest()
		req.StartTime = "10:00"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("next-day slot ignores the notice window", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.clock.now = time.Date(2024, 1, 8, 23, 50, 0, 0, time.UTC)

		req := validRequest()
		req.Date = testDate.AddDate(0, 0, 1)
		req.StartTime = "09:00"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_DirectoryLookups(t *testing.T) {
	t.Run("unknown patient", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.profiles.patientErr = profiles.ErrPatientNotFound

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})

	t.Run("unknown professional", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.profiles.professionalErr = profiles.ErrProfessionalNotFound

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("inactive professional", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.profiles.inactiveProf = true

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrProfessionalInactive)
	})
}

func TestExecute_PatientLimits(t *testing.T) {
	t.Run("daily limit reached", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.appointments.activeCount = 2

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDailyLimitReached)
	})

	t.Run("too many pending", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.appointments.pendingCount = 3

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrTooManyPending)
	})
}

func TestExecute_Conflicts(t *testing.T) {
	t.Run("room taken by another professional's appointment", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.appointments.appointments = []*domain.Appointment{
			existingAppointment(50, 20, "09:30", 60), // 09:30-10:30 overlaps 10:00-11:00
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomConflict)
	})

	t.Run("same professional double-booked surfaces as room conflict", func(t *testing.T) {
		// The room projection is checked first, and every appointment
		// occupies the single room, so the room arm always fires first.
		uc, deps := newTestUseCase(t)
		deps.appointments.appointments = []*domain.Appointment{
			existingAppointment(51, 10, "10:30", 60),
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomConflict)
	})

	t.Run("back-to-back appointments allowed", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.appointments.appointments = []*domain.Appointment{
			existingAppointment(52, 20, "09:00", 60), // ends exactly at 10:00
			existingAppointment(53, 20, "11:00", 60), // starts exactly at 11:00
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("cancelled appointment does not block", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		blocked := existingAppointment(54, 20, "10:00", 60)
		blocked.Status = domain.StatusCancelledByPatient
		deps.appointments.appointments = []*domain.Appointment{blocked}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("class session blocks the room", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.classes.sessions = []*domain.ClassSession{
			{
				ID:           7,
				InstructorID: 30,
				Title:        "Breathe & Move",
				Date:         testDate,
				StartTime:    "10:30",
				DurationMin:  60,
				Capacity:     10,
			},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomConflict)
	})

	t.Run("cancelled class session does not block", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.classes.sessions = []*domain.ClassSession{
			{
				ID:           8,
				InstructorID: 30,
				Title:        "Breathe & Move",
				Date:         testDate,
				StartTime:    "10:30",
				DurationMin:  60,
				Capacity:     10,
				Cancelled:    true,
			},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})
}
