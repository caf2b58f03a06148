package schedule_class

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

type fakeClassRepo struct {
	sessions []*domain.ClassSession
	created  *domain.ClassSession
}

func (f *fakeClassRepo) Create(_ context.Context, session *domain.ClassSession) (*domain.ClassSession, error) {
	out := *session
	out.ID = 100
	out.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.created = &out
	return &out, nil
}

func (f *fakeClassRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.ClassSession, error) {
	return f.sessions, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeProfiles struct {
	// professionals maps ID to staff flag; missing IDs are not found.
	professionals map[int64]bool
	inactive      map[int64]bool
}

func (f *fakeProfiles) GetProfessional(_ context.Context, professionalID int64) (*profiles.Professional, error) {
	staff, ok := f.professionals[professionalID]
	if !ok {
		return nil, profiles.ErrProfessionalNotFound
	}
	return &profiles.Professional{
		ID:     professionalID,
		Staff:  staff,
		Active: !f.inactive[professionalID],
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

const (
	staffID      = int64(500)
	instructorID = int64(30)
)

// Monday 2024-01-08, scheduled the Friday before.
var (
	testDate = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
)

type testDeps struct {
	classes      *fakeClassRepo
	appointments *fakeAppointmentRepo
	profiles     *fakeProfiles
}

func newTestUseCase(t *testing.T) (*UseCase, *testDeps) {
	t.Helper()

	r, err := rules.Load()
	require.NoError(t, err)

	deps := &testDeps{
		classes:      &fakeClassRepo{},
		appointments: &fakeAppointmentRepo{},
		profiles: &fakeProfiles{
			professionals: map[int64]bool{staffID: true, instructorID: false},
			inactive:      map[int64]bool{},
		},
	}

	uc := NewUseCase(deps.classes, deps.appointments, deps.profiles, fakeTxManager{}, r, NopMetrics{}, nopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}
	return uc, deps
}

func validRequest() *Request {
	return &Request{
		RequesterID:  staffID,
		InstructorID: instructorID,
		Title:        "Breathe & Move matutino",
		Date:         testDate,
		StartTime:    "09:00",
		DurationMin:  60,
	}
}

func TestExecute_Success(t *testing.T) {
	uc, deps := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
	assert.Equal(t, 10, resp.Capacity) // default session cap
	assert.Equal(t, 10, resp.SpotsLeft)
	require.NotNil(t, deps.classes.created)
	assert.Equal(t, instructorID, deps.classes.created.InstructorID)
}

func TestExecute_ExplicitCapacity(t *testing.T) {
	uc, deps := newTestUseCase(t)

	req := validRequest()
	req.Capacity = 6

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Capacity)
	assert.Equal(t, 6, deps.classes.created.Capacity)
}

func TestExecute_Authorization(t *testing.T) {
	t.Run("non-staff professional denied", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		req.RequesterID = instructorID

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown requester denied", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		req.RequesterID = 999

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestExecute_InstructorChecks(t *testing.T) {
	t.Run("unknown instructor", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		req := validRequest()
		req.InstructorID = 999

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInstructorNotFound)
	})

	t.Run("inactive instructor", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.profiles.inactive[instructorID] = true

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInstructorInactive)
	})
}

func TestExecute_SlotValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"past date", func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"weekend", func(r *Request) { r.Date = time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC) }, ErrOutsideWorkingHours},
		{"before opening", func(r *Request) { r.StartTime = "08:00" }, ErrOutsideWorkingHours},
		{"crosses lunch", func(r *Request) { r.StartTime = "12:30" }, ErrOutsideWorkingHours},
		{"runs past closing", func(r *Request) { r.StartTime = "17:30" }, ErrOutsideWorkingHours},
		{"missing title", func(r *Request) { r.Title = "" }, ErrInvalidInput},
		{"capacity above cap", func(r *Request) { r.Capacity = 11 }, ErrInvalidCapacity},
		{"duration above maximum", func(r *Request) { r.DurationMin = 180 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_Conflicts(t *testing.T) {
	t.Run("appointment blocks the room", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.appointments.appointments = []*domain.Appointment{
			{
				ID:             1,
				ProfessionalID: 20,
				Date:           testDate,
				StartTime:      "09:30",
				DurationMin:    60,
				Status:         domain.StatusConfirmed,
			},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomConflict)
	})

	t.Run("another session blocks the room", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.classes.sessions = []*domain.ClassSession{
			{
				ID:           2,
				InstructorID: 40,
				Date:         testDate,
				StartTime:    "09:00",
				DurationMin:  60,
				Capacity:     10,
			},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrRoomConflict)
	})

	t.Run("back-to-back session allowed", func(t *testing.T) {
		uc, deps := newTestUseCase(t)
		deps.classes.sessions = []*domain.ClassSession{
			{
				ID:           2,
				InstructorID: 40,
				Date:         testDate,
				StartTime:    "10:00",
				DurationMin:  60,
				Capacity:     10,
			},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})
}
