package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holistia/booking-service/internal/domain"
	appointmentRepo "github.com/holistia/booking-service/internal/infra/storage/appointment"
	"github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/service/appointments/models"
	"github.com/holistia/booking-service/pkg/ptr"
)

type fakeRepo struct {
	appointment *domain.Appointment
	getErr      error
	listed      []*domain.Appointment
	lastFilter  domain.AppointmentsFilter

	updatedID     int64
	updatedStatus domain.AppointmentStatus
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetByPatient(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.listed, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeProfiles struct {
	professionals map[int64]bool // ID -> staff
}

func (f *fakeProfiles) GetProfessional(_ context.Context, professionalID int64) (*profiles.Professional, error) {
	staff, ok := f.professionals[professionalID]
	if !ok {
		return nil, profiles.ErrProfessionalNotFound
	}
	return &profiles.Professional{ID: professionalID, Staff: staff, Active: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	patientID      = int64(1)
	professionalID = int64(10)
	staffID        = int64(500)
	strangerID     = int64(777)
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:             42,
		PatientID:      patientID,
		ProfessionalID: professionalID,
		Date:           time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		DurationMin:    60,
		Status:         domain.StatusPending,
		ServiceName:    "Consulta psicología",
		Price:          120_000,
	}
}

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{appointment: testAppointment()}
	dir := &fakeProfiles{professionals: map[int64]bool{
		professionalID: false,
		staffID:        true,
	}}
	return NewService(repo, dir, nopLogger{}), repo
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name      string
		requester int64
		wantErr   error
	}{
		{"owner", patientID, nil},
		{"assigned professional", professionalID, nil},
		{"staff", staffID, nil},
		{"stranger", strangerID, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()

			resp, err := svc.GetByID(context.Background(), 42, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), resp.ID)
			assert.Equal(t, "pending", resp.Status)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo := newService()
	repo.getErr = appointmentRepo.ErrAppointmentNotFound

	_, err := svc.GetByID(context.Background(), 42, patientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetPatientAppointments(t *testing.T) {
	svc, repo := newService()
	repo.listed = []*domain.Appointment{testAppointment(), testAppointment()}

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: patientID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: patientID,
		Status:    ptr.Ptr("definitely-not-a-status"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAgenda_Scoping(t *testing.T) {
	t.Run("professional pinned to own agenda", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.GetAgenda(context.Background(), &models.GetAgendaRequest{
			RequesterID: professionalID,
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastFilter.ProfessionalID)
		assert.Equal(t, professionalID, *repo.lastFilter.ProfessionalID)
	})

	t.Run("professional may not read another agenda", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.GetAgenda(context.Background(), &models.GetAgendaRequest{
			RequesterID:    professionalID,
			ProfessionalID: ptr.Ptr(int64(20)),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff may query the whole clinic", func(t *testing.T) {
		svc, repo := newService()

		_, err := svc.GetAgenda(context.Background(), &models.GetAgendaRequest{
			RequesterID: staffID,
		})
		require.NoError(t, err)
		assert.Nil(t, repo.lastFilter.ProfessionalID)
	})

	t.Run("patient denied", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.GetAgenda(context.Background(), &models.GetAgendaRequest{
			RequesterID: patientID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{"confirm pending", domain.StatusPending, "confirmed", nil},
		{"complete confirmed", domain.StatusConfirmed, "completed", nil},
		{"no-show confirmed", domain.StatusConfirmed, "no_show", nil},
		{"complete pending", domain.StatusPending, "completed", ErrInvalidStatus},
		{"reopen completed", domain.StatusCompleted, "pending", ErrInvalidStatus},
		{"cancel via status update", domain.StatusConfirmed, "cancelled_by_clinic", ErrInvalidStatus},
		{"unknown status", domain.StatusPending, "paused", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			repo.appointment.Status = tt.from

			resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				RequesterID:   staffID,
				AppointmentID: 42,
				Status:        tt.to,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_StaffOnly(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		RequesterID:   professionalID,
		AppointmentID: 42,
		Status:        "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
