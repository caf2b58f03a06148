package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/holistia/booking-service/internal/domain"
	appointmentRepo "github.com/holistia/booking-service/internal/infra/storage/appointment"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/service/appointments/models"
)

// statusTransitions enumerates the staff-driven lifecycle moves. Cancellation
// is not here: it runs through its own use case because it issues credit.
var statusTransitions = map[domain.AppointmentStatus][]domain.AppointmentStatus{
	domain.StatusPending:   {domain.StatusConfirmed},
	domain.StatusConfirmed: {domain.StatusCompleted, domain.StatusNoShow},
}

// Service implements appointment reads and lifecycle updates.
type Service struct {
	appointmentRepo AppointmentRepository
	profiles        ProfilesClient
	logger          Logger
}

// NewService creates the appointments service.
func NewService(appointmentRepo AppointmentRepository, profiles ProfilesClient, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		profiles:        profiles,
		logger:          logger,
	}
}

// GetByID fetches one appointment. Patients see their own; the assigned
// professional and clinic staff see it too.
func (s *Service) GetByID(ctx context.Context, id, requesterID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, requesterID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, appointment, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetPatientAppointments lists a patient's history, optionally by status.
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: patient=%d, status=%v", req.PatientID, req.Status)

	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByPatient(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(appointments), nil
}

// GetAgenda lists appointments for the clinic calendar. Professionals see
// their own agenda; staff may query any professional or the whole clinic.
func (s *Service) GetAgenda(ctx context.Context, req *models.GetAgendaRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAgenda: requester=%d, professional=%v", req.RequesterID, req.ProfessionalID)

	requester, err := s.profiles.GetProfessional(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			s.logger.Warn("GetAgenda: requester id=%d is not a professional", req.RequesterID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetAgenda: failed to get requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetAgenda - profiles error: %v", ErrInternal, err)
	}

	// Non-staff professionals are pinned to their own agenda.
	professionalID := req.ProfessionalID
	if !requester.Staff {
		if professionalID != nil && *professionalID != requester.ID {
			s.logger.Warn("GetAgenda: professional id=%d may not see agenda of id=%d",
				requester.ID, *professionalID)
			return nil, ErrAccessDenied
		}
		professionalID = &requester.ID
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAgenda: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	filter := domain.AppointmentsFilter{
		ProfessionalID:  professionalID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          domainStatus,
		IncludeInactive: req.IncludeInactive,
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAgenda: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAgenda - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(appointments), nil
}

// UpdateStatus moves an appointment along its lifecycle: confirm a pending
// one, or close a confirmed one as completed or no-show. Staff only.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%d, status=%s, requester=%d",
		req.AppointmentID, req.Status, req.RequesterID)

	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	requester, err := s.profiles.GetProfessional(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("UpdateStatus: failed to get requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - profiles error: %v", ErrInternal, err)
	}
	if !requester.Staff {
		s.logger.Warn("UpdateStatus: professional id=%d is not staff", req.RequesterID)
		return nil, ErrAccessDenied
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !transitionAllowed(appointment.Status, target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed", appointment.Status, target)
		return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatus, appointment.Status, target)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointment.ID, target); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appointment.Status = target
	s.logger.Info("UpdateStatus: appointment id=%d moved to %s", appointment.ID, target)
	return models.FromDomainAppointment(appointment), nil
}

func transitionAllowed(from, to domain.AppointmentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// checkAccess allows the patient, the assigned professional, and clinic staff.
func (s *Service) checkAccess(ctx context.Context, appointment *domain.Appointment, requesterID int64) error {
	if requesterID == appointment.PatientID || requesterID == appointment.ProfessionalID {
		return nil
	}

	professional, err := s.profiles.GetProfessional(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAccess - profiles error: %v", ErrInternal, err)
	}
	if !professional.Staff {
		return ErrAccessDenied
	}
	return nil
}
