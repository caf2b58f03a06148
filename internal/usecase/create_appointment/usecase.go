package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/schedule"
)

// UseCase books an appointment with a professional in the clinic room.
type UseCase struct {
	appointmentRepo AppointmentRepository
	classRepo       ClassSessionRepository
	profiles        ProfilesClient
	txManager       TransactionManager
	rules           *rules.Rules
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase creates the use case with its dependencies.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	classRepo ClassSessionRepository,
	profiles ProfilesClient,
	txManager TransactionManager,
	r *rules.Rules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		classRepo:       classRepo,
		profiles:        profiles,
		txManager:       txManager,
		rules:           r,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute runs the booking flow. The availability checks and the insert run
// in one serializable transaction so two concurrent requests for the same
// slot cannot both succeed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, professional=%d, date=%s, time=%s",
		req.PatientID, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Static validation.
	apptRules := uc.rules.Appointments
	if err := validateRequest(req, apptRules.Duration); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	durationMin := req.DurationMin
	if durationMin == 0 {
		durationMin = apptRules.Duration.Default
	}

	now := uc.timeProvider.Now()

	// 2. Date window and working-hours fit are clock-dependent but need no
	// transaction.
	if err := validateDate(req.Date, now, apptRules.Limits.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(durationMin)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot runs past midnight: %v", err)
		return nil, fmt.Errorf("%w: slot runs past midnight", ErrOutsideWorkingHours)
	}

	if err := validateWorkingHours(apptRules.WorkingHours, req.Date, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateAppointment: working-hours validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(req.Date, req.StartTime, now, apptRules.Limits.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
		return nil, err
	}

	// 3. Directory lookups.
	if _, err := uc.profiles.GetPatient(ctx, req.PatientID); err != nil {
		if errors.Is(err, profilesClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	professional, err := uc.profiles.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.Active {
		uc.logger.Warn("CreateAppointment: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalInactive
	}

	var result *domain.Appointment

	// 4. Limits and conflict checks under a serializable transaction.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Per-patient caps.
		activeToday, err := uc.appointmentRepo.CountActiveByPatientOnDate(txCtx, req.PatientID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count active appointments: %v", err)
			return fmt.Errorf("%w: failed to count active appointments: %v", ErrInternal, err)
		}
		if activeToday >= apptRules.Limits.MaxPerDay {
			uc.logger.Warn("CreateAppointment: patient id=%d hit the daily limit (%d)",
				req.PatientID, apptRules.Limits.MaxPerDay)
			return ErrDailyLimitReached
		}

		pending, err := uc.appointmentRepo.CountPendingByPatient(txCtx, req.PatientID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count pending appointments: %v", err)
			return fmt.Errorf("%w: failed to count pending appointments: %v", ErrInternal, err)
		}
		if pending >= apptRules.Limits.MaxPending {
			uc.logger.Warn("CreateAppointment: patient id=%d has %d pending appointments",
				req.PatientID, pending)
			return ErrTooManyPending
		}

		// 4.2. Load everything occupying the room or the professional that day.
		existing, err := uc.collectPeriods(txCtx, req.Date)
		if err != nil {
			return err
		}

		// 4.3. Conflict detection on both resource projections.
		candidate := domain.Appointment{
			ProfessionalID: req.ProfessionalID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			DurationMin:    durationMin,
		}

		roomPeriod, err := candidate.RoomPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build room period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(roomPeriod, existing) {
			uc.logger.Warn("CreateAppointment: room conflict on %s at %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("room")
			return ErrRoomConflict
		}

		profPeriod, err := candidate.ProfessionalPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build professional period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(profPeriod, existing) {
			uc.logger.Warn("CreateAppointment: professional id=%d conflict on %s at %s",
				req.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("professional")
			return ErrProfessionalConflict
		}

		// 4.4. Insert.
		appointment := &domain.Appointment{
			PatientID:      req.PatientID,
			ProfessionalID: req.ProfessionalID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			DurationMin:    durationMin,
			Status:         domain.StatusPending,
			ServiceName:    req.ServiceName,
			Price:          req.Price,
			Notes:          req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return toResponse(result)
}

// collectPeriods gathers the busy periods of the day from both calendars.
// Appointments and class sessions share the room, so each entry is projected
// onto the room resource and onto its professional.
func (uc *UseCase) collectPeriods(ctx context.Context, date time.Time) ([]schedule.Period, error) {
	appointments, err := uc.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	sessions, err := uc.classRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get class sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get class sessions: %v", ErrInternal, err)
	}

	periods := make([]schedule.Period, 0, 2*(len(appointments)+len(sessions)))

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		room, err := appt.RoomPeriod()
		if err != nil {
			continue
		}
		prof, err := appt.ProfessionalPeriod()
		if err != nil {
			continue
		}
		periods = append(periods, room, prof)
	}

	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		room, err := session.RoomPeriod()
		if err != nil {
			continue
		}
		instructor, err := session.InstructorPeriod()
		if err != nil {
			continue
		}
		periods = append(periods, room, instructor)
	}

	return periods, nil
}

func toResponse(appt *domain.Appointment) (*Response, error) {
	endTime, err := appt.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}
	return &Response{
		ID:             appt.ID,
		PatientID:      appt.PatientID,
		ProfessionalID: appt.ProfessionalID,
		Date:           appt.Date,
		StartTime:      appt.StartTime,
		EndTime:        endTime,
		DurationMin:    appt.DurationMin,
		Status:         string(appt.Status),
		ServiceName:    appt.ServiceName,
		Price:          appt.Price,
		Notes:          appt.Notes,
		CreatedAt:      appt.CreatedAt,
		UpdatedAt:      appt.UpdatedAt,
	}, nil
}
