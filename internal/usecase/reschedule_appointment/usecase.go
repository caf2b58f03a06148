package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	appointmentRepo "github.com/holistia/booking-service/internal/infra/storage/appointment"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/schedule"
	"github.com/holistia/booking-service/pkg/types"
)

// UseCase moves an existing appointment to a new slot, re-running the same
// availability checks as creation with the appointment excluded from its own
// conflict set.
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

// Execute runs the reschedule flow inside a serializable transaction.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, requester=%d, date=%s, time=%s",
		req.AppointmentID, req.RequesterID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Static validation.
	apptRules := uc.rules.Appointments
	if err := validateRequest(req, apptRules.Duration); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Load and authorize.
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if err := uc.authorize(ctx, appointment, req.RequesterID); err != nil {
		return nil, err
	}

	if !appointment.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d in status %s cannot be rescheduled",
			appointment.ID, appointment.Status)
		return nil, ErrCannotReschedule
	}

	durationMin := req.DurationMin
	if durationMin == 0 {
		durationMin = appointment.DurationMin
	}

	// 3. The new slot passes the same clock-dependent checks as a creation.
	if err := validateDate(req.Date, now, apptRules.Limits.MaxAdvanceDays); err != nil {
		uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(durationMin)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: slot runs past midnight: %v", err)
		return nil, fmt.Errorf("%w: slot runs past midnight", ErrOutsideWorkingHours)
	}

	if err := validateWorkingHours(apptRules.WorkingHours, req.Date, req.StartTime, endTime); err != nil {
		uc.logger.Warn("RescheduleAppointment: working-hours validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(req.Date, req.StartTime, now, apptRules.Limits.MinNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleAppointment: notice validation failed: %v", err)
		return nil, err
	}

	// 4. Conflict checks and the move, atomically.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Appointment periods for the target day, minus this appointment.
		appointments, err := uc.appointmentRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		periods := make([]schedule.Period, 0, 2*len(appointments))
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
		periods = schedule.ExcludeID(periods, appointment.ID)

		// 4.2. Class sessions occupy the room and their instructor as well.
		// Their IDs live in a different table, so they are appended after the
		// self-exclusion above.
		sessions, err := uc.classRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get class sessions: %v", err)
			return fmt.Errorf("%w: failed to get class sessions: %v", ErrInternal, err)
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

		// 4.3. Both resource projections of the candidate slot.
		candidate := domain.Appointment{
			ID:             appointment.ID,
			ProfessionalID: appointment.ProfessionalID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			DurationMin:    durationMin,
		}

		roomPeriod, err := candidate.RoomPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build room period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(roomPeriod, periods) {
			uc.logger.Warn("RescheduleAppointment: room conflict on %s at %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("room")
			return ErrRoomConflict
		}

		profPeriod, err := candidate.ProfessionalPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build professional period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(profPeriod, periods) {
			uc.logger.Warn("RescheduleAppointment: professional id=%d conflict on %s at %s",
				appointment.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("professional")
			return ErrProfessionalConflict
		}

		// 4.4. Move it.
		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, req.Date, string(req.StartTime), durationMin); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: moved appointment id=%d to %s %s",
		appointment.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		ProfessionalID: appointment.ProfessionalID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        endTime,
		DurationMin:    durationMin,
		Status:         string(appointment.Status),
	}, nil
}

func (uc *UseCase) authorize(ctx context.Context, appointment *domain.Appointment, requesterID int64) error {
	if requesterID == appointment.PatientID {
		return nil
	}

	professional, err := uc.profiles.GetProfessional(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("RescheduleAppointment: requester id=%d may not move appointment id=%d",
				requesterID, appointment.ID)
			return ErrAccessDenied
		}
		uc.logger.Error("RescheduleAppointment: failed to get requester id=%d: %v", requesterID, err)
		return fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}
	if !professional.Staff {
		uc.logger.Warn("RescheduleAppointment: professional id=%d is not staff", requesterID)
		return ErrAccessDenied
	}
	return nil
}

func validateRequest(req *Request, bounds rules.DurationBounds) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
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
	if req.DurationMin != 0 {
		if req.DurationMin < bounds.Min || req.DurationMin > bounds.Max {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidDuration, bounds.Min, bounds.Max)
		}
	}
	return nil
}

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
	if !w.LunchStart.IsZero() && !w.LunchEnd.IsZero() {
		if start.Minutes() < w.LunchEnd.Minutes() && end.Minutes() > w.LunchStart.Minutes() {
			return fmt.Errorf("%w: slot crosses the lunch break", ErrOutsideWorkingHours)
		}
	}
	return nil
}

func validateNotice(date time.Time, start types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
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
