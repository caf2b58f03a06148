package schedule_class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/schedule"
	"github.com/holistia/booking-service/pkg/types"
)

// UseCase schedules a Breathe & Move group class. Classes share the single
// clinic room with appointments, so scheduling runs the same conflict
// detection over both calendars.
type UseCase struct {
	classRepo       ClassSessionRepository
	appointmentRepo AppointmentRepository
	profiles        ProfilesClient
	txManager       TransactionManager
	rules           *rules.Rules
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase creates the use case with its dependencies.
func NewUseCase(
	classRepo ClassSessionRepository,
	appointmentRepo AppointmentRepository,
	profiles ProfilesClient,
	txManager TransactionManager,
	r *rules.Rules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		classRepo:       classRepo,
		appointmentRepo: appointmentRepo,
		profiles:        profiles,
		txManager:       txManager,
		rules:           r,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute runs the scheduling flow inside a serializable transaction.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleClass: requester=%d, instructor=%d, date=%s, time=%s",
		req.RequesterID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Static validation.
	if err := validateRequest(req, uc.rules.BreatheMove.MaxSpotsPerSession, uc.rules.Appointments.Duration); err != nil {
		uc.logger.Warn("ScheduleClass: validation failed: %v", err)
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = uc.rules.BreatheMove.MaxSpotsPerSession
	}

	now := uc.timeProvider.Now()

	if dateOnly(req.Date).Before(dateOnly(now)) {
		uc.logger.Warn("ScheduleClass: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Only clinic staff may schedule classes.
	if err := uc.authorizeStaff(ctx, req.RequesterID); err != nil {
		return nil, err
	}

	// 3. The instructor must exist and still teach.
	instructor, err := uc.profiles.GetProfessional(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("ScheduleClass: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("ScheduleClass: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}
	if !instructor.Active {
		uc.logger.Warn("ScheduleClass: instructor id=%d is inactive", req.InstructorID)
		return nil, ErrInstructorInactive
	}

	// 4. The session must fit working hours like any other booking.
	endTime, err := req.StartTime.AddMinutes(req.DurationMin)
	if err != nil {
		uc.logger.Warn("ScheduleClass: session runs past midnight: %v", err)
		return nil, fmt.Errorf("%w: session runs past midnight", ErrOutsideWorkingHours)
	}
	if err := validateWorkingHours(uc.rules.Appointments.WorkingHours, req.Date, req.StartTime, endTime); err != nil {
		uc.logger.Warn("ScheduleClass: working-hours validation failed: %v", err)
		return nil, err
	}

	var result *domain.ClassSession

	// 5. Conflict checks and the insert, atomically.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		busy, err := uc.collectBusyPeriods(txCtx, req.Date)
		if err != nil {
			return err
		}

		candidate := domain.ClassSession{
			InstructorID: req.InstructorID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			DurationMin:  req.DurationMin,
		}

		roomPeriod, err := candidate.RoomPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build room period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(roomPeriod, busy) {
			uc.logger.Warn("ScheduleClass: room conflict on %s at %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("room")
			return ErrRoomConflict
		}

		instructorPeriod, err := candidate.InstructorPeriod()
		if err != nil {
			return fmt.Errorf("%w: failed to build instructor period: %v", ErrInternal, err)
		}
		if schedule.HasOverlap(instructorPeriod, busy) {
			uc.logger.Warn("ScheduleClass: instructor id=%d conflict on %s at %s",
				req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.ConflictRejected("professional")
			return ErrInstructorConflict
		}

		session := &domain.ClassSession{
			InstructorID: req.InstructorID,
			Title:        req.Title,
			Date:         req.Date,
			StartTime:    req.StartTime,
			DurationMin:  req.DurationMin,
			Capacity:     capacity,
		}

		created, err := uc.classRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("ScheduleClass: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScheduleClass: scheduled session id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		InstructorID: result.InstructorID,
		Title:        result.Title,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      endTime,
		DurationMin:  result.DurationMin,
		Capacity:     result.Capacity,
		SpotsLeft:    result.SpotsLeft(),
		CreatedAt:    result.CreatedAt,
	}, nil
}

func (uc *UseCase) authorizeStaff(ctx context.Context, requesterID int64) error {
	requester, err := uc.profiles.GetProfessional(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("ScheduleClass: requester id=%d is not a professional", requesterID)
			return ErrAccessDenied
		}
		uc.logger.Error("ScheduleClass: failed to get requester id=%d: %v", requesterID, err)
		return fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}
	if !requester.Staff {
		uc.logger.Warn("ScheduleClass: professional id=%d is not staff", requesterID)
		return ErrAccessDenied
	}
	return nil
}

func (uc *UseCase) collectBusyPeriods(ctx context.Context, date time.Time) ([]schedule.Period, error) {
	appointments, err := uc.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("ScheduleClass: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	sessions, err := uc.classRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("ScheduleClass: failed to get class sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get class sessions: %v", ErrInternal, err)
	}

	busy := make([]schedule.Period, 0, 2*(len(appointments)+len(sessions)))

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
		busy = append(busy, room, prof)
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
		busy = append(busy, room, instructor)
	}

	return busy, nil
}

func validateRequest(req *Request, maxSpots int, bounds rules.DurationBounds) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
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
	if req.DurationMin < bounds.Min || req.DurationMin > bounds.Max {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, bounds.Min, bounds.Max)
	}
	if req.Capacity < 0 || req.Capacity > maxSpots {
		return fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidCapacity, maxSpots)
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
		return fmt.Errorf("%w: session runs past closing time %s", ErrOutsideWorkingHours, w.Close)
	}
	if !w.LunchStart.IsZero() && !w.LunchEnd.IsZero() {
		if start.Minutes() < w.LunchEnd.Minutes() && end.Minutes() > w.LunchStart.Minutes() {
			return fmt.Errorf("%w: session crosses the lunch break", ErrOutsideWorkingHours)
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
