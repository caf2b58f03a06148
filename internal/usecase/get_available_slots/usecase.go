package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/holistia/booking-service/internal/domain"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/schedule"
)

// UseCase lists the slots of a professional still bookable on a date.
// The listing is advisory: creation re-checks availability under a
// serializable transaction, so a stale answer here can never double-book.
type UseCase struct {
	appointmentRepo AppointmentRepository
	classRepo       ClassSessionRepository
	profiles        ProfilesClient
	rules           *rules.Rules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case with its dependencies.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	classRepo ClassSessionRepository,
	profiles ProfilesClient,
	r *rules.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		classRepo:       classRepo,
		profiles:        profiles,
		rules:           r,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute builds the slot grid for the date and filters it by the clock and
// by the existing bookings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s",
		req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Static validation.
	apptRules := uc.rules.Appointments
	if err := validateRequest(req, apptRules.Duration); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	durationMin := req.DurationMin
	if durationMin == 0 {
		durationMin = apptRules.Duration.Default
	}

	now := uc.timeProvider.Now()

	response := &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		DurationMin:    durationMin,
		Slots:          []Slot{},
	}

	// 2. Past dates answer with an empty list rather than an error.
	if isDateInPast(req.Date, now) {
		return response, nil
	}

	// 3. The professional must exist.
	if _, err := uc.profiles.GetProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 4. Grid from the working hours, then the notice filter.
	grid, err := generateSlotGrid(apptRules.WorkingHours, req.Date, durationMin)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}
	grid = filterByNotice(grid, req.Date, now, apptRules.Limits.MinNoticeMinutes)
	if len(grid) == 0 {
		return response, nil
	}

	// 5. Busy periods of the day: appointments and class sessions, both
	// projected onto the room and onto their professional.
	busy, err := uc.collectBusyPeriods(ctx, req)
	if err != nil {
		return nil, err
	}

	response.Slots = filterByConflicts(
		grid,
		durationMin,
		req.Date,
		domain.RoomResource(),
		domain.ProfessionalResource(req.ProfessionalID),
		busy,
	)

	uc.logger.Info("GetAvailableSlots: %d slots available for professional=%d on %s",
		len(response.Slots), req.ProfessionalID, req.Date.Format(domain.DateFormat))
	return response, nil
}

func (uc *UseCase) collectBusyPeriods(ctx context.Context, req *Request) ([]schedule.Period, error) {
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	sessions, err := uc.classRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get class sessions: %v", err)
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

func validateRequest(req *Request, bounds rules.DurationBounds) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMin != 0 {
		if req.DurationMin < bounds.Min || req.DurationMin > bounds.Max {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, bounds.Min, bounds.Max)
		}
	}
	return nil
}
