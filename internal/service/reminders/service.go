package reminders

import (
	"context"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/integrations/notify"
	"github.com/holistia/booking-service/internal/rules"
)

// Service sends appointment reminders at the configured lead times.
// Each sweep covers one interval-wide window per lead time, so an
// appointment gets exactly one reminder per configured lead as long as the
// sweeps run on schedule. Delivery failures are logged and retried naturally
// by the next sweep only if the window still covers the appointment.
type Service struct {
	appointmentRepo AppointmentRepository
	notifyClient    NotifyClient
	rules           *rules.Rules
	interval        time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the reminders service sweeping at the given interval.
func NewService(
	appointmentRepo AppointmentRepository,
	notifyClient NotifyClient,
	r *rules.Rules,
	interval time.Duration,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifyClient:    notifyClient,
		rules:           r,
		interval:        interval,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Run sweeps until the context is cancelled. Intended to run in its own
// goroutine from main.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("reminders: sweeping every %s for lead hours %v",
		s.interval, s.rules.Notifications.ReminderLeadHours)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminders: stopped")
			return
		case <-ticker.C:
			if err := s.SendDueReminders(ctx); err != nil {
				s.logger.Error("reminders: sweep failed: %v", err)
			}
		}
	}
}

// SendDueReminders sends one reminder per lead time for every active
// appointment whose start falls inside the current sweep window.
func (s *Service) SendDueReminders(ctx context.Context) error {
	now := s.timeProvider.Now()
	sent := 0

	for _, leadHours := range s.rules.Notifications.ReminderLeadHours {
		windowStart := now.Add(time.Duration(leadHours) * time.Hour)
		windowEnd := windowStart.Add(s.interval)

		due, err := s.appointmentsStartingIn(ctx, windowStart, windowEnd, now.Location())
		if err != nil {
			return err
		}

		for _, appt := range due {
			reminder := &notify.Reminder{
				PatientID:     appt.PatientID,
				AppointmentID: appt.ID,
				StartsAt:      appt.StartsAt(now.Location()),
				LeadHours:     leadHours,
				ServiceName:   appt.ServiceName,
			}
			if err := s.notifyClient.SendReminder(ctx, reminder); err != nil {
				// One stuck reminder must not block the rest of the sweep.
				s.logger.Error("reminders: failed to send for appointment id=%d: %v", appt.ID, err)
				continue
			}
			sent++
		}
	}

	if sent > 0 {
		s.logger.Info("reminders: sent %d reminders", sent)
	}
	return nil
}

func (s *Service) appointmentsStartingIn(ctx context.Context, windowStart, windowEnd time.Time, loc *time.Location) ([]*domain.Appointment, error) {
	startDate := dateOnly(windowStart)
	endDate := dateOnly(windowEnd)

	filter := domain.AppointmentsFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("reminders: failed to list appointments: %v", err)
		return nil, err
	}

	due := make([]*domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		startsAt := appt.StartsAt(loc)
		if !startsAt.Before(windowStart) && startsAt.Before(windowEnd) {
			due = append(due, appt)
		}
	}
	return due, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
