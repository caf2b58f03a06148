// Package rules is the clinic's business-rules engine: declarative policy
// tables (cancellation tiers, working hours, booking limits, payment limits,
// credit lifecycle, reminders, class packages) plus the pure functions that
// evaluate them against concrete timestamps and amounts.
//
// The tables are built once at startup through Load, which validates every
// structural invariant and refuses to start the service on violation. After
// that the engine is read-only: no function here performs I/O, reads a clock
// or mutates state, so every evaluation is deterministic given its inputs.
package rules

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UnlimitedClasses is the sentinel for packages without a class count limit.
const UnlimitedClasses = -1

// DurationBounds constrain appointment lengths, in minutes.
type DurationBounds struct {
	Min     int
	Default int
	Max     int
}

// BookingLimits cap how much a single patient can book.
type BookingLimits struct {
	// MaxPerDay is the maximum active appointments per patient per day.
	MaxPerDay int
	// MaxAdvanceDays is how far in the future a booking may be placed.
	MaxAdvanceDays int
	// MaxPending is the maximum simultaneous unconfirmed appointments.
	MaxPending int
	// MinNoticeMinutes is the minimum lead time for same-day bookings.
	MinNoticeMinutes int
}

// AppointmentRules groups the scheduling policy for individual appointments.
type AppointmentRules struct {
	WorkingHours WorkingHours
	Duration     DurationBounds
	Limits       BookingLimits
}

// CreditRules govern the lifecycle of cancellation credits.
type CreditRules struct {
	// ExpirationDays is how long an issued credit stays usable.
	ExpirationDays int
	// WelcomeBonus is the credit granted to a newly registered patient.
	WelcomeBonus int64
	// MinUsageAmount is the smallest credit amount applicable to a payment.
	MinUsageAmount int64
}

// NotificationRules hold the reminder schedule for upcoming appointments.
type NotificationRules struct {
	// ReminderLeadHours lists how many hours before an appointment each
	// reminder is sent, in strictly descending order.
	ReminderLeadHours []int
}

// ClassPackage is one purchasable Breathe & Move package tier.
type ClassPackage struct {
	// Classes included; UnlimitedClasses means no limit.
	Classes int
	// Price in the smallest currency unit (COP).
	Price int64
	// ExpirationDays counts from the purchase date.
	ExpirationDays int
}

// BreatheMoveRules is the class-package table, keyed by package tier name.
type BreatheMoveRules struct {
	Packages map[string]ClassPackage
	// MaxSpotsPerSession caps enrollment in a single class session.
	MaxSpotsPerSession int
}

// Rules is the complete, immutable rule set consumed by the rest of the
// service. Treat it as read-only after Load.
type Rules struct {
	Cancellation  CancellationPolicy
	Appointments  AppointmentRules
	Payments      PaymentRules
	Credits       CreditRules
	Notifications NotificationRules
	BreatheMove   BreatheMoveRules
}

// Default returns the clinic's production rule set.
func Default() *Rules {
	return &Rules{
		Cancellation: CancellationPolicy{
			Tiers: []CancellationTier{
				{MinHoursBefore: 48, Fraction: 1.0},
				{MinHoursBefore: 24, Fraction: 0.75},
				{MinHoursBefore: 6, Fraction: 0.50},
				{MinHoursBefore: 2, Fraction: 0.25},
			},
			FullCreditMessage:   "Recibirás el 100% de tu pago como crédito para una futura cita.",
			PartialCreditFormat: "Recibirás el %d%% de tu pago como crédito para una futura cita.",
			NoCreditMessage:     "Tu cancelación no genera crédito por realizarse con menos de 2 horas de anticipación.",
		},
		Appointments: AppointmentRules{
			WorkingHours: WorkingHours{
				Days: []time.Weekday{
					time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
				},
				Open:       "09:00",
				Close:      "18:00",
				LunchStart: "13:00",
				LunchEnd:   "14:00",
			},
			Duration: DurationBounds{Min: 30, Default: 60, Max: 120},
			Limits: BookingLimits{
				MaxPerDay:        2,
				MaxAdvanceDays:   30,
				MaxPending:       3,
				MinNoticeMinutes: 60,
			},
		},
		Payments: PaymentRules{
			Methods: map[string]MethodLimits{
				"tarjeta":  {Enabled: true, MinAmount: 5_000, MaxAmount: 10_000_000},
				"pse":      {Enabled: true, MinAmount: 10_000, MaxAmount: 5_000_000},
				"efectivo": {Enabled: true, MinAmount: 0, MaxAmount: 1_000_000},
				"credito":  {Enabled: false, MinAmount: 0, MaxAmount: 0},
			},
		},
		Credits: CreditRules{
			ExpirationDays: 90,
			WelcomeBonus:   20_000,
			MinUsageAmount: 10_000,
		},
		Notifications: NotificationRules{
			ReminderLeadHours: []int{48, 24, 2},
		},
		BreatheMove: BreatheMoveRules{
			Packages: map[string]ClassPackage{
				"individual": {Classes: 1, Price: 45_000, ExpirationDays: 30},
				"x4":         {Classes: 4, Price: 160_000, ExpirationDays: 60},
				"x8":         {Classes: 8, Price: 280_000, ExpirationDays: 90},
				"ilimitado":  {Classes: UnlimitedClasses, Price: 350_000, ExpirationDays: 30},
			},
			MaxSpotsPerSession: 10,
		},
	}
}

// Load builds and validates the rule set. Startup fails on any violation.
func Load() (*Rules, error) {
	r := Default()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate enforces the structural invariants of every table.
func (r *Rules) Validate() error {
	if err := r.Cancellation.validate(); err != nil {
		return fmt.Errorf("rules: cancellation policy: %w", err)
	}
	if err := r.Appointments.validate(); err != nil {
		return fmt.Errorf("rules: appointment rules: %w", err)
	}
	if err := r.Payments.validate(); err != nil {
		return fmt.Errorf("rules: payment rules: %w", err)
	}
	if err := r.Credits.validate(); err != nil {
		return fmt.Errorf("rules: credit rules: %w", err)
	}
	if err := r.Notifications.validate(); err != nil {
		return fmt.Errorf("rules: notification rules: %w", err)
	}
	if err := r.BreatheMove.validate(); err != nil {
		return fmt.Errorf("rules: breathe & move rules: %w", err)
	}
	return nil
}

func (p CancellationPolicy) validate() error {
	if len(p.Tiers) == 0 {
		return errors.New("no tiers configured")
	}
	for i, tier := range p.Tiers {
		if tier.MinHoursBefore < 0 {
			return fmt.Errorf("tier %d: negative threshold", i)
		}
		if tier.Fraction < 0 || tier.Fraction > 1 {
			return fmt.Errorf("tier %d: fraction %v outside [0, 1]", i, tier.Fraction)
		}
		if i > 0 {
			if tier.MinHoursBefore >= p.Tiers[i-1].MinHoursBefore {
				return fmt.Errorf("tier %d: thresholds must be strictly descending", i)
			}
			if tier.Fraction >= p.Tiers[i-1].Fraction {
				return fmt.Errorf("tier %d: fractions must be strictly descending", i)
			}
		}
	}
	if p.FullCreditMessage == "" || p.NoCreditMessage == "" {
		return errors.New("messages must not be empty")
	}
	if !strings.Contains(p.PartialCreditFormat, "%d%%") {
		return errors.New("partial credit format must interpolate the percentage")
	}
	return nil
}

func (a AppointmentRules) validate() error {
	if err := a.WorkingHours.validate(); err != nil {
		return err
	}
	d := a.Duration
	if d.Min <= 0 || d.Min > d.Default || d.Default > d.Max {
		return fmt.Errorf("duration bounds must satisfy 0 < min <= default <= max, got %+v", d)
	}
	l := a.Limits
	if l.MaxPerDay <= 0 || l.MaxAdvanceDays <= 0 || l.MaxPending <= 0 || l.MinNoticeMinutes < 0 {
		return fmt.Errorf("booking limits must be positive, got %+v", l)
	}
	return nil
}

func (w WorkingHours) validate() error {
	if len(w.Days) == 0 {
		return errors.New("working-day set is empty")
	}
	seen := map[time.Weekday]bool{}
	for _, d := range w.Days {
		if seen[d] {
			return fmt.Errorf("duplicate working day %s", d)
		}
		seen[d] = true
	}
	for _, t := range []struct {
		name  string
		value string
	}{
		{"open", string(w.Open)}, {"close", string(w.Close)},
	} {
		if t.value == "" {
			return fmt.Errorf("%s time is required", t.name)
		}
	}
	if err := w.Open.Validate(); err != nil {
		return fmt.Errorf("open time: %w", err)
	}
	if err := w.Close.Validate(); err != nil {
		return fmt.Errorf("close time: %w", err)
	}
	if !w.Open.IsBefore(w.Close) {
		return errors.New("open must be before close")
	}
	if w.LunchStart.IsZero() != w.LunchEnd.IsZero() {
		return errors.New("lunch break needs both start and end")
	}
	if w.hasLunchBreak() {
		if err := w.LunchStart.Validate(); err != nil {
			return fmt.Errorf("lunch start: %w", err)
		}
		if err := w.LunchEnd.Validate(); err != nil {
			return fmt.Errorf("lunch end: %w", err)
		}
		if !w.Open.IsBefore(w.LunchStart) || !w.LunchStart.IsBefore(w.LunchEnd) || !w.LunchEnd.IsBefore(w.Close) {
			return errors.New("lunch break must satisfy open < start < end < close")
		}
	}
	return nil
}

func (p PaymentRules) validate() error {
	if len(p.Methods) == 0 {
		return errors.New("no payment methods configured")
	}
	for name, limits := range p.Methods {
		if limits.MinAmount < 0 {
			return fmt.Errorf("method %q: negative minimum", name)
		}
		if limits.MaxAmount < limits.MinAmount {
			return fmt.Errorf("method %q: max below min", name)
		}
	}
	return nil
}

func (c CreditRules) validate() error {
	if c.ExpirationDays <= 0 {
		return errors.New("expiration days must be positive")
	}
	if c.WelcomeBonus < 0 || c.MinUsageAmount < 0 {
		return errors.New("amounts must be non-negative")
	}
	return nil
}

func (n NotificationRules) validate() error {
	if len(n.ReminderLeadHours) == 0 {
		return errors.New("no reminder lead times configured")
	}
	for i, h := range n.ReminderLeadHours {
		if h <= 0 {
			return fmt.Errorf("lead time %d: must be positive", i)
		}
		if i > 0 && h >= n.ReminderLeadHours[i-1] {
			return fmt.Errorf("lead time %d: must be strictly descending", i)
		}
	}
	return nil
}

func (b BreatheMoveRules) validate() error {
	if len(b.Packages) == 0 {
		return errors.New("no class packages configured")
	}
	for name, pkg := range b.Packages {
		if pkg.Classes != UnlimitedClasses && pkg.Classes <= 0 {
			return fmt.Errorf("package %q: classes must be positive or the unlimited sentinel", name)
		}
		if pkg.Price < 0 {
			return fmt.Errorf("package %q: negative price", name)
		}
		if pkg.ExpirationDays <= 0 {
			return fmt.Errorf("package %q: expiration days must be positive", name)
		}
	}
	if b.MaxSpotsPerSession <= 0 {
		return errors.New("max spots per session must be positive")
	}
	return nil
}
