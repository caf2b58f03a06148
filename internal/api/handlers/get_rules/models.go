package get_rules

import (
	"github.com/holistia/booking-service/internal/rules"
)

// CancellationTierResponse is one credit tier of the cancellation policy.
type CancellationTierResponse struct {
	MinHoursBefore float64 `json:"min_hours_before"`
	Fraction       float64 `json:"fraction"`
}

// WorkingHoursResponse is the weekly booking window.
type WorkingHoursResponse struct {
	Days       []string `json:"days"`
	Open       string   `json:"open"`
	Close      string   `json:"close"`
	LunchStart string   `json:"lunch_start,omitempty"`
	LunchEnd   string   `json:"lunch_end,omitempty"`
}

// DurationResponse is the appointment duration bounds, in minutes.
type DurationResponse struct {
	Min     int `json:"min"`
	Default int `json:"default"`
	Max     int `json:"max"`
}

// LimitsResponse is the per-patient booking caps.
type LimitsResponse struct {
	MaxPerDay        int `json:"max_per_day"`
	MaxAdvanceDays   int `json:"max_advance_days"`
	MaxPending       int `json:"max_pending"`
	MinNoticeMinutes int `json:"min_notice_minutes"`
}

// PaymentMethodResponse is the limits of one payment method.
type PaymentMethodResponse struct {
	Enabled   bool  `json:"enabled"`
	MinAmount int64 `json:"min_amount"`
	MaxAmount int64 `json:"max_amount"`
}

// CreditsResponse is the credit lifecycle policy.
type CreditsResponse struct {
	ExpirationDays int   `json:"expiration_days"`
	WelcomeBonus   int64 `json:"welcome_bonus"`
	MinUsageAmount int64 `json:"min_usage_amount"`
}

// PackageResponse is one purchasable class package tier.
type PackageResponse struct {
	// Classes is -1 for unlimited packages.
	Classes        int   `json:"classes"`
	Price          int64 `json:"price"`
	ExpirationDays int   `json:"expiration_days"`
}

// RulesResponse is the public snapshot of the clinic's policy tables.
type RulesResponse struct {
	CancellationTiers  []CancellationTierResponse       `json:"cancellation_tiers"`
	WorkingHours       WorkingHoursResponse             `json:"working_hours"`
	Duration           DurationResponse                 `json:"duration"`
	Limits             LimitsResponse                   `json:"limits"`
	PaymentMethods     map[string]PaymentMethodResponse `json:"payment_methods"`
	Credits            CreditsResponse                  `json:"credits"`
	ReminderLeadHours  []int                            `json:"reminder_lead_hours"`
	Packages           map[string]PackageResponse       `json:"packages"`
	MaxSpotsPerSession int                              `json:"max_spots_per_session"`
}

// FromRules builds the snapshot once at startup; the tables never change
// while the service runs.
func FromRules(r *rules.Rules) *RulesResponse {
	tiers := make([]CancellationTierResponse, len(r.Cancellation.Tiers))
	for i, tier := range r.Cancellation.Tiers {
		tiers[i] = CancellationTierResponse{
			MinHoursBefore: tier.MinHoursBefore,
			Fraction:       tier.Fraction,
		}
	}

	days := make([]string, len(r.Appointments.WorkingHours.Days))
	for i, day := range r.Appointments.WorkingHours.Days {
		days[i] = day.String()
	}

	methods := make(map[string]PaymentMethodResponse, len(r.Payments.Methods))
	for name, limits := range r.Payments.Methods {
		methods[name] = PaymentMethodResponse{
			Enabled:   limits.Enabled,
			MinAmount: limits.MinAmount,
			MaxAmount: limits.MaxAmount,
		}
	}

	packages := make(map[string]PackageResponse, len(r.BreatheMove.Packages))
	for name, pkg := range r.BreatheMove.Packages {
		packages[name] = PackageResponse{
			Classes:        pkg.Classes,
			Price:          pkg.Price,
			ExpirationDays: pkg.ExpirationDays,
		}
	}

	return &RulesResponse{
		CancellationTiers: tiers,
		WorkingHours: WorkingHoursResponse{
			Days:       days,
			Open:       r.Appointments.WorkingHours.Open.String(),
			Close:      r.Appointments.WorkingHours.Close.String(),
			LunchStart: r.Appointments.WorkingHours.LunchStart.String(),
			LunchEnd:   r.Appointments.WorkingHours.LunchEnd.String(),
		},
		Duration: DurationResponse{
			Min:     r.Appointments.Duration.Min,
			Default: r.Appointments.Duration.Default,
			Max:     r.Appointments.Duration.Max,
		},
		Limits: LimitsResponse{
			MaxPerDay:        r.Appointments.Limits.MaxPerDay,
			MaxAdvanceDays:   r.Appointments.Limits.MaxAdvanceDays,
			MaxPending:       r.Appointments.Limits.MaxPending,
			MinNoticeMinutes: r.Appointments.Limits.MinNoticeMinutes,
		},
		PaymentMethods: methods,
		Credits: CreditsResponse{
			ExpirationDays: r.Credits.ExpirationDays,
			WelcomeBonus:   r.Credits.WelcomeBonus,
			MinUsageAmount: r.Credits.MinUsageAmount,
		},
		ReminderLeadHours:  r.Notifications.ReminderLeadHours,
		Packages:           packages,
		MaxSpotsPerSession: r.BreatheMove.MaxSpotsPerSession,
	}
}
