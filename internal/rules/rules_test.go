package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultRulesAreValid(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Len(t, r.Cancellation.Tiers, 4)
	assert.Equal(t, 90, r.Credits.ExpirationDays)
	assert.Equal(t, UnlimitedClasses, r.BreatheMove.Packages["ilimitado"].Classes)
}

func TestRules_Validate_RejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{
			name: "non-descending cancellation thresholds",
			mutate: func(r *Rules) {
				r.Cancellation.Tiers[1].MinHoursBefore = 48
			},
		},
		{
			name: "non-descending cancellation fractions",
			mutate: func(r *Rules) {
				r.Cancellation.Tiers[2].Fraction = 0.9
			},
		},
		{
			name: "fraction above one",
			mutate: func(r *Rules) {
				r.Cancellation.Tiers[0].Fraction = 1.5
			},
		},
		{
			name: "partial message without percentage",
			mutate: func(r *Rules) {
				r.Cancellation.PartialCreditFormat = "crédito parcial"
			},
		},
		{
			name: "default duration below minimum",
			mutate: func(r *Rules) {
				r.Appointments.Duration.Default = 15
			},
		},
		{
			name: "maximum duration below default",
			mutate: func(r *Rules) {
				r.Appointments.Duration.Max = 45
			},
		},
		{
			name: "lunch break outside the day",
			mutate: func(r *Rules) {
				r.Appointments.WorkingHours.LunchEnd = "19:00"
			},
		},
		{
			name: "lunch break missing its end",
			mutate: func(r *Rules) {
				r.Appointments.WorkingHours.LunchEnd = ""
			},
		},
		{
			name: "open after close",
			mutate: func(r *Rules) {
				r.Appointments.WorkingHours.Open = "19:00"
			},
		},
		{
			name: "duplicate working day",
			mutate: func(r *Rules) {
				r.Appointments.WorkingHours.Days = append(r.Appointments.WorkingHours.Days, time.Monday)
			},
		},
		{
			name: "payment max below min",
			mutate: func(r *Rules) {
				r.Payments.Methods["pse"] = MethodLimits{Enabled: true, MinAmount: 100, MaxAmount: 50}
			},
		},
		{
			name: "negative package price",
			mutate: func(r *Rules) {
				r.BreatheMove.Packages["x4"] = ClassPackage{Classes: 4, Price: -1, ExpirationDays: 60}
			},
		},
		{
			name: "zero-class package without sentinel",
			mutate: func(r *Rules) {
				r.BreatheMove.Packages["x4"] = ClassPackage{Classes: 0, Price: 1, ExpirationDays: 60}
			},
		},
		{
			name: "reminder lead times not descending",
			mutate: func(r *Rules) {
				r.Notifications.ReminderLeadHours = []int{2, 24}
			},
		},
		{
			name: "credit expiration not positive",
			mutate: func(r *Rules) {
				r.Credits.ExpirationDays = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestPaymentRules_ValidateAmount(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)
	payments := r.Payments

	tests := []struct {
		name    string
		method  string
		amount  int64
		wantErr error
	}{
		{name: "valid card payment", method: "tarjeta", amount: 100_000},
		{name: "valid pse at lower bound", method: "pse", amount: 10_000},
		{name: "pse below minimum", method: "pse", amount: 9_999, wantErr: ErrAmountOutOfRange},
		{name: "cash above maximum", method: "efectivo", amount: 1_000_001, wantErr: ErrAmountOutOfRange},
		{name: "disabled method", method: "credito", amount: 1, wantErr: ErrPaymentMethodDisabled},
		{name: "unknown method", method: "bitcoin", amount: 1, wantErr: ErrUnknownPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := payments.ValidateAmount(tt.method, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
