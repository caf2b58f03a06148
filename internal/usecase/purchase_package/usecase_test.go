package purchase_package

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/pkg/ptr"
)

type fakePackageRepo struct {
	created *domain.PackagePurchase
}

func (f *fakePackageRepo) Create(_ context.Context, purchase *domain.PackagePurchase) (*domain.PackagePurchase, error) {
	out := *purchase
	out.ID = 11
	out.CreatedAt = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	f.created = &out
	return &out, nil
}

type fakeCreditRepo struct {
	entries []*domain.CreditEntry
	debits  []*domain.CreditEntry
}

func (f *fakeCreditRepo) GetByPatient(_ context.Context, _ int64) ([]*domain.CreditEntry, error) {
	return f.entries, nil
}

func (f *fakeCreditRepo) CreateEntry(_ context.Context, entry *domain.CreditEntry) (*domain.CreditEntry, error) {
	out := *entry
	out.ID = int64(len(f.debits) + 1)
	f.debits = append(f.debits, &out)
	return &out, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)

func issuedCredit(amount int64, expiresAt time.Time) *domain.CreditEntry {
	return &domain.CreditEntry{
		PatientID: 1,
		Amount:    amount,
		Reason:    domain.CreditReasonCancellation,
		ExpiresAt: ptr.Ptr(expiresAt),
	}
}

func newTestUseCase(t *testing.T) (*UseCase, *fakePackageRepo, *fakeCreditRepo) {
	t.Helper()

	r, err := rules.Load()
	require.NoError(t, err)

	packages := &fakePackageRepo{}
	credits := &fakeCreditRepo{}

	uc := NewUseCase(packages, credits, fakeTxManager{}, r, nopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}
	return uc, packages, credits
}

func TestExecute_PlainPurchase(t *testing.T) {
	uc, packages, credits := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		PatientID:     1,
		Tier:          "x4",
		PaymentMethod: "tarjeta",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, 4, resp.ClassesLeft)
	assert.Equal(t, int64(160_000), resp.PriceList)
	assert.Equal(t, int64(160_000), resp.AmountCharged)
	assert.Zero(t, resp.CreditApplied)
	assert.Equal(t, testNow.AddDate(0, 0, 60), resp.ExpiresAt)
	assert.Empty(t, credits.debits)
	require.NotNil(t, packages.created)
	assert.Equal(t, "x4", packages.created.Tier)
}

func TestExecute_UnlimitedTier(t *testing.T) {
	uc, packages, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		PatientID:     1,
		Tier:          "ilimitado",
		PaymentMethod: "tarjeta",
	})
	require.NoError(t, err)

	assert.Equal(t, rules.UnlimitedClasses, resp.ClassesLeft)
	assert.Equal(t, int64(350_000), resp.AmountCharged)
	assert.Equal(t, testNow.AddDate(0, 0, 30), resp.ExpiresAt)
	assert.Equal(t, rules.UnlimitedClasses, packages.created.ClassesLeft)
}

func TestExecute_CreditApplication(t *testing.T) {
	t.Run("partial credit reduces the charge", func(t *testing.T) {
		uc, packages, credits := newTestUseCase(t)
		credits.entries = []*domain.CreditEntry{
			issuedCredit(50_000, testNow.AddDate(0, 0, 30)),
		}

		resp, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "tarjeta",
			UseCredit:     true,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(50_000), resp.CreditApplied)
		assert.Equal(t, int64(110_000), resp.AmountCharged)
		assert.Equal(t, int64(50_000), packages.created.CreditApplied)

		require.Len(t, credits.debits, 1)
		debit := credits.debits[0]
		assert.Equal(t, int64(-50_000), debit.Amount)
		assert.Equal(t, domain.CreditReasonUsage, debit.Reason)
		assert.NotEmpty(t, debit.Reference)
		assert.Nil(t, debit.ExpiresAt)
	})

	t.Run("credit larger than the price is capped", func(t *testing.T) {
		uc, _, credits := newTestUseCase(t)
		credits.entries = []*domain.CreditEntry{
			issuedCredit(500_000, testNow.AddDate(0, 0, 30)),
		}

		resp, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "individual", // 45 000
			PaymentMethod: "efectivo",   // allows zero-amount charges
			UseCredit:     true,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(45_000), resp.CreditApplied)
		assert.Zero(t, resp.AmountCharged)
		assert.Equal(t, int64(-45_000), credits.debits[0].Amount)
	})

	t.Run("expired credit does not count", func(t *testing.T) {
		uc, _, credits := newTestUseCase(t)
		credits.entries = []*domain.CreditEntry{
			issuedCredit(50_000, testNow.AddDate(0, 0, -1)),
		}

		_, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "tarjeta",
			UseCredit:     true,
		})
		assert.ErrorIs(t, err, ErrCreditBelowMinimum)
	})

	t.Run("previous usage reduces the balance", func(t *testing.T) {
		uc, _, credits := newTestUseCase(t)
		credits.entries = []*domain.CreditEntry{
			issuedCredit(50_000, testNow.AddDate(0, 0, 30)),
			{PatientID: 1, Amount: -30_000, Reason: domain.CreditReasonUsage},
		}

		resp, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "tarjeta",
			UseCredit:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20_000), resp.CreditApplied)
		assert.Equal(t, int64(140_000), resp.AmountCharged)
	})

	t.Run("balance below the usable minimum rejected", func(t *testing.T) {
		uc, _, credits := newTestUseCase(t)
		credits.entries = []*domain.CreditEntry{
			issuedCredit(9_999, testNow.AddDate(0, 0, 30)),
		}

		_, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "tarjeta",
			UseCredit:     true,
		})
		assert.ErrorIs(t, err, ErrCreditBelowMinimum)
	})
}

func TestExecute_PaymentValidation(t *testing.T) {
	t.Run("unknown method", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)

		_, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "cheque",
		})
		assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	})

	t.Run("disabled method", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)

		_, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "x4",
			PaymentMethod: "credito",
		})
		assert.ErrorIs(t, err, ErrPaymentMethodDisabled)
	})

	t.Run("charge below the method floor", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)

		// Full credit drops the charge to 0, under pse's 10 000 floor.
		credits := &fakeCreditRepo{entries: []*domain.CreditEntry{
			issuedCredit(45_000, testNow.AddDate(0, 0, 30)),
		}}
		uc.creditRepo = credits

		_, err := uc.Execute(context.Background(), &Request{
			PatientID:     1,
			Tier:          "individual",
			PaymentMethod: "pse", // minimum 10 000, charge would be 0
			UseCredit:     true,
		})
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
}

func TestExecute_UnknownTier(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{
		PatientID:     1,
		Tier:          "x16",
		PaymentMethod: "tarjeta",
	})
	assert.ErrorIs(t, err, ErrUnknownTier)
}
