package purchase_package

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/rules"
)

// UseCase sells a Breathe & Move class package, optionally paying part of the
// price with the patient's accumulated credit.
type UseCase struct {
	packageRepo  PackageRepository
	creditRepo   CreditRepository
	txManager    TransactionManager
	rules        *rules.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case with its dependencies.
func NewUseCase(
	packageRepo PackageRepository,
	creditRepo CreditRepository,
	txManager TransactionManager,
	r *rules.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		packageRepo:  packageRepo,
		creditRepo:   creditRepo,
		txManager:    txManager,
		rules:        r,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the purchase flow. The purchase row and the credit debit
// commit together.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PurchasePackage: patient=%d, tier=%s, method=%s, useCredit=%t",
		req.PatientID, req.Tier, req.PaymentMethod, req.UseCredit)

	// 1. Static validation.
	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.Tier == "" {
		return nil, fmt.Errorf("%w: tier is required", ErrInvalidInput)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	tier, ok := uc.rules.BreatheMove.Packages[req.Tier]
	if !ok {
		uc.logger.Warn("PurchasePackage: unknown tier %q", req.Tier)
		return nil, ErrUnknownTier
	}

	now := uc.timeProvider.Now()

	// 2. Credit application against the derived ledger balance.
	var creditApplied int64
	if req.UseCredit {
		applied, err := uc.applicableCredit(ctx, req.PatientID, tier.Price, now)
		if err != nil {
			return nil, err
		}
		creditApplied = applied
	}
	amountCharged := tier.Price - creditApplied

	// 3. The charged amount must satisfy the payment method's limits.
	if err := uc.rules.Payments.ValidateAmount(req.PaymentMethod, amountCharged); err != nil {
		uc.logger.Warn("PurchasePackage: payment validation failed: %v", err)
		switch {
		case errors.Is(err, rules.ErrUnknownPaymentMethod):
			return nil, ErrUnknownPaymentMethod
		case errors.Is(err, rules.ErrPaymentMethodDisabled):
			return nil, ErrPaymentMethodDisabled
		case errors.Is(err, rules.ErrAmountOutOfRange):
			return nil, fmt.Errorf("%w: %v", ErrAmountOutOfRange, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	var result *domain.PackagePurchase

	// 4. Purchase and debit, atomically.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		purchase := &domain.PackagePurchase{
			PatientID:     req.PatientID,
			Tier:          req.Tier,
			ClassesLeft:   tier.Classes,
			PricePaid:     amountCharged,
			PaymentMethod: req.PaymentMethod,
			CreditApplied: creditApplied,
			ExpiresAt:     now.AddDate(0, 0, tier.ExpirationDays),
		}

		created, err := uc.packageRepo.Create(txCtx, purchase)
		if err != nil {
			uc.logger.Error("PurchasePackage: failed to create purchase: %v", err)
			return fmt.Errorf("%w: failed to create purchase: %v", ErrInternal, err)
		}

		if creditApplied > 0 {
			entry := &domain.CreditEntry{
				PatientID:   req.PatientID,
				Reference:   uuid.NewString(),
				Amount:      -creditApplied,
				Reason:      domain.CreditReasonUsage,
				Description: fmt.Sprintf("Crédito aplicado a la compra del paquete %s", req.Tier),
			}
			if _, err := uc.creditRepo.CreateEntry(txCtx, entry); err != nil {
				uc.logger.Error("PurchasePackage: failed to debit credit: %v", err)
				return fmt.Errorf("%w: failed to debit credit: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("PurchasePackage: purchase id=%d, charged=%d, credit=%d",
		result.ID, amountCharged, creditApplied)

	return &Response{
		ID:            result.ID,
		PatientID:     result.PatientID,
		Tier:          result.Tier,
		ClassesLeft:   result.ClassesLeft,
		PriceList:     tier.Price,
		CreditApplied: creditApplied,
		AmountCharged: amountCharged,
		PaymentMethod: result.PaymentMethod,
		ExpiresAt:     result.ExpiresAt,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// applicableCredit derives the available balance from the ledger and caps it
// at the package price.
func (uc *UseCase) applicableCredit(ctx context.Context, patientID, price int64, now time.Time) (int64, error) {
	entries, err := uc.creditRepo.GetByPatient(ctx, patientID)
	if err != nil {
		uc.logger.Error("PurchasePackage: failed to get credit ledger: %v", err)
		return 0, fmt.Errorf("%w: failed to get credit ledger: %v", ErrInternal, err)
	}

	balance := domain.AvailableCredit(entries, now)

	if balance < uc.rules.Credits.MinUsageAmount {
		uc.logger.Warn("PurchasePackage: patient id=%d balance %d below usable minimum %d",
			patientID, balance, uc.rules.Credits.MinUsageAmount)
		return 0, ErrCreditBelowMinimum
	}

	if balance > price {
		return price, nil
	}
	return balance, nil
}
