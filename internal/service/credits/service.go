package credits

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/internal/service/credits/models"
)

// Service implements credit ledger reads and the welcome bonus grant.
// The balance is always derived from the append-only ledger; no row ever
// stores it.
type Service struct {
	creditRepo   CreditRepository
	rules        *rules.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the credits service.
func NewService(creditRepo CreditRepository, r *rules.Rules, logger Logger) *Service {
	return &Service{
		creditRepo:   creditRepo,
		rules:        r,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetLedger lists a patient's ledger entries and the available balance.
func (s *Service) GetLedger(ctx context.Context, patientID int64) (*models.LedgerResponse, error) {
	s.logger.Info("GetLedger: patient=%d", patientID)

	if patientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	entries, err := s.creditRepo.GetByPatient(ctx, patientID)
	if err != nil {
		s.logger.Error("GetLedger: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GetLedger - repository error: %v", ErrInternal, err)
	}

	response := &models.LedgerResponse{
		PatientID: patientID,
		Balance:   domain.AvailableCredit(entries, now),
		Entries:   make([]*models.EntryResponse, len(entries)),
	}
	for i, entry := range entries {
		response.Entries[i] = models.FromDomainEntry(entry, now)
	}
	return response, nil
}

// GetBalance returns only the available balance.
func (s *Service) GetBalance(ctx context.Context, patientID int64) (int64, error) {
	if patientID <= 0 {
		return 0, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	entries, err := s.creditRepo.GetByPatient(ctx, patientID)
	if err != nil {
		s.logger.Error("GetBalance: repository error for patient=%d: %v", patientID, err)
		return 0, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
	}
	return domain.AvailableCredit(entries, s.timeProvider.Now()), nil
}

// GrantWelcomeBonus issues the one-time registration credit. The grant is
// idempotent: a second call for the same patient fails with ErrAlreadyGranted.
func (s *Service) GrantWelcomeBonus(ctx context.Context, patientID int64) (*models.EntryResponse, error) {
	s.logger.Info("GrantWelcomeBonus: patient=%d", patientID)

	if patientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	granted, err := s.creditRepo.HasEntryWithReason(ctx, patientID, domain.CreditReasonWelcome)
	if err != nil {
		s.logger.Error("GrantWelcomeBonus: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GrantWelcomeBonus - repository error: %v", ErrInternal, err)
	}
	if granted {
		s.logger.Warn("GrantWelcomeBonus: patient=%d already has the bonus", patientID)
		return nil, ErrAlreadyGranted
	}

	now := s.timeProvider.Now()
	expiresAt := now.AddDate(0, 0, s.rules.Credits.ExpirationDays)

	entry := &domain.CreditEntry{
		PatientID:   patientID,
		Reference:   uuid.NewString(),
		Amount:      s.rules.Credits.WelcomeBonus,
		Reason:      domain.CreditReasonWelcome,
		Description: "Crédito de bienvenida",
		ExpiresAt:   &expiresAt,
	}

	created, err := s.creditRepo.CreateEntry(ctx, entry)
	if err != nil {
		s.logger.Error("GrantWelcomeBonus: failed to create entry: %v", err)
		return nil, fmt.Errorf("%w: GrantWelcomeBonus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GrantWelcomeBonus: granted %d to patient=%d", entry.Amount, patientID)
	return models.FromDomainEntry(created, now), nil
}
