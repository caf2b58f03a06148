package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/holistia/booking-service/internal/domain"
	appointmentRepo "github.com/holistia/booking-service/internal/infra/storage/appointment"
	profilesClient "github.com/holistia/booking-service/internal/integrations/profiles"
	"github.com/holistia/booking-service/internal/rules"
)

// UseCase cancels an appointment and issues the credit the cancellation
// policy grants for the remaining lead time.
type UseCase struct {
	appointmentRepo AppointmentRepository
	creditRepo      CreditRepository
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
	creditRepo CreditRepository,
	profiles ProfilesClient,
	txManager TransactionManager,
	r *rules.Rules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		creditRepo:      creditRepo,
		profiles:        profiles,
		txManager:       txManager,
		rules:           r,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute runs the cancellation flow. The status change and the credit ledger
// entry commit together or not at all.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: appointment=%d, requester=%d", req.AppointmentID, req.RequesterID)

	// 1. Static validation.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Load the appointment.
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Resolve who is cancelling: the patient themselves or clinic staff.
	status, err := uc.resolveCancellationStatus(ctx, appointment, req.RequesterID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCancelled() {
		uc.logger.Warn("CancelAppointment: appointment id=%d in status %s cannot be cancelled",
			appointment.ID, appointment.Status)
		return nil, ErrCannotCancel
	}

	// 4. Evaluate the cancellation policy against the clock. Clinic-initiated
	// cancellations always refund in full regardless of lead time.
	var quote rules.CreditQuote
	if status == domain.StatusCancelledByClinic {
		quote = rules.CreditQuote{
			Amount:   appointment.Price,
			Fraction: 1,
			Message:  uc.rules.Cancellation.FullCreditMessage,
		}
	} else {
		quote = uc.rules.Cancellation.Quote(appointment.StartsAt(now.Location()), now, appointment.Price)
	}

	var expiresAt *time.Time

	// 5. Flip the status and append the ledger entry atomically.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.Cancel(txCtx, appointment.ID, status, req.Reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to cancel appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		if quote.Amount <= 0 {
			return nil
		}

		expiry := now.AddDate(0, 0, uc.rules.Credits.ExpirationDays)
		expiresAt = &expiry

		entry := &domain.CreditEntry{
			PatientID:   appointment.PatientID,
			Reference:   uuid.NewString(),
			Amount:      quote.Amount,
			Reason:      domain.CreditReasonCancellation,
			Description: fmt.Sprintf("Crédito por cancelación de la cita %d", appointment.ID),
			ExpiresAt:   expiresAt,
		}
		if _, err := uc.creditRepo.CreateEntry(txCtx, entry); err != nil {
			uc.logger.Error("CancelAppointment: failed to create credit entry: %v", err)
			return fmt.Errorf("%w: failed to create credit entry: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AppointmentCancelled(quote.Amount)
	uc.logger.Info("CancelAppointment: cancelled appointment id=%d, credit=%d (%.0f%%)",
		appointment.ID, quote.Amount, quote.Fraction*100)

	return &Response{
		ID:          appointment.ID,
		Status:      string(status),
		CancelledAt: now,
		Credit: CreditResult{
			Amount:    quote.Amount,
			Fraction:  quote.Fraction,
			Message:   quote.Message,
			ExpiresAt: expiresAt,
		},
	}, nil
}

// resolveCancellationStatus maps the requester to the resulting status.
func (uc *UseCase) resolveCancellationStatus(ctx context.Context, appointment *domain.Appointment, requesterID int64) (domain.AppointmentStatus, error) {
	if requesterID == appointment.PatientID {
		return domain.StatusCancelledByPatient, nil
	}

	professional, err := uc.profiles.GetProfessional(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profilesClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CancelAppointment: requester id=%d may not cancel appointment id=%d",
				requesterID, appointment.ID)
			return "", ErrAccessDenied
		}
		uc.logger.Error("CancelAppointment: failed to get requester id=%d: %v", requesterID, err)
		return "", fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}
	if !professional.Staff {
		uc.logger.Warn("CancelAppointment: professional id=%d is not staff", requesterID)
		return "", ErrAccessDenied
	}
	return domain.StatusCancelledByClinic, nil
}

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
