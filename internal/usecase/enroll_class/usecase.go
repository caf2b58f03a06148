package enroll_class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/domain"
	classRepo "github.com/holistia/booking-service/internal/infra/storage/classsession"
	packageRepo "github.com/holistia/booking-service/internal/infra/storage/packagepurchase"
	"github.com/holistia/booking-service/internal/rules"
)

// UseCase enrolls a patient in a Breathe & Move session, paying with the
// oldest usable class package. Capacity, duplicate and package checks run
// under one serializable transaction.
type UseCase struct {
	classRepo    ClassSessionRepository
	packageRepo  PackageRepository
	txManager    TransactionManager
	rules        *rules.Rules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case with its dependencies.
func NewUseCase(
	classRepo ClassSessionRepository,
	packageRepo PackageRepository,
	txManager TransactionManager,
	r *rules.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		classRepo:    classRepo,
		packageRepo:  packageRepo,
		txManager:    txManager,
		rules:        r,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the enrollment flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EnrollClass: session=%d, patient=%d", req.SessionID, req.PatientID)

	// 1. Static validation.
	if req.SessionID <= 0 {
		return nil, fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}
	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var response *Response

	// 2. All checks and both writes inside one transaction: the session row
	// is locked, so two concurrent enrollments cannot both take the last spot.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.classRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, classRepo.ErrSessionNotFound) {
				uc.logger.Warn("EnrollClass: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("EnrollClass: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// 2.1. Session state.
		if session.Cancelled {
			uc.logger.Warn("EnrollClass: session id=%d is cancelled", session.ID)
			return ErrSessionCancelled
		}
		if !sessionStartsAfter(session, now) {
			uc.logger.Warn("EnrollClass: session id=%d already started", session.ID)
			return ErrSessionStarted
		}
		if session.IsFull() {
			uc.logger.Warn("EnrollClass: session id=%d is full (%d/%d)",
				session.ID, session.Enrolled, session.Capacity)
			return ErrSessionFull
		}

		// 2.2. No double enrollment.
		enrolled, err := uc.classRepo.HasEnrollment(txCtx, session.ID, req.PatientID)
		if err != nil {
			uc.logger.Error("EnrollClass: failed to check enrollment: %v", err)
			return fmt.Errorf("%w: failed to check enrollment: %v", ErrInternal, err)
		}
		if enrolled {
			uc.logger.Warn("EnrollClass: patient id=%d already enrolled in session id=%d",
				req.PatientID, session.ID)
			return ErrAlreadyEnrolled
		}

		// 2.3. Pick the package expiring first; unlimited packages are never
		// decremented.
		packages, err := uc.packageRepo.GetUsableByPatient(txCtx, req.PatientID, now)
		if err != nil {
			uc.logger.Error("EnrollClass: failed to get packages: %v", err)
			return fmt.Errorf("%w: failed to get packages: %v", ErrInternal, err)
		}
		if len(packages) == 0 {
			uc.logger.Warn("EnrollClass: patient id=%d has no usable package", req.PatientID)
			return ErrNoUsablePackage
		}
		chosen := packages[0]

		if !chosen.IsUnlimited() {
			if err := uc.packageRepo.ConsumeClass(txCtx, chosen.ID); err != nil {
				if errors.Is(err, packageRepo.ErrNoClassesLeft) {
					return ErrNoUsablePackage
				}
				uc.logger.Error("EnrollClass: failed to consume class from purchase id=%d: %v", chosen.ID, err)
				return fmt.Errorf("%w: failed to consume class: %v", ErrInternal, err)
			}
			chosen.ClassesLeft--
		}

		// 2.4. Take the spot.
		enrollment := &domain.Enrollment{
			SessionID:  session.ID,
			PatientID:  req.PatientID,
			PurchaseID: chosen.ID,
		}
		created, err := uc.classRepo.CreateEnrollment(txCtx, enrollment)
		if err != nil {
			if errors.Is(err, classRepo.ErrAlreadyEnrolled) {
				return ErrAlreadyEnrolled
			}
			uc.logger.Error("EnrollClass: failed to create enrollment: %v", err)
			return fmt.Errorf("%w: failed to create enrollment: %v", ErrInternal, err)
		}

		response = &Response{
			EnrollmentID: created.ID,
			SessionID:    session.ID,
			PatientID:    req.PatientID,
			PurchaseID:   chosen.ID,
			ClassesLeft:  chosen.ClassesLeft,
			SpotsLeft:    session.SpotsLeft() - 1,
			CreatedAt:    created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("EnrollClass: enrolled patient id=%d in session id=%d (purchase id=%d)",
		req.PatientID, req.SessionID, response.PurchaseID)
	return response, nil
}

func sessionStartsAfter(session *domain.ClassSession, now time.Time) bool {
	m := session.StartTime.Minutes()
	startsAt := time.Date(session.Date.Year(), session.Date.Month(), session.Date.Day(),
		m/60, m%60, 0, 0, now.Location())
	return startsAt.After(now)
}
