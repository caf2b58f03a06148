package classes

import (
	"context"
	"fmt"
	"time"

	"github.com/holistia/booking-service/internal/service/classes/models"
)

// Service implements class schedule reads.
type Service struct {
	classRepo ClassSessionRepository
	logger    Logger
}

// NewService creates the classes service.
func NewService(classRepo ClassSessionRepository, logger Logger) *Service {
	return &Service{classRepo: classRepo, logger: logger}
}

// GetByDate lists the day's sessions, cancelled ones included so the
// schedule view can show them struck through.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.SessionListResponse, error) {
	s.logger.Info("GetByDate: date=%s", date.Format("2006-01-02"))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	sessions, err := s.classRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	response := &models.SessionListResponse{
		Date:     date,
		Sessions: make([]*models.SessionResponse, len(sessions)),
	}
	for i, session := range sessions {
		response.Sessions[i] = models.FromDomainSession(session)
	}
	return response, nil
}
