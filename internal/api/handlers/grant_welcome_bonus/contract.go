package grant_welcome_bonus

import (
	"context"

	"github.com/holistia/booking-service/internal/service/credits/models"
)

type CreditsService interface {
	GrantWelcomeBonus(ctx context.Context, patientID int64) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
