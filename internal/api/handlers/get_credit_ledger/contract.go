package get_credit_ledger

import (
	"context"

	"github.com/holistia/booking-service/internal/service/credits/models"
)

type CreditsService interface {
	GetLedger(ctx context.Context, patientID int64) (*models.LedgerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
