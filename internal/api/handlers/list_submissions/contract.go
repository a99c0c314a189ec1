package list_submissions

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

type WizardUseCase interface {
	ListSubmissions(ctx context.Context, sessionID string) ([]domain.Submission, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
