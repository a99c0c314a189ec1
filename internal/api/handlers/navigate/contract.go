package navigate

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type WizardUseCase interface {
	Next(ctx context.Context, store *wizard.Store) (wizard.State, error)
	Previous(ctx context.Context, store *wizard.Store) (wizard.State, error)
	GoToStep(ctx context.Context, store *wizard.Store, step domain.StepID) (wizard.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
