package select_service

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type WizardUseCase interface {
	SelectService(ctx context.Context, store *wizard.Store, rec validation.Record) (wizard.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
