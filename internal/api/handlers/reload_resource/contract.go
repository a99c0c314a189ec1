package reload_resource

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type WizardUseCase interface {
	Reload(ctx context.Context, store *wizard.Store, resource domain.Resource) (wizard.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
