package confirm_booking

import (
	"context"

	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type WizardUseCase interface {
	Confirm(ctx context.Context, sessionID string, store *wizard.Store, rec validation.Record) (*bookingWizard.ConfirmResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
