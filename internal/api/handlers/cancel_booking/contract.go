package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

type WizardUseCase interface {
	CancelBooking(ctx context.Context, store *wizard.Store, bookingID, reason string) (*domain.BookingDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
