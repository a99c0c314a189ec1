package get_booking

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

type WizardUseCase interface {
	GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
