package update_booking_notes

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

type WizardUseCase interface {
	UpdateBookingNotes(ctx context.Context, bookingID, notes string) (*domain.BookingDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
