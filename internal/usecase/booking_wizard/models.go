package booking_wizard

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

// Direction направление навигации
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// ConfirmResult результат подтверждения бронирования
type ConfirmResult struct {
	Confirmation domain.BookingConfirmation
	State        wizard.State
}
