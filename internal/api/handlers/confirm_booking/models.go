package confirm_booking

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
)

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	BookingID        string                   `json:"bookingId"`
	ConfirmationCode string                   `json:"confirmationCode"`
	Status           string                   `json:"status"`
	Session          handlers.SessionResponse `json:"session"`
}

// FromUseCaseResult конвертирует результат use case в HTTP ответ
func FromUseCaseResult(sessionID string, res *bookingWizard.ConfirmResult) ConfirmBookingResponse {
	return ConfirmBookingResponse{
		BookingID:        res.Confirmation.BookingID,
		ConfirmationCode: res.Confirmation.ConfirmationCode,
		Status:           res.Confirmation.Status,
		Session:          handlers.NewSessionResponse(sessionID, res.State, nil),
	}
}
