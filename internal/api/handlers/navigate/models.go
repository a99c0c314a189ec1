package navigate

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
)

// NavigateRequest HTTP request model. Step имеет приоритет над Direction
type NavigateRequest struct {
	Direction bookingWizard.Direction `json:"direction,omitempty"`
	Step      *domain.StepID          `json:"step,omitempty"`
}
