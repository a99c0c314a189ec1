package validate_field

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

// ValidateFieldRequest HTTP request model
type ValidateFieldRequest struct {
	Step  domain.StepID `json:"step"`
	Field string        `json:"field"`
	Value any           `json:"value"`
}

// ValidateFieldResponse HTTP response model
type ValidateFieldResponse struct {
	Valid  bool              `json:"valid"`
	Errors validation.Errors `json:"errors,omitempty"`
}
