package validate_field

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

type WizardUseCase interface {
	ValidateField(step domain.StepID, field string, value any) (validation.Errors, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
