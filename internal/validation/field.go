package validation

import (
	"fmt"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// ValidateField проверяет одно поле указанного шага (живая проверка при вводе)
func ValidateField(step domain.StepID, field string, value any) (Errors, error) {
	switch step {
	case domain.StepServiceSelection:
		return ServiceSelectionSchema.ValidateField(field, value)
	case domain.StepDateSelection:
		return DateSelectionSchema.ValidateField(field, value)
	case domain.StepClientInformation:
		return ClientInfoSchema.ValidateField(field, value)
	case domain.StepConfirmation:
		return ConfirmationSchema.ValidateField(field, value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
}

// ValidateServiceSelection проверяет данные шага выбора услуги
func ValidateServiceSelection(rec Record) (domain.ServiceSelection, Errors) {
	return ServiceSelectionSchema.Validate(rec)
}

// ValidateDateSelection проверяет данные шага выбора даты
func ValidateDateSelection(rec Record) (DateSelection, Errors) {
	return DateSelectionSchema.Validate(rec)
}

// ValidateClientInfo проверяет контактные данные клиента
func ValidateClientInfo(rec Record) (domain.ClientInformation, Errors) {
	return ClientInfoSchema.Validate(rec)
}

// ValidateConfirmation проверяет данные шага подтверждения
func ValidateConfirmation(rec Record) (domain.ConfirmationDetails, Errors) {
	return ConfirmationSchema.Validate(rec)
}
