package booking_wizard

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

var (
	// ErrValidation возвращается, когда данные шага не прошли проверку
	ErrValidation = errors.New("booking_wizard: validation failed")

	// ErrStepBlocked возвращается при недопустимом переходе между шагами
	ErrStepBlocked = errors.New("booking_wizard: step transition not allowed")

	// ErrResourceBusy возвращается, когда переход невозможен из-за незавершенной загрузки
	ErrResourceBusy = errors.New("booking_wizard: a resource is still loading")

	// ErrServiceNotSelected возвращается, когда операции нужна выбранная услуга
	ErrServiceNotSelected = errors.New("booking_wizard: no service selected")

	// ErrDateNotSelected возвращается, когда операции нужна выбранная дата
	ErrDateNotSelected = errors.New("booking_wizard: no date selected")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении
	ErrAlreadyConfirmed = errors.New("booking_wizard: booking already confirmed")

	// ErrNotReloadable возвращается при попытке перезагрузить мутирующую операцию
	ErrNotReloadable = errors.New("booking_wizard: resource cannot be reloaded")
)

// Сообщения для полей, которые проверяются по загруженным спискам
const (
	MsgServiceUnavailable  = "Selected service is not available"
	MsgDateUnavailable     = "Selected date is not available"
	MsgTimeSlotUnavailable = "Selected time slot is not available"
)

// ValidationError ошибки полей шага
type ValidationError struct {
	Step   domain.StepID
	Errors validation.Errors
}

// Error implements error
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Errors.Error())
}

// Is позволяет errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(step domain.StepID, errs validation.Errors) error {
	return &ValidationError{Step: step, Errors: errs}
}

func invalidField(step domain.StepID, field, msg string) error {
	return invalid(step, validation.Errors{field: msg})
}
