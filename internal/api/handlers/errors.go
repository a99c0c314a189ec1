package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	bookingsService "github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
)

// Коды ошибок мастера, которых нет в таксономии upstream
const (
	CodeStepBlocked      = "STEP_BLOCKED"
	CodeResourceBusy     = "RESOURCE_BUSY"
	CodeStepIncomplete   = "STEP_INCOMPLETE"
	CodeAlreadyConfirmed = "ALREADY_CONFIRMED"
	CodeNotReloadable    = "NOT_RELOADABLE"
)

const (
	msgStepBlocked      = "This step is not available yet"
	msgResourceBusy     = "Please wait until loading finishes"
	msgServiceMissing   = "Please select a service first"
	msgDateMissing      = "Please select a date first"
	msgAlreadyConfirmed = "This booking has already been confirmed"
	msgNotReloadable    = "This operation cannot be retried"
)

// RespondWizardError переводит ошибку сценария мастера в HTTP ответ и возвращает статус
func RespondWizardError(w http.ResponseWriter, err error) int {
	var verr *bookingWizard.ValidationError
	if errors.As(err, &verr) {
		RespondValidation(w, verr.Errors)
		return http.StatusUnprocessableEntity
	}

	if apiErr, ok := domain.AsAPIError(err); ok {
		RespondAPIError(w, apiErr)
		if apiErr.Status >= http.StatusBadRequest {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}

	status, code, msg := http.StatusInternalServerError, "", ""
	switch {
	case errors.Is(err, bookingWizard.ErrStepBlocked):
		status, code, msg = http.StatusConflict, CodeStepBlocked, msgStepBlocked
	case errors.Is(err, bookingWizard.ErrResourceBusy):
		status, code, msg = http.StatusConflict, CodeResourceBusy, msgResourceBusy
	case errors.Is(err, bookingWizard.ErrServiceNotSelected):
		status, code, msg = http.StatusConflict, CodeStepIncomplete, msgServiceMissing
	case errors.Is(err, bookingWizard.ErrDateNotSelected):
		status, code, msg = http.StatusConflict, CodeStepIncomplete, msgDateMissing
	case errors.Is(err, bookingWizard.ErrAlreadyConfirmed):
		status, code, msg = http.StatusConflict, CodeAlreadyConfirmed, msgAlreadyConfirmed
	case errors.Is(err, bookingWizard.ErrNotReloadable):
		status, code, msg = http.StatusBadRequest, CodeNotReloadable, msgNotReloadable
	case errors.Is(err, bookingsService.ErrInvalidInput):
		RespondBadRequest(w, err.Error())
		return http.StatusBadRequest
	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}

	RespondError(w, status, code, msg)
	return status
}
