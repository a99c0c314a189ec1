package wizard

import (
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

// FieldPaymentIntent is the error key used when a card payment has no intent yet
const FieldPaymentIntent = "paymentIntent"

// MsgPaymentIntentMissing is reported when a card payment is not initialized
const MsgPaymentIntentMissing = "Payment must be initialized before confirming"

// CanProceedToNextStep reports whether the wizard may move to next.
// Backward moves are always allowed; forward moves only to the adjacent
// step and only if the current step validates.
func CanProceedToNextStep(s State, next domain.StepID) bool {
	if !next.IsValid() {
		return false
	}
	if next < s.CurrentStep {
		return true
	}
	if next != s.CurrentStep+1 {
		return false
	}
	return !StepErrors(s).HasErrors()
}

// NextEnabled reports whether the "next" control is usable: the guard passes
// and no resource is loading. The confirmation step is left only through
// ConfirmEnabled.
func NextEnabled(s State) bool {
	return s.CurrentStep < domain.StepConfirmation &&
		CanProceedToNextStep(s, s.CurrentStep+1) &&
		!s.Loading.Any()
}

// ConfirmEnabled reports whether the stored confirmation can be submitted
func ConfirmEnabled(s State) bool {
	return s.CurrentStep == domain.StepConfirmation &&
		!s.BookingComplete &&
		CanProceedToNextStep(s, domain.StepSuccess) &&
		!s.Loading.Any()
}

// StepErrors re-validates the data held for the current step
func StepErrors(s State) validation.Errors {
	switch s.CurrentStep {
	case domain.StepServiceSelection:
		var sel domain.ServiceSelection
		if s.ServiceSelection != nil {
			sel = *s.ServiceSelection
		}
		_, errs := validation.ValidateServiceSelection(validation.ServiceSelectionRecord(sel))
		if s.SelectedService == nil {
			errs = withError(errs, validation.FieldServiceID, validation.MsgServiceRequired)
		}
		return errs

	case domain.StepDateSelection:
		var date, slotID string
		if s.SelectedDate != nil {
			date = s.SelectedDate.Date
		}
		if s.SelectedTimeSlot != nil {
			slotID = s.SelectedTimeSlot.ID
		}
		_, errs := validation.ValidateDateSelection(validation.DateSelectionRecord(date, slotID))
		return errs

	case domain.StepClientInformation:
		if s.ClientInfo == nil {
			_, errs := validation.ValidateClientInfo(validation.Record{})
			return errs
		}
		_, errs := validation.ValidateClientInfo(validation.ClientInfoRecord(*s.ClientInfo))
		return errs

	case domain.StepConfirmation:
		var details domain.ConfirmationDetails
		if s.Confirmation != nil {
			details = *s.Confirmation
		}
		_, errs := validation.ValidateConfirmation(validation.ConfirmationRecord(details))
		if NeedsPaymentIntent(s) && s.PaymentIntent == nil {
			errs = withError(errs, FieldPaymentIntent, MsgPaymentIntentMissing)
		}
		return errs
	}

	return validation.Errors{"step": "No further steps"}
}

// NeedsPaymentIntent reports whether confirming requires a payment intent
func NeedsPaymentIntent(s State) bool {
	if s.SelectedService == nil || s.SelectedService.IsFree() {
		return false
	}
	return s.Confirmation != nil && s.Confirmation.PaymentMethod.RequiresPaymentIntent()
}

func withError(errs validation.Errors, field, msg string) validation.Errors {
	if errs == nil {
		errs = validation.Errors{}
	}
	if _, ok := errs[field]; !ok {
		errs[field] = msg
	}
	return errs
}
