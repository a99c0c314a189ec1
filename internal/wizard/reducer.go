package wizard

import (
	"fmt"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// Reduce applies an action to a state and returns the next state.
// The input state is never modified.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch a := a.(type) {
	case GoToStep:
		next.CurrentStep = a.Step

	case GoToNextStep:
		if next.CurrentStep < domain.LastStep {
			next.CurrentStep++
		}

	case GoToPreviousStep:
		if next.CurrentStep > domain.FirstStep {
			next.CurrentStep--
		}

	case SelectService:
		// dates, slots and price-bound intent belong to the previous service
		if next.SelectedService != nil && next.SelectedService.ID != a.Service.ID {
			next.SelectedDate = nil
			next.SelectedTimeSlot = nil
			next.AvailableDates = nil
			next.AvailableTimeSlots = nil
			next.PaymentIntent = nil
		}
		service := a.Service
		selection := a.Selection
		next.SelectedService = &service
		next.ServiceSelection = &selection
		next.CompletedSteps = next.CompletedSteps.Add(domain.StepServiceSelection)

	case SelectDate:
		if next.SelectedDate != nil && next.SelectedDate.Date != a.Date.Date {
			next.SelectedTimeSlot = nil
			next.AvailableTimeSlots = nil
		}
		date := a.Date
		next.SelectedDate = &date
		next.CompletedSteps = next.CompletedSteps.Add(domain.StepDateSelection)

	case SelectTimeSlot:
		slot := a.Slot
		next.SelectedTimeSlot = &slot
		next.CompletedSteps = next.CompletedSteps.Add(domain.StepDateSelection)

	case SetClientInfo:
		info := a.Info
		next.ClientInfo = &info
		next.CompletedSteps = next.CompletedSteps.Add(domain.StepClientInformation)

	case SetConfirmation:
		details := a.Details
		next.Confirmation = &details

	case SetPaymentIntent:
		next.PaymentIntent = clonePtr(a.Intent)

	case SetAvailableServices:
		next.AvailableServices = cloneSlice(a.Services)

	case SetAvailableDates:
		next.AvailableDates = cloneSlice(a.Dates)

	case SetAvailableTimeSlots:
		next.AvailableTimeSlots = cloneSlice(a.Slots)

	case SetResourceLoading:
		next.Loading[a.Resource] = a.Loading

	case SetAPIError:
		apiErr := a.Err
		next.APIError = &apiErr

	case ClearAPIError:
		if a.Resource == "" || (next.APIError != nil && next.APIError.Resource == a.Resource) {
			next.APIError = nil
		}

	case SetBookingReference:
		next.BookingReference = a.Reference
		next.BookingID = a.BookingID
		next.BookingComplete = a.Reference != ""
		if next.BookingComplete {
			next.CompletedSteps = next.CompletedSteps.Add(domain.StepConfirmation)
		}

	case ResetForm:
		return InitialState()

	default:
		panic(fmt.Sprintf("wizard: unhandled action %T", a))
	}

	return next
}
