package wizard

import "github.com/m04kA/SMC-RecoveryBooking/internal/domain"

// Action is a closed set of state transitions
type Action interface {
	isAction()
}

type (
	// GoToStep sets the current step without validation
	GoToStep         struct{ Step domain.StepID }
	// GoToNextStep moves one step forward, no-op at SUCCESS
	GoToNextStep     struct{}
	// GoToPreviousStep moves one step back, no-op at SERVICE_SELECTION
	GoToPreviousStep struct{}

	SelectService struct {
		Service   domain.ServiceOption
		Selection domain.ServiceSelection
	}
	SelectDate       struct{ Date domain.BookingDate }
	SelectTimeSlot   struct{ Slot domain.BookingTimeSlot }
	SetClientInfo    struct{ Info domain.ClientInformation }
	SetConfirmation  struct{ Details domain.ConfirmationDetails }
	SetPaymentIntent struct{ Intent *domain.PaymentIntent }

	SetAvailableServices  struct{ Services []domain.ServiceOption }
	SetAvailableDates     struct{ Dates []domain.BookingDate }
	SetAvailableTimeSlots struct{ Slots []domain.BookingTimeSlot }

	SetResourceLoading struct {
		Resource domain.Resource
		Loading  bool
	}

	// SetAPIError replaces the single error slot
	SetAPIError   struct{ Err domain.APIError }
	// ClearAPIError empties the error slot. With Resource set it only clears
	// an error raised for that resource.
	ClearAPIError struct{ Resource domain.Resource }

	// SetBookingReference is the only way to complete the wizard
	SetBookingReference struct {
		Reference string
		BookingID string
	}

	// ResetForm restores the initial state
	ResetForm struct{}
)

func (GoToStep) isAction()              {}
func (GoToNextStep) isAction()          {}
func (GoToPreviousStep) isAction()      {}
func (SelectService) isAction()         {}
func (SelectDate) isAction()            {}
func (SelectTimeSlot) isAction()        {}
func (SetClientInfo) isAction()         {}
func (SetConfirmation) isAction()       {}
func (SetPaymentIntent) isAction()      {}
func (SetAvailableServices) isAction()  {}
func (SetAvailableDates) isAction()     {}
func (SetAvailableTimeSlots) isAction() {}
func (SetResourceLoading) isAction()    {}
func (SetAPIError) isAction()           {}
func (ClearAPIError) isAction()         {}
func (SetBookingReference) isAction()   {}
func (ResetForm) isAction()             {}
