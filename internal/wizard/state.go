// Package wizard holds the booking wizard state machine: an immutable State,
// a closed set of actions, a pure reducer and a mutex-guarded Store.
package wizard

import "github.com/m04kA/SMC-RecoveryBooking/internal/domain"

// Loading holds one in-flight flag per resource
type Loading map[domain.Resource]bool

// Get returns the flag for a resource
func (l Loading) Get(resource domain.Resource) bool {
	return l[resource]
}

// Any returns true if at least one resource is loading
func (l Loading) Any() bool {
	for _, v := range l {
		if v {
			return true
		}
	}
	return false
}

func (l Loading) clone() Loading {
	out := make(Loading, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// State is the aggregate wizard state. It is only changed through Reduce
type State struct {
	CurrentStep domain.StepID

	SelectedService  *domain.ServiceOption
	ServiceSelection *domain.ServiceSelection
	SelectedDate     *domain.BookingDate
	SelectedTimeSlot *domain.BookingTimeSlot
	ClientInfo       *domain.ClientInformation
	Confirmation     *domain.ConfirmationDetails
	PaymentIntent    *domain.PaymentIntent

	CompletedSteps domain.StepSet

	AvailableServices  []domain.ServiceOption
	AvailableDates     []domain.BookingDate
	AvailableTimeSlots []domain.BookingTimeSlot

	Loading  Loading
	APIError *domain.APIError

	BookingComplete  bool
	BookingReference string
	BookingID        string
}

// InitialState returns the state of a fresh wizard
func InitialState() State {
	loading := make(Loading, len(domain.AllResources))
	for _, r := range domain.AllResources {
		loading[r] = false
	}
	return State{
		CurrentStep: domain.FirstStep,
		Loading:     loading,
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := s
	out.SelectedService = clonePtr(s.SelectedService)
	out.ServiceSelection = clonePtr(s.ServiceSelection)
	out.SelectedDate = clonePtr(s.SelectedDate)
	out.SelectedTimeSlot = clonePtr(s.SelectedTimeSlot)
	out.ClientInfo = clonePtr(s.ClientInfo)
	out.Confirmation = clonePtr(s.Confirmation)
	out.PaymentIntent = clonePtr(s.PaymentIntent)
	out.AvailableServices = cloneSlice(s.AvailableServices)
	out.AvailableDates = cloneSlice(s.AvailableDates)
	out.AvailableTimeSlots = cloneSlice(s.AvailableTimeSlots)
	out.Loading = s.Loading.clone()
	if s.APIError != nil {
		apiErr := *s.APIError
		if s.APIError.Details != nil {
			apiErr.Details = make(map[string]any, len(s.APIError.Details))
			for k, v := range s.APIError.Details {
				apiErr.Details[k] = v
			}
		}
		out.APIError = &apiErr
	}
	return out
}

// FindService looks up a service in the available list
func (s State) FindService(id string) (domain.ServiceOption, bool) {
	for _, svc := range s.AvailableServices {
		if svc.ID == id {
			return svc, true
		}
	}
	return domain.ServiceOption{}, false
}

// FindDate looks up a date in the available list
func (s State) FindDate(date string) (domain.BookingDate, bool) {
	for _, d := range s.AvailableDates {
		if d.Date == date {
			return d, true
		}
	}
	return domain.BookingDate{}, false
}

// FindTimeSlot looks up a slot in the available list
func (s State) FindTimeSlot(id string) (domain.BookingTimeSlot, bool) {
	for _, slot := range s.AvailableTimeSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return domain.BookingTimeSlot{}, false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
