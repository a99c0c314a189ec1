package wizard

import (
	"sync"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// Notifier receives every error put into the store's error slot
type Notifier interface {
	Notify(err domain.APIError)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(err domain.APIError)

// Notify implements Notifier
func (f NotifierFunc) Notify(err domain.APIError) { f(err) }

// Store serializes dispatches for one wizard session
type Store struct {
	mu       sync.Mutex
	state    State
	notifier Notifier
	seq      map[domain.Resource]uint64
}

// NewStore creates a store in the initial state. notifier may be nil
func NewStore(notifier Notifier) *Store {
	return &Store{
		state:    InitialState(),
		notifier: notifier,
		seq:      make(map[domain.Resource]uint64),
	}
}

// State returns a deep copy of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies actions in order under one lock and returns the resulting state
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(actions)
	return snapshot
}

// BeginRequest issues a new request token for a resource.
// Tokens issued earlier for the same resource become stale.
func (s *Store) BeginRequest(resource domain.Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[resource]++
	return s.seq[resource]
}

// TryBegin claims resource for one caller. It fails while the resource is
// loading, otherwise it issues a new request token and raises the loading flag
// under the same lock.
func (s *Store) TryBegin(resource domain.Resource) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading.Get(resource) {
		return 0, false
	}
	s.seq[resource]++
	s.state = Reduce(s.state, SetResourceLoading{Resource: resource, Loading: true})
	return s.seq[resource], true
}

// IsLatest reports whether token is the newest one issued for resource
func (s *Store) IsLatest(resource domain.Resource, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[resource] == token
}

// DispatchIfLatest applies actions only if token is still the newest for resource
func (s *Store) DispatchIfLatest(resource domain.Resource, token uint64, actions ...Action) bool {
	s.mu.Lock()
	if s.seq[resource] != token {
		s.mu.Unlock()
		return false
	}
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	s.mu.Unlock()

	s.notify(actions)
	return true
}

func (s *Store) notify(actions []Action) {
	if s.notifier == nil {
		return
	}
	for _, a := range actions {
		if e, ok := a.(SetAPIError); ok {
			s.notifier.Notify(e.Err)
		}
	}
}

// GoToStep moves to step
func (s *Store) GoToStep(step domain.StepID) State { return s.Dispatch(GoToStep{Step: step}) }

// GoToNextStep advances one step
func (s *Store) GoToNextStep() State { return s.Dispatch(GoToNextStep{}) }

// GoToPreviousStep goes back one step
func (s *Store) GoToPreviousStep() State { return s.Dispatch(GoToPreviousStep{}) }

// SelectService stores the chosen service and its options
func (s *Store) SelectService(service domain.ServiceOption, selection domain.ServiceSelection) State {
	return s.Dispatch(SelectService{Service: service, Selection: selection})
}

// SelectDate stores the chosen day
func (s *Store) SelectDate(date domain.BookingDate) State {
	return s.Dispatch(SelectDate{Date: date})
}

// SelectTimeSlot stores the chosen slot
func (s *Store) SelectTimeSlot(slot domain.BookingTimeSlot) State {
	return s.Dispatch(SelectTimeSlot{Slot: slot})
}

// SetClientInfo stores contact details
func (s *Store) SetClientInfo(info domain.ClientInformation) State {
	return s.Dispatch(SetClientInfo{Info: info})
}

// SetConfirmation stores payment method and acceptances
func (s *Store) SetConfirmation(details domain.ConfirmationDetails) State {
	return s.Dispatch(SetConfirmation{Details: details})
}

// SetPaymentIntent replaces the payment intent, nil clears it
func (s *Store) SetPaymentIntent(intent *domain.PaymentIntent) State {
	return s.Dispatch(SetPaymentIntent{Intent: intent})
}

// SetAvailableServices replaces the service list
func (s *Store) SetAvailableServices(services []domain.ServiceOption) State {
	return s.Dispatch(SetAvailableServices{Services: services})
}

// SetAvailableDates replaces the date list
func (s *Store) SetAvailableDates(dates []domain.BookingDate) State {
	return s.Dispatch(SetAvailableDates{Dates: dates})
}

// SetAvailableTimeSlots replaces the slot list
func (s *Store) SetAvailableTimeSlots(slots []domain.BookingTimeSlot) State {
	return s.Dispatch(SetAvailableTimeSlots{Slots: slots})
}

// SetResourceLoading toggles the loading flag of one resource
func (s *Store) SetResourceLoading(resource domain.Resource, loading bool) State {
	return s.Dispatch(SetResourceLoading{Resource: resource, Loading: loading})
}

// SetAPIError fills the error slot and notifies
func (s *Store) SetAPIError(err domain.APIError) State { return s.Dispatch(SetAPIError{Err: err}) }

// ClearAPIError empties the error slot
func (s *Store) ClearAPIError() State { return s.Dispatch(ClearAPIError{}) }

// SetBookingReference completes the booking
func (s *Store) SetBookingReference(ref, bookingID string) State {
	return s.Dispatch(SetBookingReference{Reference: ref, BookingID: bookingID})
}

// ResetForm wipes the state. Outstanding request tokens become stale
func (s *Store) ResetForm() State {
	s.mu.Lock()
	for r := range s.seq {
		s.seq[r]++
	}
	s.mu.Unlock()
	return s.Dispatch(ResetForm{})
}
