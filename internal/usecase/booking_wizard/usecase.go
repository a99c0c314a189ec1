package booking_wizard

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	bookingsService "github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

const msgUnexpected = "Something went wrong. Please try again."

// UseCase сценарии шагов мастера бронирования поверх хранилища состояния сессии
type UseCase struct {
	bookings BookingService
	journal  SubmissionJournal
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case. journal и metrics могут быть nil
func NewUseCase(
	bookings BookingService,
	journal SubmissionJournal,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings: bookings,
		journal:  journal,
		metrics:  metrics,
		logger:   logger,
	}
}

// LoadServices загружает список услуг
func (uc *UseCase) LoadServices(ctx context.Context, store *wizard.Store, force bool) (wizard.State, error) {
	_, err := uc.track(ctx, store, domain.ResourceServices, func(ctx context.Context) (wizard.Action, error) {
		services, err := uc.bookings.GetServices(ctx, force)
		if err != nil {
			return nil, err
		}
		return wizard.SetAvailableServices{Services: services}, nil
	})
	return store.State(), err
}

// LoadDates загружает доступные дни для выбранной услуги
func (uc *UseCase) LoadDates(ctx context.Context, store *wizard.Store, force bool) (wizard.State, error) {
	s := store.State()
	if s.SelectedService == nil {
		return s, ErrServiceNotSelected
	}
	serviceID, practitionerID := s.SelectedService.ID, practitionerOf(s)

	_, err := uc.track(ctx, store, domain.ResourceDates, func(ctx context.Context) (wizard.Action, error) {
		dates, err := uc.bookings.GetAvailableDates(ctx, serviceID, practitionerID, force)
		if err != nil {
			return nil, err
		}
		return wizard.SetAvailableDates{Dates: dates}, nil
	})
	return store.State(), err
}

// LoadTimeSlots загружает слоты на выбранную дату
func (uc *UseCase) LoadTimeSlots(ctx context.Context, store *wizard.Store, force bool) (wizard.State, error) {
	s := store.State()
	if s.SelectedService == nil {
		return s, ErrServiceNotSelected
	}
	if s.SelectedDate == nil {
		return s, ErrDateNotSelected
	}
	serviceID, date, practitionerID := s.SelectedService.ID, s.SelectedDate.Date, practitionerOf(s)

	_, err := uc.track(ctx, store, domain.ResourceTimeSlots, func(ctx context.Context) (wizard.Action, error) {
		slots, err := uc.bookings.GetAvailableTimeSlots(ctx, serviceID, date, practitionerID, force)
		if err != nil {
			return nil, err
		}
		return wizard.SetAvailableTimeSlots{Slots: slots}, nil
	})
	return store.State(), err
}

// Reload повторяет загрузку ресурса, который завершился ошибкой
func (uc *UseCase) Reload(ctx context.Context, store *wizard.Store, resource domain.Resource) (wizard.State, error) {
	uc.logger.Info("Reload: resource=%s", resource)

	switch resource {
	case domain.ResourceServices:
		return uc.LoadServices(ctx, store, true)
	case domain.ResourceDates:
		return uc.LoadDates(ctx, store, true)
	case domain.ResourceTimeSlots:
		return uc.LoadTimeSlots(ctx, store, true)
	case domain.ResourcePaymentIntent:
		err := uc.ensurePaymentIntent(ctx, store, true)
		return store.State(), err
	default:
		return store.State(), ErrNotReloadable
	}
}

// track выполняет вызов с флагом загрузки ресурса. Результат применяется,
// только если за время вызова не был начат более новый запрос того же ресурса.
// applied == false означает, что ответ устарел и в состояние не попал.
func (uc *UseCase) track(
	ctx context.Context,
	store *wizard.Store,
	resource domain.Resource,
	call func(ctx context.Context) (wizard.Action, error),
) (applied bool, err error) {
	token := store.BeginRequest(resource)
	store.Dispatch(wizard.SetResourceLoading{Resource: resource, Loading: true})
	return uc.settle(ctx, store, resource, token, call)
}

// settle выполняет вызов под уже выданным токеном и снимает флаг загрузки
func (uc *UseCase) settle(
	ctx context.Context,
	store *wizard.Store,
	resource domain.Resource,
	token uint64,
	call func(ctx context.Context) (wizard.Action, error),
) (applied bool, err error) {
	action, err := call(ctx)
	if err != nil {
		applied = store.DispatchIfLatest(resource, token,
			wizard.SetResourceLoading{Resource: resource, Loading: false},
			wizard.SetAPIError{Err: toAPIError(err, resource)},
		)
		if !applied {
			uc.logger.Info("track: dropped stale failure for resource=%s", resource)
		}
		return applied, err
	}

	actions := []wizard.Action{
		wizard.SetResourceLoading{Resource: resource, Loading: false},
		wizard.ClearAPIError{Resource: resource},
	}
	if action != nil {
		actions = append(actions, action)
	}
	applied = store.DispatchIfLatest(resource, token, actions...)
	if !applied {
		uc.logger.Info("track: dropped stale response for resource=%s", resource)
	}
	return applied, nil
}

// release снимает захват ресурса без вызова
func release(store *wizard.Store, resource domain.Resource, token uint64) {
	store.DispatchIfLatest(resource, token, wizard.SetResourceLoading{Resource: resource, Loading: false})
}

func (uc *UseCase) transition(from, to domain.StepID) {
	if from == to {
		return
	}
	uc.logger.Info("transition: %s -> %s", from, to)
	if uc.metrics != nil {
		uc.metrics.ObserveStepTransition(from.String(), to.String())
	}
}

// toAPIError приводит любую ошибку вызова к форме ошибки API для хранилища
func toAPIError(err error, resource domain.Resource) domain.APIError {
	if apiErr, ok := domain.AsAPIError(err); ok {
		out := *apiErr
		if out.Resource == "" {
			out.Resource = resource
		}
		return out
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.APIError{Code: domain.CodeNetworkError, Message: "The request was interrupted. Please try again.", Resource: resource}
	case errors.Is(err, bookingsService.ErrInvalidInput):
		return domain.APIError{Code: domain.CodeClientError, Message: err.Error(), Resource: resource}
	default:
		return domain.APIError{Code: domain.CodeUnexpectedError, Message: msgUnexpected, Resource: resource}
	}
}

func practitionerOf(s wizard.State) string {
	if s.ServiceSelection == nil {
		return ""
	}
	return s.ServiceSelection.PractitionerID
}
