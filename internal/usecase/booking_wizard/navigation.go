package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

// Next переходит на следующий шаг, если текущий шаг заполнен корректно.
// С шага подтверждения вперед ведет только Confirm.
func (uc *UseCase) Next(ctx context.Context, store *wizard.Store) (wizard.State, error) {
	s := store.State()
	if s.CurrentStep >= domain.StepConfirmation {
		return s, ErrStepBlocked
	}
	if s.Loading.Any() {
		return s, ErrResourceBusy
	}
	if errs := wizard.StepErrors(s); errs.HasErrors() {
		uc.logger.Warn("Next: step=%s is incomplete: %v", s.CurrentStep, errs)
		return s, invalid(s.CurrentStep, errs)
	}

	from := s.CurrentStep
	s = store.GoToNextStep()
	uc.transition(from, s.CurrentStep)

	switch s.CurrentStep {
	case domain.StepDateSelection:
		if len(s.AvailableDates) == 0 {
			s, _ = uc.LoadDates(ctx, store, false)
		}
	case domain.StepConfirmation:
		// ошибка создания намерения уже в слоте ошибки, шаг все равно открыт
		_ = uc.ensurePaymentIntent(ctx, store, false)
		s = store.State()
	}
	return s, nil
}

// Previous возвращает на предыдущий шаг без проверки
func (uc *UseCase) Previous(_ context.Context, store *wizard.Store) (wizard.State, error) {
	s := store.State()
	if s.CurrentStep == domain.FirstStep || s.CurrentStep == domain.StepSuccess {
		return s, ErrStepBlocked
	}

	from := s.CurrentStep
	s = store.GoToPreviousStep()
	uc.transition(from, s.CurrentStep)
	return s, nil
}

// GoToStep переходит на один из пройденных шагов
func (uc *UseCase) GoToStep(_ context.Context, store *wizard.Store, step domain.StepID) (wizard.State, error) {
	s := store.State()
	if step == s.CurrentStep {
		return s, nil
	}
	if s.CurrentStep == domain.StepSuccess || !wizard.CanProceedToNextStep(s, step) || step > s.CurrentStep {
		return s, ErrStepBlocked
	}

	from := s.CurrentStep
	s = store.GoToStep(step)
	uc.transition(from, step)
	return s, nil
}

// Reset сбрасывает мастер в начальное состояние и заново загружает услуги
func (uc *UseCase) Reset(ctx context.Context, store *wizard.Store) (wizard.State, error) {
	from := store.State().CurrentStep
	store.ResetForm()
	uc.transition(from, domain.FirstStep)

	return uc.LoadServices(ctx, store, false)
}
