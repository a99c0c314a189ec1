package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

// SelectService проверяет выбор услуги, сохраняет его и подгружает доступные дни
func (uc *UseCase) SelectService(ctx context.Context, store *wizard.Store, rec validation.Record) (wizard.State, error) {
	selection, errs := validation.ValidateServiceSelection(rec)
	if errs.HasErrors() {
		uc.logger.Warn("SelectService: validation failed: %v", errs)
		return store.State(), invalid(domain.StepServiceSelection, errs)
	}

	s := store.State()
	service, ok := s.FindService(selection.ServiceID)
	if !ok && len(s.AvailableServices) == 0 {
		if s, err := uc.LoadServices(ctx, store, false); err == nil {
			service, ok = s.FindService(selection.ServiceID)
		}
	}
	if !ok {
		uc.logger.Warn("SelectService: service=%s is not offered", selection.ServiceID)
		return store.State(), invalidField(domain.StepServiceSelection, validation.FieldServiceID, MsgServiceUnavailable)
	}

	store.SelectService(service, selection)
	uc.logger.Info("SelectService: service=%s recurring=%t", service.ID, selection.IsRecurring)

	// ошибка загрузки дней уже лежит в слоте ошибки и не отменяет выбор
	state, _ := uc.LoadDates(ctx, store, false)
	return state, nil
}

// SelectDate сохраняет выбранный день и подгружает слоты на него
func (uc *UseCase) SelectDate(ctx context.Context, store *wizard.Store, date string) (wizard.State, error) {
	errs, err := validation.DateSelectionSchema.ValidateField(validation.FieldDate, date)
	if err != nil {
		return store.State(), err
	}
	if errs.HasErrors() {
		return store.State(), invalid(domain.StepDateSelection, errs)
	}

	s := store.State()
	if s.SelectedService == nil {
		return s, ErrServiceNotSelected
	}

	day, ok := s.FindDate(date)
	if !ok || !day.HasAvailability() {
		uc.logger.Warn("SelectDate: date=%s is not available for service=%s", date, s.SelectedService.ID)
		return s, invalidField(domain.StepDateSelection, validation.FieldDate, MsgDateUnavailable)
	}

	store.SelectDate(day)
	uc.logger.Info("SelectDate: service=%s date=%s", s.SelectedService.ID, date)

	state, _ := uc.LoadTimeSlots(ctx, store, false)
	return state, nil
}

// SelectTimeSlot сохраняет выбранный слот
func (uc *UseCase) SelectTimeSlot(_ context.Context, store *wizard.Store, slotID string) (wizard.State, error) {
	s := store.State()
	if s.SelectedDate == nil {
		return s, ErrDateNotSelected
	}

	_, errs := validation.ValidateDateSelection(validation.DateSelectionRecord(s.SelectedDate.Date, slotID))
	if errs.HasErrors() {
		return s, invalid(domain.StepDateSelection, errs)
	}

	slot, ok := s.FindTimeSlot(slotID)
	if !ok || !slot.Available {
		uc.logger.Warn("SelectTimeSlot: slot=%s is not available on %s", slotID, s.SelectedDate.Date)
		return s, invalidField(domain.StepDateSelection, validation.FieldTimeSlotID, MsgTimeSlotUnavailable)
	}

	uc.logger.Info("SelectTimeSlot: date=%s slot=%s", s.SelectedDate.Date, slot.ID)
	return store.SelectTimeSlot(slot), nil
}

// SubmitClientInfo проверяет и сохраняет контактные данные клиента
func (uc *UseCase) SubmitClientInfo(_ context.Context, store *wizard.Store, rec validation.Record) (wizard.State, error) {
	info, errs := validation.ValidateClientInfo(rec)
	if errs.HasErrors() {
		uc.logger.Warn("SubmitClientInfo: validation failed on %d field(s)", len(errs))
		return store.State(), invalid(domain.StepClientInformation, errs)
	}

	uc.logger.Info("SubmitClientInfo: contact=%s new_client=%t", info.PreferredContactMethod, info.IsNewClient)
	return store.SetClientInfo(info), nil
}

// SubmitConfirmation сохраняет выбор оплаты и согласия. Для оплаты картой
// создает платежное намерение, если его еще нет.
func (uc *UseCase) SubmitConfirmation(ctx context.Context, store *wizard.Store, rec validation.Record) (wizard.State, error) {
	s := store.State()
	if s.BookingComplete {
		return s, ErrAlreadyConfirmed
	}
	if s.CurrentStep != domain.StepConfirmation {
		return s, ErrStepBlocked
	}

	details, errs := validation.ValidateConfirmation(rec)
	if errs.HasErrors() {
		return s, invalid(domain.StepConfirmation, errs)
	}

	store.SetConfirmation(details)
	if err := uc.ensurePaymentIntent(ctx, store, false); err != nil {
		return store.State(), err
	}
	return store.State(), nil
}

// ValidateField проверяет одно поле шага при вводе
func (uc *UseCase) ValidateField(step domain.StepID, field string, value any) (validation.Errors, error) {
	return validation.ValidateField(step, field, value)
}
