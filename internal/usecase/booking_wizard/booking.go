package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

// Confirm подтверждает бронирование: проверяет последний шаг, создает бронирование
// во внешнем API и переводит мастер на экран успеха.
// Ресурс booking захвачен на все время подтверждения, параллельный Confirm
// той же сессии получает ErrResourceBusy.
func (uc *UseCase) Confirm(ctx context.Context, sessionID string, store *wizard.Store, rec validation.Record) (*ConfirmResult, error) {
	if err := confirmable(store.State()); err != nil {
		return nil, err
	}

	details, errs := validation.ValidateConfirmation(rec)
	if errs.HasErrors() {
		return nil, invalid(domain.StepConfirmation, errs)
	}

	token, ok := store.TryBegin(domain.ResourceBooking)
	if !ok {
		uc.logger.Warn("Confirm: session=%s booking is already in progress", sessionID)
		return nil, ErrResourceBusy
	}

	req, s, err := uc.prepareBooking(ctx, sessionID, store, details)
	if err != nil {
		release(store, domain.ResourceBooking, token)
		return nil, err
	}

	var confirmation *domain.BookingConfirmation
	applied, err := uc.settle(ctx, store, domain.ResourceBooking, token, func(ctx context.Context) (wizard.Action, error) {
		c, err := uc.bookings.CreateBooking(ctx, req)
		if err != nil {
			return nil, err
		}
		confirmation = c
		return wizard.SetBookingReference{Reference: c.ConfirmationCode, BookingID: c.BookingID}, nil
	})
	if err != nil {
		uc.logger.Error("Confirm: session=%s service=%s date=%s failed: %v",
			sessionID, req.Service.ID, req.Date, err)
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Code == domain.CodeBookingConflict {
			uc.LoadTimeSlots(ctx, store, true)
		}
		return nil, err
	}

	// заявка создана во внешнем API, журналируем ее даже если сессию успели сбросить
	uc.journalSubmission(ctx, sessionID, s, confirmation)

	if !applied {
		uc.logger.Warn("Confirm: session=%s was reset, booking=%s is not shown", sessionID, confirmation.BookingID)
		return nil, ErrStepBlocked
	}

	state := store.GoToStep(domain.StepSuccess)
	uc.transition(domain.StepConfirmation, domain.StepSuccess)
	if uc.metrics != nil {
		uc.metrics.IncBookingsCompleted()
	}
	uc.logger.Info("Confirm: session=%s booking=%s reference=%s",
		sessionID, confirmation.BookingID, confirmation.ConfirmationCode)

	return &ConfirmResult{Confirmation: *confirmation, State: state}, nil
}

func confirmable(s wizard.State) error {
	if s.BookingComplete {
		return ErrAlreadyConfirmed
	}
	if s.CurrentStep != domain.StepConfirmation {
		return ErrStepBlocked
	}
	return nil
}

// prepareBooking сохраняет подтверждение и собирает запрос. Вызывается под захватом booking
func (uc *UseCase) prepareBooking(
	ctx context.Context,
	sessionID string,
	store *wizard.Store,
	details domain.ConfirmationDetails,
) (models.CreateBookingRequest, wizard.State, error) {
	// состояние перечитывается: до захвата его мог изменить другой запрос
	if err := confirmable(store.State()); err != nil {
		return models.CreateBookingRequest{}, wizard.State{}, err
	}

	store.SetConfirmation(details)
	if err := uc.ensurePaymentIntent(ctx, store, false); err != nil {
		uc.logger.Error("Confirm: session=%s failed to initialize payment: %v", sessionID, err)
		return models.CreateBookingRequest{}, wizard.State{}, err
	}

	s := store.State()
	if s.Loading.Get(domain.ResourcePaymentIntent) {
		// намерение пересоздается, бронировать со старым нельзя
		return models.CreateBookingRequest{}, s, ErrResourceBusy
	}
	if errs := wizard.StepErrors(s); errs.HasErrors() {
		return models.CreateBookingRequest{}, s, invalid(domain.StepConfirmation, errs)
	}
	if s.SelectedService == nil || s.ServiceSelection == nil || s.SelectedDate == nil ||
		s.SelectedTimeSlot == nil || s.ClientInfo == nil {
		return models.CreateBookingRequest{}, s, ErrStepBlocked
	}

	return models.CreateBookingRequest{
		Service:       *s.SelectedService,
		Selection:     *s.ServiceSelection,
		Date:          s.SelectedDate.Date,
		TimeSlot:      *s.SelectedTimeSlot,
		Client:        *s.ClientInfo,
		Confirmation:  details,
		PaymentIntent: s.PaymentIntent,
	}, s, nil
}

// ListSubmissions возвращает заявки сессии из журнала
func (uc *UseCase) ListSubmissions(ctx context.Context, sessionID string) ([]domain.Submission, error) {
	if uc.journal == nil {
		return []domain.Submission{}, nil
	}

	list, err := uc.journal.ListBySession(ctx, sessionID)
	if err != nil {
		uc.logger.Error("ListSubmissions: session=%s: %v", sessionID, err)
		return nil, err
	}
	return list, nil
}

// CancelBooking отменяет бронирование
func (uc *UseCase) CancelBooking(ctx context.Context, store *wizard.Store, bookingID, reason string) (*domain.BookingDetails, error) {
	var booking *domain.BookingDetails
	_, err := uc.track(ctx, store, domain.ResourceCancellation, func(ctx context.Context) (wizard.Action, error) {
		b, err := uc.bookings.CancelBooking(ctx, bookingID, reason)
		booking = b
		return nil, err
	})
	if err != nil {
		uc.logger.Error("CancelBooking: booking=%s failed: %v", bookingID, err)
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%s status=%s", bookingID, booking.Status)
	uc.journalStatus(ctx, bookingID, domain.SubmissionCancelled)
	return booking, nil
}

// RescheduleBooking переносит бронирование на новый слот
func (uc *UseCase) RescheduleBooking(
	ctx context.Context,
	store *wizard.Store,
	bookingID, newDate, slotID string,
) (*domain.BookingDetails, error) {
	_, errs := validation.ValidateDateSelection(validation.DateSelectionRecord(newDate, slotID))
	if errs.HasErrors() {
		return nil, invalid(domain.StepDateSelection, errs)
	}

	slot, err := uc.rescheduleSlot(ctx, store.State(), bookingID, newDate, slotID)
	if err != nil {
		if _, ok := domain.AsAPIError(err); ok {
			store.SetAPIError(toAPIError(err, domain.ResourceRescheduling))
		}
		return nil, err
	}

	var booking *domain.BookingDetails
	_, err = uc.track(ctx, store, domain.ResourceRescheduling, func(ctx context.Context) (wizard.Action, error) {
		b, err := uc.bookings.RescheduleBooking(ctx, models.RescheduleBookingRequest{
			BookingID: bookingID,
			NewDate:   newDate,
			NewSlot:   slot,
		})
		booking = b
		return nil, err
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: booking=%s date=%s slot=%s failed: %v", bookingID, newDate, slotID, err)
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking=%s moved to %s %s", bookingID, newDate, slot.StartTime)
	uc.journalStatus(ctx, bookingID, domain.SubmissionRescheduled)
	return booking, nil
}

// GetBooking возвращает бронирование из внешнего API
func (uc *UseCase) GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error) {
	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		uc.logger.Warn("GetBooking: booking=%s failed: %v", bookingID, err)
		return nil, err
	}
	return booking, nil
}

// UpdateBookingNotes обновляет заметки к бронированию
func (uc *UseCase) UpdateBookingNotes(ctx context.Context, bookingID, notes string) (*domain.BookingDetails, error) {
	booking, err := uc.bookings.UpdateBookingNotes(ctx, bookingID, notes)
	if err != nil {
		uc.logger.Error("UpdateBookingNotes: booking=%s failed: %v", bookingID, err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingNotes: booking=%s", bookingID)
	return booking, nil
}

// rescheduleSlot находит свободный слот на новую дату для услуги бронирования
func (uc *UseCase) rescheduleSlot(
	ctx context.Context,
	s wizard.State,
	bookingID, newDate, slotID string,
) (domain.BookingTimeSlot, error) {
	var serviceID string
	if s.BookingID == bookingID && s.SelectedService != nil {
		serviceID = s.SelectedService.ID
	} else {
		booking, err := uc.bookings.GetBooking(ctx, bookingID)
		if err != nil {
			return domain.BookingTimeSlot{}, err
		}
		serviceID = booking.ServiceID
	}

	slots, err := uc.bookings.GetAvailableTimeSlots(ctx, serviceID, newDate, "", true)
	if err != nil {
		return domain.BookingTimeSlot{}, err
	}
	for _, slot := range slots {
		if slot.ID == slotID && slot.Available {
			return slot, nil
		}
	}

	uc.logger.Warn("RescheduleBooking: slot=%s is not available on %s for service=%s", slotID, newDate, serviceID)
	return domain.BookingTimeSlot{}, invalidField(domain.StepDateSelection, validation.FieldTimeSlotID, MsgTimeSlotUnavailable)
}

// ensurePaymentIntent создает платежное намерение для платной услуги, если клиент
// платит картой или способ оплаты еще не выбран. Пока намерение создается,
// повторный вызов получает ErrResourceBusy.
func (uc *UseCase) ensurePaymentIntent(ctx context.Context, store *wizard.Store, force bool) error {
	if !intentRequired(store.State(), force) {
		return nil
	}

	token, ok := store.TryBegin(domain.ResourcePaymentIntent)
	if !ok {
		return ErrResourceBusy
	}
	s := store.State()
	if !intentRequired(s, force) {
		release(store, domain.ResourcePaymentIntent, token)
		return nil
	}

	amount := s.SelectedService.PriceInCents()
	_, err := uc.settle(ctx, store, domain.ResourcePaymentIntent, token, func(ctx context.Context) (wizard.Action, error) {
		intent, err := uc.bookings.CreatePaymentIntent(ctx, amount, domain.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		return wizard.SetPaymentIntent{Intent: intent}, nil
	})
	if err != nil {
		uc.logger.Error("ensurePaymentIntent: service=%s amount=%d failed: %v", s.SelectedService.ID, amount, err)
	}
	return err
}

func intentRequired(s wizard.State, force bool) bool {
	if s.SelectedService == nil || s.SelectedService.IsFree() {
		return false
	}
	if s.Confirmation != nil && !s.Confirmation.PaymentMethod.RequiresPaymentIntent() {
		return false
	}
	return s.PaymentIntent == nil || force
}

func (uc *UseCase) journalSubmission(ctx context.Context, sessionID string, s wizard.State, c *domain.BookingConfirmation) {
	if uc.journal == nil {
		return
	}

	sub := &domain.Submission{
		SessionID:        sessionID,
		BookingID:        c.BookingID,
		BookingReference: c.ConfirmationCode,
		Status:           domain.SubmissionConfirmed,
		ServiceID:        s.SelectedService.ID,
		ServiceName:      s.SelectedService.Name,
		BookingDate:      s.SelectedDate.Date,
		TimeSlotID:       s.SelectedTimeSlot.ID,
		StartTime:        s.SelectedTimeSlot.StartTime,
		ClientName:       s.ClientInfo.FullName(),
		ClientEmail:      s.ClientInfo.Email,
		AmountCents:      s.SelectedService.PriceInCents(),
	}
	if s.Confirmation != nil {
		sub.PaymentMethod = s.Confirmation.PaymentMethod
	}
	if s.PaymentIntent != nil {
		id := s.PaymentIntent.PaymentIntentID
		sub.PaymentIntentID = &id
	}

	if _, err := uc.journal.Create(ctx, sub); err != nil {
		uc.logger.Error("journalSubmission: booking=%s: %v", c.BookingID, err)
	}
}

func (uc *UseCase) journalStatus(ctx context.Context, bookingID, status string) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.UpdateStatus(ctx, bookingID, status); err != nil {
		uc.logger.Warn("journalStatus: booking=%s status=%s: %v", bookingID, status, err)
	}
}
