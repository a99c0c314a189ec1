package booking_wizard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/logger"
)

var (
	fraudRecovery = domain.ServiceOption{
		ID:       "investment-fraud",
		Name:     "Investment Fraud Recovery",
		Duration: 60,
		Price:    150,
	}
	freeConsultation = domain.ServiceOption{
		ID:       "initial-consultation",
		Name:     "Initial Consultation",
		Duration: 30,
	}
	monday = domain.BookingDate{Date: "2026-11-02", DayOfWeek: "Monday", Available: true, Slots: 2}
	sunday = domain.BookingDate{Date: "2026-11-01", DayOfWeek: "Sunday", Available: false, Slots: 0}
	slot10 = domain.BookingTimeSlot{ID: "slot-10", StartTime: "10:00", EndTime: "11:00", Duration: 60, Available: true}
	slot11 = domain.BookingTimeSlot{ID: "slot-11", StartTime: "11:00", EndTime: "12:00", Duration: 60, Available: false}
)

type fakeBookings struct {
	mu    sync.Mutex
	calls map[string]int

	servicesErrs []error

	services []domain.ServiceOption
	dates    []domain.BookingDate
	slots    []domain.BookingTimeSlot
	booking  *domain.BookingDetails

	createErr   error
	intentErr   error

	// если заданы, вызов сообщает о входе и ждет закрытия gate
	createEntered chan struct{}
	createGate    chan struct{}
	intentEntered chan struct{}
	intentGate    chan struct{}

	cancelErr   error
	created     *models.CreateBookingRequest
	rescheduled *models.RescheduleBookingRequest
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		services: []domain.ServiceOption{fraudRecovery, freeConsultation},
		dates:    []domain.BookingDate{sunday, monday},
		slots:    []domain.BookingTimeSlot{slot10, slot11},
		booking:  &domain.BookingDetails{ID: "bk-1", ServiceID: fraudRecovery.ID, Status: "confirmed"},
	}
}

func (f *fakeBookings) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeBookings) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func wait(entered, gate chan struct{}) {
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeBookings) GetServices(context.Context, bool) ([]domain.ServiceOption, error) {
	f.hit("services")
	if len(f.servicesErrs) > 0 {
		err := f.servicesErrs[0]
		f.servicesErrs = f.servicesErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.services, nil
}

func (f *fakeBookings) GetAvailableDates(context.Context, string, string, bool) ([]domain.BookingDate, error) {
	f.hit("dates")
	return f.dates, nil
}

func (f *fakeBookings) GetAvailableTimeSlots(context.Context, string, string, string, bool) ([]domain.BookingTimeSlot, error) {
	f.hit("slots")
	return f.slots, nil
}

func (f *fakeBookings) CreateBooking(_ context.Context, req models.CreateBookingRequest) (*domain.BookingConfirmation, error) {
	f.hit("create")
	wait(f.createEntered, f.createGate)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &req
	return &domain.BookingConfirmation{BookingID: "bk-1", ConfirmationCode: "RB-2026-0001", Status: "confirmed"}, nil
}

func (f *fakeBookings) GetBooking(context.Context, string) (*domain.BookingDetails, error) {
	f.hit("get")
	return f.booking, nil
}

func (f *fakeBookings) CancelBooking(_ context.Context, id, _ string) (*domain.BookingDetails, error) {
	f.hit("cancel")
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &domain.BookingDetails{ID: id, Status: "cancelled"}, nil
}

func (f *fakeBookings) RescheduleBooking(_ context.Context, req models.RescheduleBookingRequest) (*domain.BookingDetails, error) {
	f.hit("reschedule")
	f.rescheduled = &req
	return &domain.BookingDetails{ID: req.BookingID, Date: req.NewDate, Status: "confirmed"}, nil
}

func (f *fakeBookings) UpdateBookingNotes(_ context.Context, id, notes string) (*domain.BookingDetails, error) {
	f.hit("notes")
	return &domain.BookingDetails{ID: id, Notes: notes}, nil
}

func (f *fakeBookings) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*domain.PaymentIntent, error) {
	f.hit("intent")
	wait(f.intentEntered, f.intentGate)
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &domain.PaymentIntent{ClientSecret: "pi_1_secret", PaymentIntentID: "pi_1", Amount: amount, Currency: currency}, nil
}

type fakeJournal struct {
	created  []*domain.Submission
	statuses map[string]string
}

func (j *fakeJournal) Create(_ context.Context, s *domain.Submission) (*domain.Submission, error) {
	j.created = append(j.created, s)
	return s, nil
}

func (j *fakeJournal) UpdateStatus(_ context.Context, bookingID, status string) error {
	if j.statuses == nil {
		j.statuses = map[string]string{}
	}
	j.statuses[bookingID] = status
	return nil
}

func (j *fakeJournal) ListBySession(_ context.Context, sessionID string) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range j.created {
		if s.SessionID == sessionID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeMetrics struct {
	transitions []string
	completed   int
}

func (m *fakeMetrics) ObserveStepTransition(from, to string) {
	m.transitions = append(m.transitions, from+">"+to)
}

func (m *fakeMetrics) IncBookingsCompleted() { m.completed++ }

type notifications struct {
	mu   sync.Mutex
	errs []domain.APIError
}

func (n *notifications) Notify(err domain.APIError) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errs = append(n.errs, err)
}

func newTestUseCase(svc *fakeBookings) (*UseCase, *fakeJournal, *fakeMetrics) {
	journal := &fakeJournal{}
	metrics := &fakeMetrics{}
	return NewUseCase(svc, journal, metrics, logger.NewNop()), journal, metrics
}

func serviceRecord(id string) validation.Record {
	return validation.ServiceSelectionRecord(domain.ServiceSelection{ServiceID: id})
}

func johnDoe() validation.Record {
	return validation.Record{
		validation.FieldFirstName:     "John",
		validation.FieldLastName:      "Doe",
		validation.FieldEmail:         "john@example.com",
		validation.FieldPhone:         "555-123-4567",
		validation.FieldContactMethod: "email",
		validation.FieldIsNewClient:   true,
		validation.FieldAcceptTerms:   true,
	}
}

func confirmRecord(method domain.PaymentMethod) validation.Record {
	return validation.Record{
		validation.FieldPaymentMethod:            string(method),
		validation.FieldAcceptCancellationPolicy: true,
		validation.FieldDetailsConfirmed:         true,
	}
}

// driveToConfirmation проходит мастер до шага подтверждения
func driveToConfirmation(t *testing.T, uc *UseCase, store *wizard.Store, serviceID string) {
	t.Helper()
	ctx := context.Background()

	_, err := uc.LoadServices(ctx, store, false)
	require.NoError(t, err)
	_, err = uc.SelectService(ctx, store, serviceRecord(serviceID))
	require.NoError(t, err)
	_, err = uc.Next(ctx, store)
	require.NoError(t, err)

	_, err = uc.SelectDate(ctx, store, monday.Date)
	require.NoError(t, err)
	_, err = uc.SelectTimeSlot(ctx, store, slot10.ID)
	require.NoError(t, err)
	_, err = uc.Next(ctx, store)
	require.NoError(t, err)

	_, err = uc.SubmitClientInfo(ctx, store, johnDoe())
	require.NoError(t, err)
	s, err := uc.Next(ctx, store)
	require.NoError(t, err)
	require.Equal(t, domain.StepConfirmation, s.CurrentStep)
}

func TestLoadServices_FailureThenRetry(t *testing.T) {
	svc := newFakeBookings()
	svc.servicesErrs = []error{&domain.APIError{
		Code:    domain.CodeServiceUnavailable,
		Message: "Service temporarily unavailable",
		Status:  http.StatusServiceUnavailable,
	}}
	uc, _, _ := newTestUseCase(svc)
	feed := &notifications{}
	store := wizard.NewStore(feed)

	s, err := uc.LoadServices(context.Background(), store, false)
	require.Error(t, err)
	require.NotNil(t, s.APIError)
	assert.Equal(t, domain.CodeServiceUnavailable, s.APIError.Code)
	assert.Equal(t, domain.ResourceServices, s.APIError.Resource)
	assert.False(t, s.Loading.Get(domain.ResourceServices))
	assert.Empty(t, s.AvailableServices)
	require.Len(t, feed.errs, 1)

	s, err = uc.Reload(context.Background(), store, domain.ResourceServices)
	require.NoError(t, err)
	assert.Nil(t, s.APIError)
	assert.Len(t, s.AvailableServices, 2)
	assert.Equal(t, 2, svc.count("services"))
}

func TestWizard_CompleteBooking(t *testing.T) {
	svc := newFakeBookings()
	uc, journal, metrics := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)

	s := store.State()
	assert.Equal(t, 3, s.CompletedSteps.Len())
	require.NotNil(t, s.PaymentIntent)
	assert.Equal(t, int64(15000), s.PaymentIntent.Amount)

	res, err := uc.Confirm(context.Background(), "sess-1", store, confirmRecord(domain.PaymentCard))
	require.NoError(t, err)

	assert.Equal(t, "RB-2026-0001", res.Confirmation.ConfirmationCode)
	assert.Equal(t, domain.StepSuccess, res.State.CurrentStep)
	assert.True(t, res.State.BookingComplete)
	assert.Equal(t, "RB-2026-0001", res.State.BookingReference)
	assert.Equal(t, "bk-1", res.State.BookingID)

	require.NotNil(t, svc.created)
	assert.Equal(t, "John", svc.created.Client.FirstName)
	assert.Equal(t, monday.Date, svc.created.Date)
	require.NotNil(t, svc.created.PaymentIntent)
	assert.Equal(t, "pi_1", svc.created.PaymentIntent.PaymentIntentID)

	require.Len(t, journal.created, 1)
	assert.Equal(t, "John Doe", journal.created[0].ClientName)
	assert.Equal(t, "sess-1", journal.created[0].SessionID)
	assert.Equal(t, domain.SubmissionConfirmed, journal.created[0].Status)

	listed, err := uc.ListSubmissions(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "bk-1", listed[0].BookingID)

	assert.Equal(t, 1, metrics.completed)
	assert.Contains(t, metrics.transitions, "CONFIRMATION>SUCCESS")

	_, err = uc.Confirm(context.Background(), "sess-1", store, confirmRecord(domain.PaymentCard))
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	_, err = uc.Previous(context.Background(), store)
	assert.ErrorIs(t, err, ErrStepBlocked)
}

func TestWizard_FreeServiceSkipsPaymentIntent(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, freeConsultation.ID)

	res, err := uc.Confirm(context.Background(), "sess-2", store, confirmRecord(domain.PaymentCard))
	require.NoError(t, err)
	assert.Nil(t, res.State.PaymentIntent)
	assert.Zero(t, svc.count("intent"))
}

func TestConfirm_PaymentIntentFailureBlocksBooking(t *testing.T) {
	svc := newFakeBookings()
	svc.intentErr = &domain.APIError{Code: domain.CodeServerError, Message: "Payment provider error", Status: http.StatusBadGateway}
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)
	require.NotNil(t, store.State().APIError)
	assert.Equal(t, domain.ResourcePaymentIntent, store.State().APIError.Resource)

	_, err := uc.Confirm(context.Background(), "sess-3", store, confirmRecord(domain.PaymentCard))
	require.Error(t, err)
	assert.Zero(t, svc.count("create"))
	assert.Equal(t, domain.StepConfirmation, store.State().CurrentStep)

	// оплата при встрече не требует намерения
	res, err := uc.Confirm(context.Background(), "sess-3", store, confirmRecord(domain.PaymentPayLater))
	require.NoError(t, err)
	assert.True(t, res.State.BookingComplete)
}

func TestConfirm_ConflictReloadsSlots(t *testing.T) {
	svc := newFakeBookings()
	svc.createErr = &domain.APIError{
		Code:     domain.CodeBookingConflict,
		Message:  "This time slot is no longer available. Please select another time.",
		Status:   http.StatusConflict,
		Resource: domain.ResourceBooking,
	}
	uc, journal, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)
	slotsBefore := svc.count("slots")

	_, err := uc.Confirm(context.Background(), "sess-4", store, confirmRecord(domain.PaymentBankTransfer))
	require.Error(t, err)

	s := store.State()
	assert.False(t, s.BookingComplete)
	assert.Equal(t, domain.StepConfirmation, s.CurrentStep)
	require.NotNil(t, s.APIError)
	assert.Equal(t, domain.CodeBookingConflict, s.APIError.Code)
	assert.Equal(t, slotsBefore+1, svc.count("slots"))
	assert.Empty(t, journal.created)
}

func TestConfirm_ConcurrentSubmitCreatesOneBooking(t *testing.T) {
	svc := newFakeBookings()
	uc, journal, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	driveToConfirmation(t, uc, store, fraudRecovery.ID)

	svc.createEntered = make(chan struct{})
	svc.createGate = make(chan struct{})

	type outcome struct {
		res *ConfirmResult
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := uc.Confirm(ctx, "sess-7", store, confirmRecord(domain.PaymentCard))
		first <- outcome{res: res, err: err}
	}()
	<-svc.createEntered

	_, err := uc.Confirm(ctx, "sess-7", store, confirmRecord(domain.PaymentCard))
	assert.ErrorIs(t, err, ErrResourceBusy)
	assert.True(t, store.State().Loading.Get(domain.ResourceBooking))

	close(svc.createGate)
	got := <-first
	require.NoError(t, got.err)
	assert.True(t, got.res.State.BookingComplete)

	_, err = uc.Confirm(ctx, "sess-7", store, confirmRecord(domain.PaymentCard))
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	assert.Equal(t, 1, svc.count("create"))
	assert.Len(t, journal.created, 1)
	assert.False(t, store.State().Loading.Any())
}

func TestPaymentIntent_ConcurrentCreationIsRejected(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	driveToConfirmation(t, uc, store, fraudRecovery.ID)
	intentsBefore := svc.count("intent")

	svc.intentEntered = make(chan struct{})
	svc.intentGate = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := uc.Reload(ctx, store, domain.ResourcePaymentIntent)
		done <- err
	}()
	<-svc.intentEntered

	_, err := uc.Reload(ctx, store, domain.ResourcePaymentIntent)
	assert.ErrorIs(t, err, ErrResourceBusy)

	// бронирование не уходит со старым намерением, захват booking снимается
	_, err = uc.Confirm(ctx, "sess-8", store, confirmRecord(domain.PaymentCard))
	assert.ErrorIs(t, err, ErrResourceBusy)
	assert.False(t, store.State().Loading.Get(domain.ResourceBooking))
	assert.Zero(t, svc.count("create"))

	close(svc.intentGate)
	require.NoError(t, <-done)
	assert.Equal(t, intentsBefore+1, svc.count("intent"))
	assert.False(t, store.State().Loading.Get(domain.ResourcePaymentIntent))

	svc.intentEntered, svc.intentGate = nil, nil
	res, err := uc.Confirm(ctx, "sess-8", store, confirmRecord(domain.PaymentCard))
	require.NoError(t, err)
	assert.True(t, res.State.BookingComplete)
	assert.Equal(t, intentsBefore+1, svc.count("intent"))
}

func TestConfirm_ValidationErrors(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)

	_, err := uc.Confirm(context.Background(), "sess-5", store, validation.Record{
		validation.FieldPaymentMethod: "card",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, validation.MsgAcceptCancellation, verr.Errors[validation.FieldAcceptCancellationPolicy])
	assert.Equal(t, validation.MsgDetailsConfirmed, verr.Errors[validation.FieldDetailsConfirmed])
}

func TestSelectService_Errors(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	_, err := uc.SelectService(ctx, store, validation.Record{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.MsgServiceRequired, verr.Errors[validation.FieldServiceID])

	_, err = uc.SelectService(ctx, store, serviceRecord("astrology"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgServiceUnavailable, verr.Errors[validation.FieldServiceID])
	assert.Equal(t, 1, svc.count("services"))
}

func TestSelectService_PrefetchesDates(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	s, err := uc.SelectService(context.Background(), store, serviceRecord(fraudRecovery.ID))
	require.NoError(t, err)

	assert.Equal(t, fraudRecovery.ID, s.SelectedService.ID)
	assert.Len(t, s.AvailableDates, 2)
	assert.True(t, s.CompletedSteps.Has(domain.StepServiceSelection))
}

func TestSelectDateAndSlot_Availability(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	_, err := uc.SelectDate(ctx, store, monday.Date)
	assert.ErrorIs(t, err, ErrServiceNotSelected)

	_, err = uc.SelectService(ctx, store, serviceRecord(fraudRecovery.ID))
	require.NoError(t, err)

	_, err = uc.SelectDate(ctx, store, "02/11/2026")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.SelectDate(ctx, store, sunday.Date)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgDateUnavailable, verr.Errors[validation.FieldDate])

	s, err := uc.SelectDate(ctx, store, monday.Date)
	require.NoError(t, err)
	assert.Len(t, s.AvailableTimeSlots, 2)

	_, err = uc.SelectTimeSlot(ctx, store, slot11.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgTimeSlotUnavailable, verr.Errors[validation.FieldTimeSlotID])

	s, err = uc.SelectTimeSlot(ctx, store, slot10.ID)
	require.NoError(t, err)
	assert.Equal(t, slot10.ID, s.SelectedTimeSlot.ID)
}

func TestNext_Guards(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	_, err := uc.Next(ctx, store)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.StepServiceSelection, verr.Step)

	_, err = uc.SelectService(ctx, store, serviceRecord(fraudRecovery.ID))
	require.NoError(t, err)

	store.SetResourceLoading(domain.ResourceDates, true)
	_, err = uc.Next(ctx, store)
	assert.ErrorIs(t, err, ErrResourceBusy)
	store.SetResourceLoading(domain.ResourceDates, false)

	s, err := uc.Next(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, domain.StepDateSelection, s.CurrentStep)

	_, err = uc.GoToStep(ctx, store, domain.StepConfirmation)
	assert.ErrorIs(t, err, ErrStepBlocked)

	s, err = uc.GoToStep(ctx, store, domain.StepServiceSelection)
	require.NoError(t, err)
	assert.Equal(t, domain.StepServiceSelection, s.CurrentStep)
	assert.NotNil(t, s.SelectedService)

	_, err = uc.Previous(ctx, store)
	assert.ErrorIs(t, err, ErrStepBlocked)
}

func TestNext_BlockedAtConfirmation(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)

	_, err := uc.Next(context.Background(), store)
	assert.ErrorIs(t, err, ErrStepBlocked)
}

func TestTrack_DropsStaleResponse(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	applied, err := uc.track(context.Background(), store, domain.ResourceServices, func(context.Context) (wizard.Action, error) {
		// более новый запрос того же ресурса
		store.BeginRequest(domain.ResourceServices)
		return wizard.SetAvailableServices{Services: []domain.ServiceOption{fraudRecovery}}, nil
	})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, store.State().AvailableServices)
}

func TestReset_ClearsWizardAndReloadsServices(t *testing.T) {
	svc := newFakeBookings()
	uc, _, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	driveToConfirmation(t, uc, store, fraudRecovery.ID)

	s, err := uc.Reset(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, domain.StepServiceSelection, s.CurrentStep)
	assert.Nil(t, s.SelectedService)
	assert.Zero(t, s.CompletedSteps.Len())
	assert.Len(t, s.AvailableServices, 2)
}

func TestReload_RejectsMutations(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeBookings())

	_, err := uc.Reload(context.Background(), wizard.NewStore(nil), domain.ResourceBooking)
	assert.ErrorIs(t, err, ErrNotReloadable)
}

func TestCancelBooking_UpdatesJournal(t *testing.T) {
	svc := newFakeBookings()
	uc, journal, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)

	b, err := uc.CancelBooking(context.Background(), store, "bk-1", "Schedule changed")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", b.Status)
	assert.Equal(t, domain.SubmissionCancelled, journal.statuses["bk-1"])

	svc.cancelErr = &domain.APIError{Code: domain.CodeResourceNotFound, Message: "Booking not found", Status: http.StatusNotFound}
	_, err = uc.CancelBooking(context.Background(), store, "bk-2", "")
	require.Error(t, err)
	require.NotNil(t, store.State().APIError)
	assert.Equal(t, domain.ResourceCancellation, store.State().APIError.Resource)
	assert.NotContains(t, journal.statuses, "bk-2")
}

func TestRescheduleBooking(t *testing.T) {
	svc := newFakeBookings()
	uc, journal, _ := newTestUseCase(svc)
	store := wizard.NewStore(nil)
	ctx := context.Background()

	_, err := uc.RescheduleBooking(ctx, store, "bk-1", monday.Date, slot11.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, svc.count("reschedule"))

	b, err := uc.RescheduleBooking(ctx, store, "bk-1", monday.Date, slot10.ID)
	require.NoError(t, err)
	assert.Equal(t, monday.Date, b.Date)
	assert.Equal(t, 2, svc.count("get"))
	require.NotNil(t, svc.rescheduled)
	assert.Equal(t, slot10.StartTime, svc.rescheduled.NewSlot.StartTime)
	assert.Equal(t, domain.SubmissionRescheduled, journal.statuses["bk-1"])
}

func TestListSubmissions_WithoutJournal(t *testing.T) {
	uc := NewUseCase(&fakeBookings{}, nil, nil, logger.NewNop())

	list, err := uc.ListSubmissions(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToAPIError(t *testing.T) {
	got := toAPIError(context.DeadlineExceeded, domain.ResourceDates)
	assert.Equal(t, domain.CodeNetworkError, got.Code)
	assert.Equal(t, domain.ResourceDates, got.Resource)

	got = toAPIError(errors.New("boom"), domain.ResourceServices)
	assert.Equal(t, domain.CodeUnexpectedError, got.Code)

	got = toAPIError(&domain.APIError{Code: domain.CodeTooManyRequests, Resource: domain.ResourceTimeSlots}, domain.ResourceDates)
	assert.Equal(t, domain.CodeTooManyRequests, got.Code)
	assert.Equal(t, domain.ResourceTimeSlots, got.Resource)
}
