package bookings

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings/models"
)

// Service сервис бронирований поверх booking API с кэшем справочных данных
type Service struct {
	client         BookingAPIClient
	dateWindowDays int
	now            func() time.Time
	logger         Logger

	mu       sync.RWMutex
	services []domain.ServiceOption
	dates    map[string]cached[domain.BookingDate]
	slots    map[string]cached[domain.BookingTimeSlot]
}

// cached запись кэша доступности с услугой-владельцем
type cached[T any] struct {
	serviceID string
	items     []T
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(client BookingAPIClient, dateWindowDays int, logger Logger) *Service {
	if dateWindowDays <= 0 {
		dateWindowDays = domain.DefaultDateWindowDays
	}
	return &Service{
		client:         client,
		dateWindowDays: dateWindowDays,
		now:            time.Now,
		logger:         logger,
		dates:          make(map[string]cached[domain.BookingDate]),
		slots:          make(map[string]cached[domain.BookingTimeSlot]),
	}
}

// DatesKey ключ кэша дней: serviceId[-practitionerId]
func DatesKey(serviceID, practitionerID string) string {
	if practitionerID == "" {
		return serviceID
	}
	return serviceID + "-" + practitionerID
}

// SlotsKey ключ кэша слотов: serviceId-date[-practitionerId]
func SlotsKey(serviceID, date, practitionerID string) string {
	key := serviceID + "-" + date
	if practitionerID != "" {
		key += "-" + practitionerID
	}
	return key
}

// GetServices возвращает список услуг из кэша, пока он не пуст и не запрошено обновление
func (s *Service) GetServices(ctx context.Context, forceRefresh bool) ([]domain.ServiceOption, error) {
	if !forceRefresh {
		s.mu.RLock()
		known := s.services
		s.mu.RUnlock()
		if len(known) > 0 {
			return cloneSlice(known), nil
		}
	}

	services, err := s.client.GetServices(ctx)
	if err != nil {
		s.logger.Error("GetServices: upstream error: %v", err)
		return nil, withResource(err, domain.ResourceServices)
	}

	s.mu.Lock()
	s.services = cloneSlice(services)
	s.mu.Unlock()

	s.logger.Info("GetServices: fetched %d services", len(services))
	return services, nil
}

// GetAvailableDates возвращает дни с доступностью на окно вперед от сегодняшнего дня
func (s *Service) GetAvailableDates(ctx context.Context, serviceID, practitionerID string, forceRefresh bool) ([]domain.BookingDate, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}

	key := DatesKey(serviceID, practitionerID)
	if !forceRefresh {
		s.mu.RLock()
		entry, ok := s.dates[key]
		s.mu.RUnlock()
		if ok {
			return cloneSlice(entry.items), nil
		}
	}

	today := s.now().UTC()
	start := today.Format(domain.DateFormat)
	end := today.AddDate(0, 0, s.dateWindowDays).Format(domain.DateFormat)

	dates, err := s.client.GetAvailableDates(ctx, start, end, serviceID)
	if err != nil {
		s.logger.Error("GetAvailableDates: upstream error for key=%s: %v", key, err)
		return nil, withResource(err, domain.ResourceDates)
	}

	s.mu.Lock()
	s.dates[key] = cached[domain.BookingDate]{serviceID: serviceID, items: cloneSlice(dates)}
	s.mu.Unlock()

	s.logger.Info("GetAvailableDates: key=%s range=%s..%s dates=%d", key, start, end, len(dates))
	return dates, nil
}

// GetAvailableTimeSlots возвращает слоты на дату
func (s *Service) GetAvailableTimeSlots(ctx context.Context, serviceID, date, practitionerID string, forceRefresh bool) ([]domain.BookingTimeSlot, error) {
	if serviceID == "" || date == "" {
		return nil, fmt.Errorf("%w: service id and date are required", ErrInvalidInput)
	}

	key := SlotsKey(serviceID, date, practitionerID)
	if !forceRefresh {
		s.mu.RLock()
		entry, ok := s.slots[key]
		s.mu.RUnlock()
		if ok {
			return cloneSlice(entry.items), nil
		}
	}

	slots, err := s.client.GetAvailableSlots(ctx, date, serviceID, s.serviceDuration(serviceID))
	if err != nil {
		s.logger.Error("GetAvailableTimeSlots: upstream error for key=%s: %v", key, err)
		return nil, withResource(err, domain.ResourceTimeSlots)
	}

	s.mu.Lock()
	s.slots[key] = cached[domain.BookingTimeSlot]{serviceID: serviceID, items: cloneSlice(slots)}
	s.mu.Unlock()

	s.logger.Info("GetAvailableTimeSlots: key=%s slots=%d", key, len(slots))
	return slots, nil
}

// CreateBooking отправляет бронирование и возвращает код подтверждения.
// Занятый слот отдается как BOOKING_CONFLICT.
func (s *Service) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*domain.BookingConfirmation, error) {
	if req.Service.ID == "" || req.Date == "" || req.TimeSlot.ID == "" {
		return nil, fmt.Errorf("%w: service, date and time slot are required", ErrInvalidInput)
	}

	payload := bookingapi.CreateBookingRequest{
		ServiceID: req.Service.ID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot.ID,
		Client: bookingapi.ClientContact{
			FirstName: req.Client.FirstName,
			LastName:  req.Client.LastName,
			Email:     req.Client.Email,
			Phone:     req.Client.Phone,
		},
		PaymentMethod: string(req.Confirmation.PaymentMethod),
	}
	if req.Selection.PractitionerID != "" {
		practitionerID := req.Selection.PractitionerID
		payload.PractitionerID = &practitionerID
	}
	if req.PaymentIntent != nil && req.PaymentIntent.PaymentIntentID != "" {
		intentID := req.PaymentIntent.PaymentIntentID
		payload.PaymentIntentID = &intentID
	}

	s.logger.Info("CreateBooking: service=%s date=%s slot=%s method=%s",
		req.Service.ID, req.Date, req.TimeSlot.ID, req.Confirmation.PaymentMethod)

	confirmation, err := s.client.CreateBooking(ctx, payload)
	if err != nil {
		err = conflict(err, MsgBookingConflict)
		if isConflict(err) {
			s.invalidateAvailability(req.Service.ID)
		}
		s.logger.Warn("CreateBooking: failed for service=%s slot=%s: %v", req.Service.ID, req.TimeSlot.ID, err)
		return nil, withResource(err, domain.ResourceBooking)
	}

	s.invalidateAvailability(req.Service.ID)

	s.logger.Info("CreateBooking: booking=%s confirmation=%s", confirmation.BookingID, confirmation.ConfirmationCode)
	return confirmation, nil
}

// GetBooking получает бронирование по ID
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.client.GetBooking(ctx, bookingID)
	if err != nil {
		s.logger.Warn("GetBooking: booking=%s: %v", bookingID, err)
		return nil, withResource(err, domain.ResourceBooking)
	}
	return booking, nil
}

// CancelBooking отменяет бронирование
func (s *Service) CancelBooking(ctx context.Context, bookingID, reason string) (*domain.BookingDetails, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	reason = strings.TrimSpace(reason)
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	booking, err := s.client.CancelBooking(ctx, bookingID, reason)
	if err != nil {
		err = conflict(err, MsgCancelConflict)
		s.logger.Warn("CancelBooking: booking=%s: %v", bookingID, err)
		return nil, withResource(err, domain.ResourceCancellation)
	}

	s.invalidateAvailability(booking.ServiceID)

	s.logger.Info("CancelBooking: booking=%s status=%s", bookingID, booking.Status)
	return booking, nil
}

// RescheduleBooking переносит бронирование на новый слот
func (s *Service) RescheduleBooking(ctx context.Context, req models.RescheduleBookingRequest) (*domain.BookingDetails, error) {
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	startTime, err := req.NewSlot.StartOn(req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start of new slot: %v", ErrInvalidInput, err)
	}
	endTime, err := req.NewSlot.EndOn(req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end of new slot: %v", ErrInvalidInput, err)
	}

	booking, err := s.client.RescheduleBooking(ctx, req.BookingID, startTime, endTime)
	if err != nil {
		err = conflict(err, MsgRescheduleConflict)
		s.logger.Warn("RescheduleBooking: booking=%s to %s: %v", req.BookingID, startTime, err)
		return nil, withResource(err, domain.ResourceRescheduling)
	}

	s.invalidateAvailability(booking.ServiceID)

	s.logger.Info("RescheduleBooking: booking=%s moved to %s", req.BookingID, startTime)
	return booking, nil
}

// UpdateBookingNotes обновляет заметки к бронированию
func (s *Service) UpdateBookingNotes(ctx context.Context, bookingID, notes string) (*domain.BookingDetails, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if len(notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	booking, err := s.client.UpdateBooking(ctx, bookingID, bookingapi.UpdateBookingRequest{Notes: &notes})
	if err != nil {
		s.logger.Warn("UpdateBookingNotes: booking=%s: %v", bookingID, err)
		return nil, withResource(err, domain.ResourceBooking)
	}
	return booking, nil
}

// CreatePaymentIntent создает платежное намерение. Пустая валюта означает usd
func (s *Service) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*domain.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	intent, err := s.client.CreatePaymentIntent(ctx, amount, currency)
	if err != nil {
		s.logger.Error("CreatePaymentIntent: amount=%d %s: %v", amount, currency, err)
		return nil, withResource(err, domain.ResourcePaymentIntent)
	}

	s.logger.Info("CreatePaymentIntent: intent=%s amount=%d %s", intent.PaymentIntentID, amount, currency)
	return intent, nil
}

// InvalidateCache сбрасывает все кэши
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = nil
	s.dates = make(map[string]cached[domain.BookingDate])
	s.slots = make(map[string]cached[domain.BookingTimeSlot])
}

// invalidateAvailability сбрасывает кэш дней и слотов услуги
func (s *Service) invalidateAvailability(serviceID string) {
	if serviceID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.dates {
		if entry.serviceID == serviceID {
			delete(s.dates, key)
		}
	}
	for key, entry := range s.slots {
		if entry.serviceID == serviceID {
			delete(s.slots, key)
		}
	}
}

func (s *Service) serviceDuration(serviceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == serviceID {
			return svc.Duration
		}
	}
	return 0
}

// conflict специализирует конфликт слота в BOOKING_CONFLICT с сообщением для пользователя
func conflict(err error, message string) error {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return err
	}
	if apiErr.Status != http.StatusConflict && apiErr.Code != domain.CodeResourceConflict && apiErr.Code != domain.CodeBookingUnavailable {
		return err
	}

	cp := *apiErr
	cp.Code = domain.CodeBookingConflict
	cp.Message = message
	return &cp
}

func isConflict(err error) bool {
	apiErr, ok := domain.AsAPIError(err)
	return ok && apiErr.Code == domain.CodeBookingConflict
}

func withResource(err error, resource domain.Resource) error {
	if apiErr, ok := domain.AsAPIError(err); ok {
		return apiErr.WithResource(resource)
	}
	return err
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
