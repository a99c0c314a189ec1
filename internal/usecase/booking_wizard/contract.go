package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings/models"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	GetServices(ctx context.Context, forceRefresh bool) ([]domain.ServiceOption, error)
	GetAvailableDates(ctx context.Context, serviceID, practitionerID string, forceRefresh bool) ([]domain.BookingDate, error)
	GetAvailableTimeSlots(ctx context.Context, serviceID, date, practitionerID string, forceRefresh bool) ([]domain.BookingTimeSlot, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*domain.BookingConfirmation, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*domain.BookingDetails, error)
	RescheduleBooking(ctx context.Context, req models.RescheduleBookingRequest) (*domain.BookingDetails, error)
	UpdateBookingNotes(ctx context.Context, bookingID, notes string) (*domain.BookingDetails, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*domain.PaymentIntent, error)
}

// SubmissionJournal журнал подтвержденных заявок
type SubmissionJournal interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Submission, error)
}

// Metrics метрики мастера
type Metrics interface {
	ObserveStepTransition(from, to string)
	IncBookingsCompleted()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
