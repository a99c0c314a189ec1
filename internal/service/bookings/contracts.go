package bookings

import (
	"context"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента upstream booking API
type BookingAPIClient interface {
	GetServices(ctx context.Context) ([]domain.ServiceOption, error)
	GetAvailableDates(ctx context.Context, startDate, endDate, serviceType string) ([]domain.BookingDate, error)
	GetAvailableSlots(ctx context.Context, date, serviceType string, duration int) ([]domain.BookingTimeSlot, error)
	CreateBooking(ctx context.Context, req bookingapi.CreateBookingRequest) (*domain.BookingConfirmation, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*domain.BookingDetails, error)
	RescheduleBooking(ctx context.Context, bookingID, startTime, endTime string) (*domain.BookingDetails, error)
	UpdateBooking(ctx context.Context, bookingID string, req bookingapi.UpdateBookingRequest) (*domain.BookingDetails, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*domain.PaymentIntent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
