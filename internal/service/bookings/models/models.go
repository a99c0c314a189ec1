package models

import "github.com/m04kA/SMC-RecoveryBooking/internal/domain"

// CreateBookingRequest провалидированные выходы шагов мастера, из которых собирается бронирование
type CreateBookingRequest struct {
	Service       domain.ServiceOption
	Selection     domain.ServiceSelection
	Date          string
	TimeSlot      domain.BookingTimeSlot
	Client        domain.ClientInformation
	Confirmation  domain.ConfirmationDetails
	PaymentIntent *domain.PaymentIntent
}

// RescheduleBookingRequest перенос бронирования на новый слот
type RescheduleBookingRequest struct {
	BookingID string
	NewDate   string
	NewSlot   domain.BookingTimeSlot
}
