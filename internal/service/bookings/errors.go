package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings service: invalid input data")
)

// Сообщения для пользователя при конфликте слота
const (
	MsgBookingConflict    = "This time slot is no longer available. Please choose another time."
	MsgRescheduleConflict = "The new time slot is no longer available. Please choose another time."
	MsgCancelConflict     = "This booking can no longer be cancelled."
)
