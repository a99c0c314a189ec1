package bookingapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сериализация, сборка запроса)
	ErrInternal = errors.New("bookingapi client: internal error")
)

const (
	msgNetworkError    = "Network error. Please check your connection and try again."
	msgUnexpectedError = "Unexpected response from the booking service"
)
