package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnknownStep возвращается при разборе неизвестного шага мастера
	ErrUnknownStep = errors.New("domain: unknown wizard step")

	// ErrUnknownResource возвращается при разборе неизвестного ресурса
	ErrUnknownResource = errors.New("domain: unknown resource")
)

// ErrorCode is one of the fixed upstream error codes
type ErrorCode string

const (
	CodeAuthInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	CodeAuthTokenExpired       ErrorCode = "AUTH_TOKEN_EXPIRED"
	CodeAuthTokenInvalid       ErrorCode = "AUTH_TOKEN_INVALID"
	CodeValidationError        ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequestFormat   ErrorCode = "INVALID_REQUEST_FORMAT"
	CodeResourceNotFound       ErrorCode = "RESOURCE_NOT_FOUND"
	CodeResourceAlreadyExists  ErrorCode = "RESOURCE_ALREADY_EXISTS"
	CodeResourceConflict       ErrorCode = "RESOURCE_CONFLICT"
	CodeBookingConflict        ErrorCode = "BOOKING_CONFLICT"
	CodeBookingUnavailable     ErrorCode = "BOOKING_UNAVAILABLE"
	CodeServerError            ErrorCode = "SERVER_ERROR"
	CodeServiceUnavailable     ErrorCode = "SERVICE_UNAVAILABLE"
	CodeNetworkError           ErrorCode = "NETWORK_ERROR"
	CodeClientError            ErrorCode = "CLIENT_ERROR"
	CodeTooManyRequests        ErrorCode = "TOO_MANY_REQUESTS"
	CodeGatewayTimeout         ErrorCode = "GATEWAY_TIMEOUT"
	CodeUnexpectedError        ErrorCode = "UNEXPECTED_ERROR"
)

// CodeForStatus maps an HTTP status to the fixed error taxonomy
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return CodeValidationError
	case http.StatusUnauthorized:
		return CodeAuthInvalidCredentials
	case http.StatusForbidden:
		return CodeAuthTokenInvalid
	case http.StatusNotFound:
		return CodeResourceNotFound
	case http.StatusConflict:
		return CodeResourceConflict
	case http.StatusUnprocessableEntity:
		return CodeInvalidRequestFormat
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusInternalServerError, http.StatusBadGateway:
		return CodeServerError
	case http.StatusServiceUnavailable:
		return CodeServiceUnavailable
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return CodeGatewayTimeout
	}
	switch {
	case status >= 400 && status < 500:
		return CodeClientError
	case status >= 500:
		return CodeServerError
	default:
		return CodeUnexpectedError
	}
}

// APIError is the normalized shape of every upstream failure
type APIError struct {
	Code     ErrorCode
	Message  string
	Status   int // 0 when no HTTP response was received
	Resource Resource
	Details  map[string]any
}

// Error implements error
func (e *APIError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithResource returns a copy of the error attributed to a resource
func (e *APIError) WithResource(resource Resource) *APIError {
	cp := *e
	cp.Resource = resource
	return &cp
}

// IsRetryable returns true for transient failures the user may retry
func (e *APIError) IsRetryable() bool {
	switch e.Code {
	case CodeNetworkError, CodeServerError, CodeServiceUnavailable, CodeTooManyRequests, CodeGatewayTimeout:
		return true
	}
	return false
}

// AsAPIError extracts an *APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
