package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
)

const (
	msgInternalError   = "internal server error"
	msgValidationError = "Please correct the highlighted fields"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Resource domain.Resource   `json:"resource,omitempty"`
	Errors   validation.Errors `json:"errors,omitempty"`
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, string(domain.CodeClientError), message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, string(domain.CodeResourceNotFound), message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, string(domain.CodeUnexpectedError), msgInternalError)
}

// RespondValidation 422 с ошибками по полям
func RespondValidation(w http.ResponseWriter, errs validation.Errors) {
	RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    string(domain.CodeValidationError),
		Message: msgValidationError,
		Errors:  errs,
	})
}

// RespondAPIError отдает ошибку upstream с ее статусом, 502 если ответа не было
func RespondAPIError(w http.ResponseWriter, err *domain.APIError) {
	status := err.Status
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	RespondJSON(w, status, ErrorResponse{
		Code:     string(err.Code),
		Message:  err.Message,
		Resource: err.Resource,
	})
}

// Logger интерфейс для логирования ошибок обработчиков
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogFailure пишет ошибку запроса: 5xx как Error, остальное как Warn
func LogFailure(logger Logger, status int, format string, v ...interface{}) {
	if status >= http.StatusInternalServerError {
		logger.Error(format, v...)
		return
	}
	logger.Warn(format, v...)
}
