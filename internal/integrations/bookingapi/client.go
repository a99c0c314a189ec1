package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// retryableStatuses статусы, при которых GET запрос повторяется
var retryableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// RetryPolicy параметры экспоненциального backoff для GET запросов
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	Jitter          float64
}

// DefaultRetryPolicy политика повторов по умолчанию
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      domain.DefaultMaxRetries,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
		Jitter:          0.5,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = p.Jitter
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.MaxRetries)), ctx)
}

// Client клиент upstream booking API
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	tokens     TokenProvider
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента booking API.
// tokens и metrics могут быть nil.
func NewClient(baseURL string, timeout time.Duration, retry RetryPolicy, tokens TokenProvider, metrics Metrics, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry:   retry,
		tokens:  tokens,
		metrics: metrics,
		log:     log,
	}
}

// call описание одного запроса. endpoint - шаблон пути для логов и метрик
type call struct {
	method   string
	path     string
	endpoint string
	query    url.Values
	body     any
}

// GetServices получает список услуг
func (c *Client) GetServices(ctx context.Context) ([]domain.ServiceOption, error) {
	var services []Service
	err := c.do(ctx, call{method: http.MethodGet, path: "/booking/services", endpoint: "/booking/services"}, &services)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ServiceOption, 0, len(services))
	for _, s := range services {
		result = append(result, s.toDomain())
	}
	return result, nil
}

// GetAvailableDates получает дни с доступностью в диапазоне [startDate, endDate]
func (c *Client) GetAvailableDates(ctx context.Context, startDate, endDate, serviceType string) ([]domain.BookingDate, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	if serviceType != "" {
		query.Set("serviceType", serviceType)
	}

	var dates []AvailableDate
	err := c.do(ctx, call{method: http.MethodGet, path: "/booking/available-dates", endpoint: "/booking/available-dates", query: query}, &dates)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BookingDate, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.toDomain())
	}
	return result, nil
}

// GetAvailableSlots получает слоты на дату. duration=0 не передается
func (c *Client) GetAvailableSlots(ctx context.Context, date, serviceType string, duration int) ([]domain.BookingTimeSlot, error) {
	query := url.Values{}
	query.Set("date", date)
	if serviceType != "" {
		query.Set("serviceType", serviceType)
	}
	if duration > 0 {
		query.Set("duration", strconv.Itoa(duration))
	}

	var slots []TimeSlot
	err := c.do(ctx, call{method: http.MethodGet, path: "/booking/available-slots", endpoint: "/booking/available-slots", query: query}, &slots)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BookingTimeSlot, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.toDomain())
	}
	return result, nil
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.BookingConfirmation, error) {
	var resp CreateBookingResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/booking/create", endpoint: "/booking/create", body: req}, &resp)
	if err != nil {
		return nil, err
	}

	return &domain.BookingConfirmation{
		BookingID:        resp.BookingID,
		ConfirmationCode: resp.ConfirmationCode,
		Status:           resp.Status,
	}, nil
}

// GetBooking получает бронирование по ID
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetails, error) {
	var booking Booking
	err := c.do(ctx, call{method: http.MethodGet, path: bookingPath(bookingID), endpoint: "/booking/:id"}, &booking)
	if err != nil {
		return nil, err
	}
	return booking.toDomain(), nil
}

// CancelBooking отменяет бронирование
func (c *Client) CancelBooking(ctx context.Context, bookingID, reason string) (*domain.BookingDetails, error) {
	var booking Booking
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     bookingPath(bookingID) + "/cancel",
		endpoint: "/booking/:id/cancel",
		body:     cancelRequest{Reason: reason},
	}, &booking)
	if err != nil {
		return nil, err
	}
	return booking.toDomain(), nil
}

// RescheduleBooking переносит бронирование. startTime и endTime в RFC3339
func (c *Client) RescheduleBooking(ctx context.Context, bookingID, startTime, endTime string) (*domain.BookingDetails, error) {
	var booking Booking
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     bookingPath(bookingID) + "/reschedule",
		endpoint: "/booking/:id/reschedule",
		body:     rescheduleRequest{StartTime: startTime, EndTime: endTime},
	}, &booking)
	if err != nil {
		return nil, err
	}
	return booking.toDomain(), nil
}

// UpdateBooking частично обновляет бронирование
func (c *Client) UpdateBooking(ctx context.Context, bookingID string, req UpdateBookingRequest) (*domain.BookingDetails, error) {
	var booking Booking
	err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     bookingPath(bookingID),
		endpoint: "/booking/:id",
		body:     req,
	}, &booking)
	if err != nil {
		return nil, err
	}
	return booking.toDomain(), nil
}

// CreatePaymentIntent создает платежное намерение на сумму в центах
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*domain.PaymentIntent, error) {
	var resp paymentIntentResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/payments/create-intent",
		endpoint: "/payments/create-intent",
		body:     paymentIntentRequest{Amount: amount, Currency: currency},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentIntent{
		ClientSecret:    resp.ClientSecret,
		PaymentIntentID: resp.PaymentIntentID,
		Amount:          amount,
		Currency:        currency,
	}, nil
}

func bookingPath(bookingID string) string {
	return "/booking/" + url.PathEscape(bookingID)
}

// do выполняет запрос, разворачивает конверт в out и повторяет GET при временных сбоях
func (c *Client) do(ctx context.Context, cl call, out any) error {
	var payload []byte
	if cl.body != nil {
		var err error
		payload, err = json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
	}

	start := time.Now()
	attempt := 0

	operation := func() error {
		attempt++
		err := c.attempt(ctx, cl, payload, out)
		if err == nil {
			return nil
		}

		var apiErr *domain.APIError
		if cl.method == http.MethodGet && errors.As(err, &apiErr) && isRetryableStatus(apiErr.Status) {
			return err
		}
		return backoff.Permanent(err)
	}

	var err error
	if cl.method == http.MethodGet && c.retry.MaxRetries > 0 {
		notify := func(err error, wait time.Duration) {
			if c.metrics != nil {
				c.metrics.IncUpstreamRetry(cl.endpoint)
			}
			c.log.Warn("bookingapi: %s %s attempt=%d failed, retrying in %s: %v", cl.method, cl.endpoint, attempt, wait, err)
		}
		err = backoff.RetryNotify(operation, c.retry.backOff(ctx), notify)
	} else {
		err = operation()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
	}

	if err != nil && ctx.Err() != nil {
		if _, ok := domain.AsAPIError(err); !ok {
			err = &domain.APIError{Code: domain.CodeNetworkError, Message: msgNetworkError, Details: map[string]any{"cause": err.Error()}}
		}
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
		if apiErr, ok := domain.AsAPIError(err); ok {
			outcome = string(apiErr.Code)
		}
		c.log.Error("bookingapi: %s %s failed after %d attempt(s): %v", cl.method, cl.endpoint, attempt, err)
	}
	if c.metrics != nil {
		c.metrics.ObserveUpstream(cl.method, cl.endpoint, outcome, time.Since(start))
	}

	return err
}

func (c *Client) attempt(ctx context.Context, cl call, payload []byte, out any) error {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn("bookingapi: failed to resolve bearer token: %v", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.APIError{
			Code:    domain.CodeNetworkError,
			Message: msgNetworkError,
			Details: map[string]any{"cause": err.Error()},
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{
			Code:    domain.CodeNetworkError,
			Message: msgNetworkError,
			Status:  resp.StatusCode,
			Details: map[string]any{"cause": err.Error()},
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return unexpected(resp.StatusCode, fmt.Sprintf("failed to decode envelope: %v", err))
	}
	if !env.Success {
		return errorFromEnvelope(resp.StatusCode, env.Error)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return unexpected(resp.StatusCode, fmt.Sprintf("failed to decode data: %v", err))
	}

	return nil
}

// errorFromResponse нормализует ответ с неуспешным статусом
func errorFromResponse(status int, raw []byte) *domain.APIError {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil {
		return &domain.APIError{
			Code:    domain.CodeForStatus(status),
			Message: statusMessage(status),
			Status:  status,
		}
	}
	return errorFromEnvelope(status, env.Error)
}

// errorFromEnvelope код из конверта приоритетнее кода по статусу
func errorFromEnvelope(status int, body *errorBody) *domain.APIError {
	apiErr := &domain.APIError{
		Code:    domain.CodeForStatus(status),
		Message: statusMessage(status),
		Status:  status,
	}
	if body == nil {
		return apiErr
	}
	if body.Code != "" {
		apiErr.Code = domain.ErrorCode(body.Code)
	}
	if body.Message != "" {
		apiErr.Message = body.Message
	}
	apiErr.Details = body.Details
	return apiErr
}

func unexpected(status int, cause string) *domain.APIError {
	return &domain.APIError{
		Code:    domain.CodeUnexpectedError,
		Message: msgUnexpectedError,
		Status:  status,
		Details: map[string]any{"cause": cause},
	}
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

func isRetryableStatus(status int) bool {
	_, ok := retryableStatuses[status]
	return ok
}
