package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-RecoveryBooking/internal/integrations/bookingapi"
	bookingsService "github.com/m04kA/SMC-RecoveryBooking/internal/service/bookings"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-RecoveryBooking/pkg/logger"
)

// upstream поддельный booking API
type upstream struct {
	mu            sync.Mutex
	servicesDown  bool
	authorization []string
	created       map[string]any
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/booking/services", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		if u.isServicesDown() {
			u.fail(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Booking is temporarily unavailable")
			return
		}
		u.ok(w, http.StatusOK, []map[string]any{
			{"id": "investment-fraud", "name": "Investment Fraud Recovery", "description": "Recovery review", "duration": 60, "price": 150},
		})
	})
	mux.HandleFunc("/booking/available-dates", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		u.ok(w, http.StatusOK, []map[string]any{
			{"date": "2026-11-02", "dayOfWeek": "Monday", "available": true, "slots": 1},
		})
	})
	mux.HandleFunc("/booking/available-slots", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		u.ok(w, http.StatusOK, []map[string]any{
			{"id": "slot-10", "startTime": "10:00", "endTime": "11:00", "duration": 60, "available": true},
		})
	})
	mux.HandleFunc("/payments/create-intent", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		u.ok(w, http.StatusOK, map[string]any{"clientSecret": "pi_9_secret", "paymentIntentId": "pi_9"})
	})
	mux.HandleFunc("/booking/create", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		u.mu.Lock()
		u.created = body
		u.mu.Unlock()
		u.ok(w, http.StatusCreated, map[string]any{"bookingId": "bk-77", "confirmationCode": "RB-77", "status": "confirmed"})
	})
	mux.HandleFunc("/booking/bk-77/cancel", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		u.ok(w, http.StatusOK, map[string]any{"id": "bk-77", "serviceId": "investment-fraud", "status": "cancelled"})
	})
	return mux
}

func (u *upstream) seen(r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.authorization = append(u.authorization, r.Header.Get("Authorization"))
}

func (u *upstream) isServicesDown() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.servicesDown
}

func (u *upstream) ok(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func (u *upstream) fail(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]any{"code": code, "message": message},
	})
}

func newTestRouter(t *testing.T, up *upstream) http.Handler {
	t.Helper()

	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	tokens := token.NewMemoryStore()
	client := bookingapi.NewClient(srv.URL, 2*time.Second, bookingapi.RetryPolicy{MaxRetries: 0},
		token.NewSessionProvider(tokens), nil, log)
	svc := bookingsService.NewService(client, 30, log)

	return NewRouter(Deps{
		Registry: session.NewRegistry(nil),
		Tokens:   tokens,
		UseCase:  bookingWizard.NewUseCase(svc, nil, nil, log),
		Logger:   log,
	})
}

func call(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) handlers.SessionResponse {
	t.Helper()
	var resp handlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestRouter_CompleteWizard(t *testing.T) {
	up := &upstream{}
	router := newTestRouter(t, up)

	rec := call(t, router, http.MethodPost, "/api/v1/wizard/sessions", nil, "Authorization", "Bearer tok-123")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeSession(t, rec)
	require.NotEmpty(t, created.SessionID)
	require.Len(t, created.State.AvailableServices, 1)
	assert.Equal(t, "Investment Fraud Recovery", created.State.AvailableServices[0].Name)
	assert.False(t, created.NextEnabled)

	base := "/api/v1/wizard/sessions/" + created.SessionID

	rec = call(t, router, http.MethodPost, base+"/service", map[string]any{"serviceId": "investment-fraud"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeSession(t, rec).NextEnabled)

	rec = call(t, router, http.MethodPost, base+"/navigate", map[string]any{"direction": "next"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StepDateSelection, decodeSession(t, rec).State.CurrentStep)

	rec = call(t, router, http.MethodPost, base+"/date", map[string]any{"date": "2026-11-02"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, decodeSession(t, rec).State.AvailableTimeSlots, 1)

	rec = call(t, router, http.MethodPost, base+"/time-slot", map[string]any{"timeSlotId": "slot-10"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, router, http.MethodPost, base+"/navigate", map[string]any{"direction": "next"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, router, http.MethodPut, base+"/client", map[string]any{
		"firstName":              "John",
		"lastName":               "Doe",
		"email":                  "john@example.com",
		"phone":                  "555-123-4567",
		"preferredContactMethod": "email",
		"isNewClient":            true,
		"acceptTerms":            true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, router, http.MethodPost, base+"/navigate", map[string]any{"direction": "next"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	atConfirmation := decodeSession(t, rec)
	assert.Equal(t, domain.StepConfirmation, atConfirmation.State.CurrentStep)
	assert.Len(t, atConfirmation.State.CompletedSteps, 3)
	require.NotNil(t, atConfirmation.State.PaymentIntent)
	assert.Equal(t, int64(15000), atConfirmation.State.PaymentIntent.Amount)
	assert.False(t, atConfirmation.NextEnabled)
	assert.False(t, atConfirmation.ConfirmEnabled)

	rec = call(t, router, http.MethodPut, base+"/confirmation", map[string]any{
		"paymentMethod":            "card",
		"acceptCancellationPolicy": true,
		"detailsConfirmed":         true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ready := decodeSession(t, rec)
	assert.False(t, ready.NextEnabled)
	assert.True(t, ready.ConfirmEnabled)

	rec = call(t, router, http.MethodPost, base+"/confirm", map[string]any{
		"paymentMethod":            "card",
		"acceptCancellationPolicy": true,
		"detailsConfirmed":         true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var confirmed struct {
		BookingID        string                   `json:"bookingId"`
		ConfirmationCode string                   `json:"confirmationCode"`
		Session          handlers.SessionResponse `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmed))
	assert.Equal(t, "bk-77", confirmed.BookingID)
	assert.Equal(t, "RB-77", confirmed.ConfirmationCode)
	assert.Equal(t, domain.StepSuccess, confirmed.Session.State.CurrentStep)
	assert.True(t, confirmed.Session.State.BookingComplete)

	up.mu.Lock()
	assert.Equal(t, "investment-fraud", up.created["serviceId"])
	assert.Equal(t, "pi_9", up.created["paymentIntentId"])
	for _, auth := range up.authorization {
		assert.Equal(t, "Bearer tok-123", auth)
	}
	up.mu.Unlock()

	rec = call(t, router, http.MethodPost, base+"/bookings/bk-77/cancel", map[string]any{"reason": "Plans changed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cancelled handlers.BookingView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)

	rec = call(t, router, http.MethodGet, base+"/submissions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_ValidationErrors(t *testing.T) {
	router := newTestRouter(t, &upstream{})

	rec := call(t, router, http.MethodPost, "/api/v1/wizard/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/v1/wizard/sessions/" + decodeSession(t, rec).SessionID

	rec = call(t, router, http.MethodPost, base+"/navigate", map[string]any{"direction": "next"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, string(domain.CodeValidationError), errResp.Code)
	assert.Equal(t, "Please select a service", errResp.Errors["serviceId"])

	rec = call(t, router, http.MethodPost, base+"/validate-field", map[string]any{
		"step": "CLIENT_INFORMATION", "field": "email", "value": "not-an-email",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var field struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &field))
	assert.False(t, field.Valid)
	assert.Equal(t, "Please enter a valid email address", field.Errors["email"])

	rec = call(t, router, http.MethodPost, base+"/navigate", map[string]any{"step": "CONFIRMATION"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, router, http.MethodPost, base+"/reload", map[string]any{"resource": "booking"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UpstreamFailureIsReportedOnce(t *testing.T) {
	up := &upstream{servicesDown: true}
	router := newTestRouter(t, up)

	rec := call(t, router, http.MethodPost, "/api/v1/wizard/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeSession(t, rec)
	require.NotNil(t, created.State.APIError)
	assert.Equal(t, string(domain.CodeServiceUnavailable), created.State.APIError.Code)
	require.Len(t, created.Notifications, 1)
	assert.Equal(t, domain.ResourceServices, created.Notifications[0].Resource)

	base := "/api/v1/wizard/sessions/" + created.SessionID

	// лента уже вычитана при создании
	rec = call(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSession(t, rec).Notifications)

	up.mu.Lock()
	up.servicesDown = false
	up.mu.Unlock()

	rec = call(t, router, http.MethodPost, base+"/reload", map[string]any{"resource": "services"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reloaded := decodeSession(t, rec)
	assert.Nil(t, reloaded.State.APIError)
	assert.Len(t, reloaded.State.AvailableServices, 1)
}

func TestRouter_UnknownSession(t *testing.T) {
	router := newTestRouter(t, &upstream{})

	rec := call(t, router, http.MethodGet, "/api/v1/wizard/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, router, http.MethodPost, "/api/v1/wizard/sessions/does-not-exist/reset", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
