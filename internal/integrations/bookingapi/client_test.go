package bookingapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type staticToken string

func (t staticToken) Token(context.Context) (string, error) { return string(t), nil }

type fakeMetrics struct {
	mu       sync.Mutex
	retries  map[string]int
	outcomes []string
}

func (m *fakeMetrics) ObserveUpstream(method, endpoint, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, method+" "+endpoint+" "+outcome)
}

func (m *fakeMetrics) IncUpstreamRetry(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retries == nil {
		m.retries = map[string]int{}
	}
	m.retries[endpoint]++
}

func fastRetry() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2,
		Jitter:          0.5,
	}
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: raw, Timestamp: "2026-10-15T10:00:00Z"})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

func newTestClient(srv *httptest.Server, m Metrics) *Client {
	return NewClient(srv.URL+"/api/", 2*time.Second, fastRetry(), staticToken("tok-123"), m, nopLogger{})
}

func TestClient_GetServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/booking/services", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeData(t, w, []Service{
			{ID: "svc-1", Name: "Investment Fraud Recovery", Duration: 60, Price: 150},
			{ID: "svc-2", Name: "Free Consultation", Duration: 30},
		})
	}))
	defer srv.Close()

	services, err := newTestClient(srv, nil).GetServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Investment Fraud Recovery", services[0].Name)
	assert.Equal(t, int64(15000), services[0].PriceInCents())
	assert.True(t, services[1].IsFree())
}

func TestClient_GetRetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			writeError(w, http.StatusServiceUnavailable, "", "")
			return
		}
		writeData(t, w, []Service{{ID: "svc-1", Name: "Massage Therapy"}})
	}))
	defer srv.Close()

	m := &fakeMetrics{}
	services, err := newTestClient(srv, m).GetServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Massage Therapy", services[0].Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, m.retries["/booking/services"])
	assert.Equal(t, []string{"GET /booking/services success"}, m.outcomes)
}

func TestClient_GetGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil).GetServices(context.Background())
	require.Error(t, err)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeServerError, apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestClient_NonTransientGetIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(w, http.StatusNotFound, "", "Booking not found")
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil).GetBooking(context.Background(), "bk-1")
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeResourceNotFound, apiErr.Code)
	assert.Equal(t, "Booking not found", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_PostIsNeverRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(w, http.StatusServiceUnavailable, "", "")
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil).CreateBooking(context.Background(), CreateBookingRequest{ServiceID: "svc-1"})
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeServiceUnavailable, apiErr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_EnvelopeCodeWinsOverStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "BOOKING_UNAVAILABLE", "Slot is no longer available")
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil).CreateBooking(context.Background(), CreateBookingRequest{ServiceID: "svc-1"})
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeBookingUnavailable, apiErr.Code)
	assert.Equal(t, "Slot is no longer available", apiErr.Message)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   domain.ErrorCode
	}{
		{http.StatusBadRequest, domain.CodeValidationError},
		{http.StatusUnauthorized, domain.CodeAuthInvalidCredentials},
		{http.StatusConflict, domain.CodeResourceConflict},
		{http.StatusTeapot, domain.CodeClientError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, "not json")
			}))
			defer srv.Close()

			_, err := newTestClient(srv, nil).CancelBooking(context.Background(), "bk-1", "")
			apiErr, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(srv, nil)
	srv.Close()

	_, err := client.CreatePaymentIntent(context.Background(), 15000, "usd")
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeNetworkError, apiErr.Code)
	assert.Zero(t, apiErr.Status)
}

func TestClient_UndecodableSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"not":"a list"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, nil).GetServices(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeUnexpectedError, apiErr.Code)
}

func TestClient_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/api/booking/available-dates":
			assert.Equal(t, "2026-10-15", q.Get("startDate"))
			assert.Equal(t, "2026-11-14", q.Get("endDate"))
			assert.Equal(t, "svc-1", q.Get("serviceType"))
			writeData(t, w, []AvailableDate{{Date: "2026-10-16", DayOfWeek: "Friday", Available: true, Slots: 3}})
		case "/api/booking/available-slots":
			assert.Equal(t, "2026-10-16", q.Get("date"))
			assert.False(t, q.Has("duration"))
			writeData(t, w, []TimeSlot{{ID: "slot-1", StartTime: "09:00", EndTime: "10:00", Duration: 60, Available: true}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)

	dates, err := client.GetAvailableDates(context.Background(), "2026-10-15", "2026-11-14", "svc-1")
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.True(t, dates[0].HasAvailability())

	slots, err := client.GetAvailableSlots(context.Background(), "2026-10-16", "svc-1", 0)
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestClient_CreateBookingBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booking/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "svc-1", body["serviceId"])
		assert.Equal(t, "slot-1", body["timeSlot"])
		assert.NotContains(t, body, "practitionerId")
		assert.Equal(t, "pi_1", body["paymentIntentId"])
		client := body["client"].(map[string]any)
		assert.Equal(t, "john@example.com", client["email"])

		writeData(t, w, CreateBookingResponse{BookingID: "bk-1", ConfirmationCode: "CONF-42", Status: "confirmed"})
	}))
	defer srv.Close()

	intentID := "pi_1"
	confirmation, err := newTestClient(srv, nil).CreateBooking(context.Background(), CreateBookingRequest{
		ServiceID:       "svc-1",
		Date:            "2026-10-16",
		TimeSlot:        "slot-1",
		Client:          ClientContact{FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "555-123-4567"},
		PaymentMethod:   "card",
		PaymentIntentID: &intentID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CONF-42", confirmation.ConfirmationCode)
	assert.Equal(t, "bk-1", confirmation.BookingID)
}

func TestClient_PaymentIntentAndLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/payments/create-intent":
			assert.Equal(t, float64(15000), body["amount"])
			assert.Equal(t, "usd", body["currency"])
			writeData(t, w, paymentIntentResponse{ClientSecret: "secret", PaymentIntentID: "pi_1"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/booking/bk-1/reschedule":
			assert.Equal(t, "2026-10-17T09:00:00Z", body["startTime"])
			writeData(t, w, Booking{ID: "bk-1", Status: "rescheduled", Date: "2026-10-17"})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/booking/bk-1":
			assert.Equal(t, "call after 5pm", body["notes"])
			writeData(t, w, Booking{ID: "bk-1", Notes: "call after 5pm"})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	ctx := context.Background()

	intent, err := client.CreatePaymentIntent(ctx, 15000, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.PaymentIntentID)
	assert.Equal(t, int64(15000), intent.Amount)

	booking, err := client.RescheduleBooking(ctx, "bk-1", "2026-10-17T09:00:00Z", "2026-10-17T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "rescheduled", booking.Status)

	notes := "call after 5pm"
	booking, err = client.UpdateBooking(ctx, "bk-1", UpdateBookingRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, booking.Notes)
}

func TestClient_ContextCancelledDuringRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, RetryPolicy{
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     time.Second,
		Multiplier:      1,
	}, nil, nil, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetServices(ctx)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsRetryable())
}
