package domain

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepID_TextRoundTrip(t *testing.T) {
	for _, step := range AllSteps {
		text, err := step.MarshalText()
		require.NoError(t, err)

		var parsed StepID
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, step, parsed)
	}

	_, err := StepID(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = ParseStepID("PAYMENT")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestStepID_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]StepID{"step": StepClientInformation})
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"CLIENT_INFORMATION"}`, string(data))
}

func TestStepSet(t *testing.T) {
	var set StepSet
	set = set.Add(StepDateSelection).Add(StepServiceSelection).Add(StepDateSelection)

	assert.True(t, set.Has(StepServiceSelection))
	assert.False(t, set.Has(StepConfirmation))
	assert.Equal(t, []StepID{StepServiceSelection, StepDateSelection}, set.Steps())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, set, set.Add(StepID(-1)))
}

func TestCodeForStatus(t *testing.T) {
	tests := map[int]ErrorCode{
		http.StatusBadRequest:          CodeValidationError,
		http.StatusUnauthorized:        CodeAuthInvalidCredentials,
		http.StatusNotFound:            CodeResourceNotFound,
		http.StatusConflict:            CodeResourceConflict,
		http.StatusTooManyRequests:     CodeTooManyRequests,
		http.StatusInternalServerError: CodeServerError,
		http.StatusServiceUnavailable:  CodeServiceUnavailable,
		http.StatusGatewayTimeout:      CodeGatewayTimeout,
		http.StatusTeapot:              CodeClientError,
		599:                            CodeServerError,
	}
	for status, want := range tests {
		assert.Equal(t, want, CodeForStatus(status), "status %d", status)
	}
}

func TestAPIError(t *testing.T) {
	base := &APIError{Code: CodeServerError, Message: "boom", Status: 500}
	withRes := base.WithResource(ResourceServices)

	assert.Empty(t, base.Resource)
	assert.Equal(t, "SERVER_ERROR (services): boom", withRes.Error())
	assert.True(t, withRes.IsRetryable())
	assert.False(t, (&APIError{Code: CodeBookingConflict}).IsRetryable())

	var err error = withRes
	got, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Same(t, withRes, got)
}

func TestServiceOptionPrice(t *testing.T) {
	svc := ServiceOption{Price: 149.99}
	assert.Equal(t, int64(14999), svc.PriceInCents())
	assert.False(t, svc.IsFree())
	assert.True(t, (&ServiceOption{}).IsFree())
}

func TestBookingTimeSlot(t *testing.T) {
	slot := BookingTimeSlot{StartTime: "09:30", EndTime: "10:30"}

	start, err := slot.StartOn("2026-11-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-02T09:30:00Z", start)

	_, err = slot.EndOn("not-a-date")
	assert.Error(t, err)
}
