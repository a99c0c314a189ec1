package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSessionNotFound    = "wizard session not found"
)

type Handler struct {
	useCase WizardUseCase
	logger  Logger
}

func NewHandler(useCase WizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}
	bookingID := mux.Vars(r)["bookingId"]

	// Тело необязательно
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.CancelBooking(r.Context(), sess.Store, bookingID, req.reason())
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, status=%d, error=%v",
			bookingID, status, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s, session=%s", bookingID, sess.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(booking))
}
