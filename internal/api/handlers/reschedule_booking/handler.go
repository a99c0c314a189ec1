package reschedule_booking

import (
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}
	bookingID := mux.Vars(r)["bookingId"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.RescheduleBooking(r.Context(), sess.Store, bookingID, req.Date, req.TimeSlotID)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /bookings/{id}/reschedule - Failed: booking_id=%s, date=%s, slot=%s, status=%d, error=%v",
			bookingID, req.Date, req.TimeSlotID, status, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled: booking_id=%s, date=%s, slot=%s",
		bookingID, req.Date, req.TimeSlotID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(booking))
}
