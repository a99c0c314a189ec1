package update_booking_notes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle PATCH /api/v1/wizard/sessions/{sessionId}/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.UpdateBookingNotes(r.Context(), bookingID, req.Notes)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "PATCH /bookings/{id} - Failed to update notes: booking_id=%s, status=%d, error=%v",
			bookingID, status, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Notes updated: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(booking))
}
