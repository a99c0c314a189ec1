package get_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
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

// Handle GET /api/v1/wizard/sessions/{sessionId}/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.useCase.GetBooking(r.Context(), bookingID)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "GET /bookings/{id} - Failed to get booking: booking_id=%s, status=%d, error=%v",
			bookingID, status, err)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(booking))
}
