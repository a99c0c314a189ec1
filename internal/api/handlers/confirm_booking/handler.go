package confirm_booking

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	// Тело запроса: paymentMethod, acceptCancellationPolicy, detailsConfirmed
	var rec validation.Record
	if err := handlers.DecodeJSON(r, &rec); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Confirm(r.Context(), sess.ID, sess.Store, rec)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /wizard/sessions/{id}/confirm - Failed to confirm booking: session=%s, status=%d, error=%v",
			sess.ID, status, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/confirm - Booking confirmed: session=%s, booking_id=%s, reference=%s",
		sess.ID, result.Confirmation.BookingID, result.Confirmation.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResult(sess.ID, result))
}
