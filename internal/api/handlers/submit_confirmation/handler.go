package submit_confirmation

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/confirmation
// Сохраняет способ оплаты и согласия, для карты готовит платежное намерение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, "wizard session not found")
		return
	}

	var rec validation.Record
	if err := handlers.DecodeJSON(r, &rec); err != nil {
		h.logger.Warn("PUT /wizard/sessions/{id}/confirmation - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	state, err := h.useCase.SubmitConfirmation(r.Context(), sess.Store, rec)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "PUT /wizard/sessions/{id}/confirmation - Failed: session=%s, status=%d, error=%v",
			sess.ID, status, err)
		return
	}

	h.logger.Info("PUT /wizard/sessions/{id}/confirmation - Confirmation details saved: session=%s", sess.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
