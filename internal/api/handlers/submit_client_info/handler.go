package submit_client_info

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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/client
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var rec validation.Record
	if err := handlers.DecodeJSON(r, &rec); err != nil {
		h.logger.Warn("PUT /wizard/sessions/{id}/client - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	state, err := h.useCase.SubmitClientInfo(r.Context(), sess.Store, rec)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "PUT /wizard/sessions/{id}/client - Failed: session=%s, status=%d, error=%v",
			sess.ID, status, err)
		return
	}

	h.logger.Info("PUT /wizard/sessions/{id}/client - Client information saved: session=%s", sess.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
