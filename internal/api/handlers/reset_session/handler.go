package reset_session

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
)

const msgSessionNotFound = "wizard session not found"

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

// Handle POST /api/v1/wizard/sessions/{sessionId}/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	// Неудачная загрузка услуг после сброса видна в apiError, сброс все равно выполнен
	state, err := h.useCase.Reset(r.Context(), sess.Store)
	if err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/reset - Services reload failed: session=%s, error=%v", sess.ID, err)
	}

	h.logger.Info("POST /wizard/sessions/{id}/reset - Wizard reset: session=%s", sess.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
