package reload_resource

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnknownResource    = "unknown resource"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/reload
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req ReloadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/reload - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resource, err := domain.ParseResource(req.Resource)
	if err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/reload - %v", err)
		handlers.RespondBadRequest(w, msgUnknownResource)
		return
	}

	state, err := h.useCase.Reload(r.Context(), sess.Store, resource)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /wizard/sessions/{id}/reload - Failed: session=%s, resource=%s, status=%d, error=%v",
			sess.ID, resource, status, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/reload - Reloaded: session=%s, resource=%s", sess.ID, resource)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
