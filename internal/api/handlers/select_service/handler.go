package select_service

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RecoveryBooking/internal/validation"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/service
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var rec validation.Record
	if err := handlers.DecodeJSON(r, &rec); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/service - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	state, err := h.useCase.SelectService(r.Context(), sess.Store, rec)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /wizard/sessions/{id}/service - Failed: session=%s, status=%d, error=%v",
			sess.ID, status, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/service - Service selected: session=%s, service=%s", sess.ID, selectedServiceID(state))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}

func selectedServiceID(s wizard.State) string {
	if s.SelectedService == nil {
		return ""
	}
	return s.SelectedService.ID
}
