package select_date

import (
	"net/http"

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

// Handle POST /api/v1/wizard/sessions/{sessionId}/date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Слоты на выбранную дату загружаются сразу
	state, err := h.useCase.SelectDate(r.Context(), sess.Store, req.Date)
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /wizard/sessions/{id}/date - Failed: session=%s, date=%s, status=%d, error=%v",
			sess.ID, req.Date, status, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/date - Date selected: session=%s, date=%s, slots=%d",
		sess.ID, req.Date, len(state.AvailableTimeSlots))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
