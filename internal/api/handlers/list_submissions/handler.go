package list_submissions

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
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

// Handle GET /api/v1/wizard/sessions/{sessionId}/submissions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /wizard/sessions/{id}/submissions - Missing session")
		handlers.RespondNotFound(w, "wizard session not found")
		return
	}

	list, err := h.useCase.ListSubmissions(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("GET /wizard/sessions/{id}/submissions - Failed to list submissions: session_id=%s, error=%v", sess.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /wizard/sessions/{id}/submissions - Submissions listed: session_id=%s, count=%d", sess.ID, len(list))
	handlers.RespondJSON(w, http.StatusOK, fromSubmissions(list))
}
