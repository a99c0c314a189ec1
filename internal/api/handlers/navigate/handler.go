package navigate

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
	bookingWizard "github.com/m04kA/SMC-RecoveryBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDirection   = "direction must be next or previous, or a step must be given"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/navigate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/navigate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		state wizard.State
		err   error
	)
	switch {
	case req.Step != nil:
		state, err = h.useCase.GoToStep(r.Context(), sess.Store, *req.Step)
	case req.Direction == bookingWizard.DirectionNext:
		state, err = h.useCase.Next(r.Context(), sess.Store)
	case req.Direction == bookingWizard.DirectionPrevious:
		state, err = h.useCase.Previous(r.Context(), sess.Store)
	default:
		h.logger.Warn("POST /wizard/sessions/{id}/navigate - Invalid direction: %q", req.Direction)
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}
	if err != nil {
		status := handlers.RespondWizardError(w, err)
		handlers.LogFailure(h.logger, status, "POST /wizard/sessions/{id}/navigate - Failed: session=%s, status=%d, error=%v",
			sess.ID, status, err)
		return
	}

	h.logger.Info("POST /wizard/sessions/{id}/navigate - Step changed: session=%s, step=%s", sess.ID, state.CurrentStep)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, nil))
}
