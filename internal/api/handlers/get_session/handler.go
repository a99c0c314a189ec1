package get_session

import (
	"net/http"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/api/middleware"
)

const msgSessionNotFound = "wizard session not found"

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/wizard/sessions/{sessionId}
// Отдает снимок состояния и вычитывает накопленные уведомления об ошибках
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /wizard/sessions/{id} - Missing session")
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	state := sess.Store.State()
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(sess.ID, state, sess.Feed.Drain()))
}
