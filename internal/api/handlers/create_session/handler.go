package create_session

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/token"
)

const msgTokenStorage = "failed to start a wizard session"

type Handler struct {
	registry SessionRegistry
	tokens   TokenStore
	useCase  WizardUseCase
	logger   Logger
}

func NewHandler(registry SessionRegistry, tokens TokenStore, useCase WizardUseCase, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		tokens:   tokens,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/wizard/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess := h.registry.Create()

	// Bearer токен клиента пересылается в booking API от имени сессии
	if bearer := bearerToken(r); bearer != "" {
		if err := h.tokens.Save(r.Context(), sess.ID, bearer); err != nil {
			h.logger.Error("POST /wizard/sessions - Failed to store token: session=%s, error=%v", sess.ID, err)
			h.registry.Delete(sess.ID)
			handlers.RespondError(w, http.StatusServiceUnavailable, string(domain.CodeServiceUnavailable), msgTokenStorage)
			return
		}
	}

	ctx := token.ContextWithSession(r.Context(), sess.ID)
	state, err := h.useCase.LoadServices(ctx, sess.Store, false)
	if err != nil {
		h.logger.Warn("POST /wizard/sessions - Services not loaded: session=%s, error=%v", sess.ID, err)
	}

	h.logger.Info("POST /wizard/sessions - Session created: session=%s, services=%d", sess.ID, len(state.AvailableServices))
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewSessionResponse(sess.ID, state, sess.Feed.Drain()))
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
