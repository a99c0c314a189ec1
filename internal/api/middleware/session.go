package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RecoveryBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-RecoveryBooking/internal/infra/storage/token"
)

const msgSessionNotFound = "wizard session not found or expired"

type sessionCtxKey struct{}

// SessionRegistry источник сессий мастера
type SessionRegistry interface {
	Get(id string) (*session.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Session находит сессию по {sessionId} из пути и кладет ее в контекст запроса.
// ID сессии также попадает в контекст для провайдера bearer токенов.
func Session(registry SessionRegistry, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := mux.Vars(r)["sessionId"]

			s, err := registry.Get(id)
			if err != nil {
				if !errors.Is(err, session.ErrSessionNotFound) {
					logger.Warn("Session middleware - lookup failed: session=%s, error=%v", id, err)
				}
				handlers.RespondNotFound(w, msgSessionNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, s)
			ctx = token.ContextWithSession(ctx, s.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession достает сессию, найденную middleware Session
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*session.Session)
	return s, ok && s != nil
}
