package token

import (
	"context"
	"errors"
)

type sessionKey struct{}

// ContextWithSession кладет ID сессии мастера в контекст
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext достает ID сессии из контекста
func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok && sessionID != ""
}

// SessionProvider отдает токен сессии, указанной в контексте запроса
type SessionProvider struct {
	store Store
}

// NewSessionProvider создает провайдер токенов поверх хранилища
func NewSessionProvider(store Store) *SessionProvider {
	return &SessionProvider{store: store}
}

// Token возвращает пустую строку, если сессии или токена нет
func (p *SessionProvider) Token(ctx context.Context) (string, error) {
	sessionID, ok := SessionFromContext(ctx)
	if !ok {
		return "", nil
	}

	token, err := p.store.Get(ctx, sessionID)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}
