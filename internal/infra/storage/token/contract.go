package token

import "context"

// Store хранилище bearer токенов сессий мастера
type Store interface {
	Save(ctx context.Context, sessionID, token string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
