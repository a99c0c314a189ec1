package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("session storage: session not found")
)
