package token

import (
	"context"
	"sync"
)

// MemoryStore хранит токены в памяти процесса
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// Save сохраняет токен сессии
func (s *MemoryStore) Save(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = token
	return nil
}

// Get возвращает токен сессии
func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[sessionID]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Delete удаляет токен сессии
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
	return nil
}
