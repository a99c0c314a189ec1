package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RecoveryBooking/internal/wizard"
)

// Session одна сессия мастера бронирования
type Session struct {
	ID        string
	Store     *wizard.Store
	Feed      *Feed
	CreatedAt time.Time

	lastSeen atomic.Int64
}

// LastSeen время последнего обращения к сессии
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Registry реестр сессий мастера в памяти процесса
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	metrics  Metrics
	now      func() time.Time
}

// NewRegistry создает пустой реестр. metrics может быть nil
func NewRegistry(metrics Metrics) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		metrics:  metrics,
		now:      time.Now,
	}
}

// Create создает новую сессию со своим хранилищем состояния
func (r *Registry) Create() *Session {
	now := r.now()
	feed := NewFeed(DefaultFeedLimit)
	s := &Session{
		ID:        uuid.NewString(),
		Store:     wizard.NewStore(feed),
		Feed:      feed,
		CreatedAt: now,
	}
	s.touch(now)

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.report(n)
	return s
}

// Get возвращает сессию и отмечает обращение
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Delete удаляет сессию
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.report(n)
	}
	return ok
}

// Len число активных сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше ttl, и возвращает их ID
func (r *Registry) Sweep(ttl time.Duration) []string {
	deadline := r.now().Add(-ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.LastSeen().Before(deadline) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if len(expired) > 0 {
		r.report(n)
	}
	return expired
}

// RunSweeper периодически вызывает Sweep до отмены контекста
func (r *Registry) RunSweeper(ctx context.Context, interval, ttl time.Duration, onExpired func(ids []string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if expired := r.Sweep(ttl); len(expired) > 0 && onExpired != nil {
				onExpired(expired)
			}
		}
	}
}

func (r *Registry) report(n int) {
	if r.metrics != nil {
		r.metrics.SetActiveSessions(n)
	}
}
