package session

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-RecoveryBooking/internal/domain"
)

// DefaultFeedLimit сколько уведомлений хранится до вычитки
const DefaultFeedLimit = 20

// Notification пользовательское уведомление об ошибке API
type Notification struct {
	Code     domain.ErrorCode `json:"code"`
	Message  string           `json:"message"`
	Resource domain.Resource  `json:"resource,omitempty"`
	At       time.Time        `json:"at"`
}

// Feed лента уведомлений сессии. Реализует wizard.Notifier
type Feed struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

// NewFeed создает ленту с ограничением размера; старые записи вытесняются
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit, now: time.Now}
}

// Notify добавляет уведомление
func (f *Feed) Notify(err domain.APIError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, Notification{
		Code:     err.Code,
		Message:  err.Message,
		Resource: err.Resource,
		At:       f.now(),
	})
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Drain возвращает накопленные уведомления и очищает ленту
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.items
	f.items = nil
	return items
}

// Len число невычитанных уведомлений
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
