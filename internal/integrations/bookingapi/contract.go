package bookingapi

import (
	"context"
	"time"
)

// TokenProvider отдает bearer токен для исходящих запросов
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Metrics метрики исходящих запросов
type Metrics interface {
	ObserveUpstream(method, endpoint, outcome string, duration time.Duration)
	IncUpstreamRetry(endpoint string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
