package session

// Metrics метрики реестра сессий
type Metrics interface {
	SetActiveSessions(n int)
}
