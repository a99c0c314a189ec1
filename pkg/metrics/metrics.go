// Package metrics Prometheus-метрики сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса. Методы безопасны для nil-получателя
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec
	upstreamRetriesTotal    *prometheus.CounterVec

	wizardTransitionsTotal *prometheus.CounterVec
	bookingsCompletedTotal prometheus.Counter
	activeSessions         prometheus.Gauge
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of inbound HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Inbound HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_requests_total",
			Help:        "Total number of requests to the booking API",
			ConstLabels: constLabels,
		}, []string{"method", "endpoint", "outcome"}),
		upstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Booking API request latency including retries",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		upstreamRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_retries_total",
			Help:        "Total number of retried booking API requests",
			ConstLabels: constLabels,
		}, []string{"endpoint"}),
		wizardTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_step_transitions_total",
			Help:        "Wizard step transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		bookingsCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "wizard_bookings_completed_total",
			Help:        "Bookings confirmed through the wizard",
			ConstLabels: constLabels,
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "wizard_active_sessions",
			Help:        "Wizard sessions currently held in memory",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamRequestsTotal,
		m.upstreamRequestDuration,
		m.upstreamRetriesTotal,
		m.wizardTransitionsTotal,
		m.bookingsCompletedTotal,
		m.activeSessions,
	)

	return m
}

// ObserveHTTPRequest учитывает входящий HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstream учитывает запрос к booking API
func (m *Metrics) ObserveUpstream(method, endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncUpstreamRetry учитывает повторную попытку запроса
func (m *Metrics) IncUpstreamRetry(endpoint string) {
	if m == nil {
		return
	}
	m.upstreamRetriesTotal.WithLabelValues(endpoint).Inc()
}

// ObserveStepTransition учитывает переход между шагами мастера
func (m *Metrics) ObserveStepTransition(from, to string) {
	if m == nil {
		return
	}
	m.wizardTransitionsTotal.WithLabelValues(from, to).Inc()
}

// IncBookingsCompleted учитывает подтвержденное бронирование
func (m *Metrics) IncBookingsCompleted() {
	if m == nil {
		return
	}
	m.bookingsCompletedTotal.Inc()
}

// SetActiveSessions выставляет число активных сессий
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
