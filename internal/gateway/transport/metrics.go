package transport

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчик и гистограмма запросов адаптера. Используются и HTTP-, и RPC-адаптером.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics создаёт метрики и регистрирует их в reg. При reg == nil метрики
// работают, но никуда не экспортируются.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_client_requests_total",
			Help: "Number of gateway requests by endpoint, method and response code.",
		}, []string{"endpoint", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_client_request_duration_seconds",
			Help:    "Gateway request round trip duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}
	if reg == nil {
		return m
	}

	m.requests = register(reg, m.requests)
	m.duration = register(reg, m.duration)
	return m
}

// register возвращает уже зарегистрированный коллектор, если несколько
// адаптеров пишут в один реестр.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// Observe записывает результат одного запроса. code = 0 означает сбой транспорта.
func (m *Metrics) Observe(endpoint, method string, code int, elapsed time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(endpoint, method, label).Inc()
	m.duration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}
