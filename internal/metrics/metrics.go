// Package metrics метрики prometheus сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	paymentsExpired prometheus.Counter
	orderEvents     *prometheus.CounterVec
}

// New регистрирует метрики в отдельном реестре, чтобы тесты не конфликтовали с глобальным.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delivery",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "delivery",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		paymentsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "delivery",
			Name:      "payments_expired_total",
			Help:      "Pending payments marked as failed by the expirer.",
		}),
		orderEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delivery",
			Name:      "order_events_total",
			Help:      "Order events by type and publish result.",
		}, []string{"type", "result"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.paymentsExpired,
		m.orderEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware считает запросы. Для неизвестных маршрутов route пустой, чтобы не плодить метки.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) PaymentsExpired(n int) {
	m.paymentsExpired.Add(float64(n))
}

func (m *Metrics) OrderEvent(t domain.OrderEventType, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.orderEvents.WithLabelValues(string(t), result).Inc()
}
