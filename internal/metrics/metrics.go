package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rate limit decision labels.
const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
	DecisionError   = "error"
)

type Metrics struct {
	reg                *prometheus.Registry
	handler            http.Handler
	inflight           prometheus.Gauge
	reqTotal           *prometheus.CounterVec
	reqDur             *prometheus.HistogramVec
	ratelimitDecisions *prometheus.CounterVec
	ratelimitSwept     prometheus.Counter
	webhookEventsTotal *prometheus.CounterVec
}

// New returns a fresh registry with the Go and process collectors and the
// application metrics. Labels use the route pattern, never the raw path.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests",
		}),
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		ratelimitDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_decisions_total",
			Help: "Rate limiter decisions by policy and result",
		}, []string{"policy", "result"}),
		ratelimitSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_swept_entries_total",
			Help: "Expired rate limit windows removed by the reaper",
		}),
		webhookEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_webhook_events_total",
			Help: "Billing webhook deliveries by event type and result",
		}, []string{"type", "result"}),
	}
	reg.MustRegister(
		m.inflight,
		m.reqTotal,
		m.reqDur,
		m.ratelimitDecisions,
		m.ratelimitSwept,
		m.webhookEventsTotal,
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	m.reg = reg
	return m
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) IncRateLimitDecision(policy, result string) {
	m.ratelimitDecisions.WithLabelValues(policy, result).Inc()
}

func (m *Metrics) AddRateLimitSwept(n int) {
	if n > 0 {
		m.ratelimitSwept.Add(float64(n))
	}
}

func (m *Metrics) IncWebhookEvent(eventType, result string) {
	if eventType == "" {
		eventType = "unknown"
	}
	m.webhookEventsTotal.WithLabelValues(eventType, result).Inc()
}

// Middleware counts and times every request by its registered route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.inflight.Inc()
			defer m.inflight.Dec()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := c.Response().Status
			if status == 0 {
				status = http.StatusOK
			}

			m.reqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.reqDur.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
