package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"minerals/backend/internal/metrics"
)

func findMetric(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric
			}
		}
	}
	return nil
}

func labelsMatch(metric *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(metric.GetLabel()))
	for _, l := range metric.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestNew_Handler(t *testing.T) {
	m := metrics.New()
	m.IncRateLimitDecision("authenticated", metrics.DecisionAllowed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "go_goroutines"))
	require.True(t, strings.Contains(body, "http_inflight_requests"))
	require.True(t, strings.Contains(body, `ratelimit_decisions_total{policy="authenticated",result="allowed"} 1`))
}

func TestCounters(t *testing.T) {
	m := metrics.New()

	m.IncRateLimitDecision("signup", metrics.DecisionDenied)
	m.IncRateLimitDecision("signup", metrics.DecisionDenied)
	m.AddRateLimitSwept(3)
	m.AddRateLimitSwept(0)
	m.IncWebhookEvent("", "ignored")

	denied := findMetric(t, m, "ratelimit_decisions_total", map[string]string{"policy": "signup", "result": "denied"})
	require.NotNil(t, denied)
	require.Equal(t, 2.0, denied.GetCounter().GetValue())

	swept := findMetric(t, m, "ratelimit_swept_entries_total", nil)
	require.NotNil(t, swept)
	require.Equal(t, 3.0, swept.GetCounter().GetValue())

	webhook := findMetric(t, m, "billing_webhook_events_total", map[string]string{"type": "unknown", "result": "ignored"})
	require.NotNil(t, webhook)
	require.Equal(t, 1.0, webhook.GetCounter().GetValue())
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/tasks/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	for _, path := range []string{"/api/tasks/1", "/api/tasks/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	tasks := findMetric(t, m, "http_requests_total", map[string]string{"method": "GET", "route": "/api/tasks/:id", "status": "204"})
	require.NotNil(t, tasks)
	require.Equal(t, 2.0, tasks.GetCounter().GetValue())

	boom := findMetric(t, m, "http_requests_total", map[string]string{"route": "/boom", "status": "418"})
	require.NotNil(t, boom)
}
