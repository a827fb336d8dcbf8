package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"minerals/backend/internal/auth"
	gh "minerals/backend/internal/http"
	"minerals/backend/internal/metrics"
	"minerals/backend/internal/ratelimit"
)

type decision struct {
	policy string
	result string
}

type fakeDecisionRecorder struct {
	mu        sync.Mutex
	decisions []decision
}

func (r *fakeDecisionRecorder) IncRateLimitDecision(policy, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, decision{policy, result})
}

func (r *fakeDecisionRecorder) count(result string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.decisions {
		if d.result == result {
			n++
		}
	}
	return n
}

type failingStore struct{}

func (failingStore) CheckAndIncrement(context.Context, string, ratelimit.Policy) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis: connection refused")
}

type keyRecordingStore struct {
	keys []string
}

func (s *keyRecordingStore) CheckAndIncrement(_ context.Context, key string, p ratelimit.Policy) (ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	return ratelimit.Result{Allowed: true, Remaining: p.MaxRequests - 1, ResetTime: time.Now().Add(p.Window)}, nil
}

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func serveLimited(t *testing.T, mw echo.MiddlewareFunc, id *auth.Identity, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/loops", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if id != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *id))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(okHandler)(c))
	return rec
}

func TestRateLimiter_PerUser(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))
	recorder := &fakeDecisionRecorder{}
	limiter := gh.NewRateLimiter(store, recorder, gh.WithLimiterClock(func() time.Time { return now.Add(15 * time.Second) }))
	policy := ratelimit.Policy{Name: "test", MaxRequests: 2, Window: time.Minute}
	mw := limiter.PerUser(policy)

	rec := serveLimited(t, mw, &testIdentity, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, strconv.FormatInt(now.Add(time.Minute).Unix(), 10), rec.Header().Get("X-RateLimit-Reset"))

	rec = serveLimited(t, mw, &testIdentity, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serveLimited(t, mw, &testIdentity, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "45", rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), `"error"`)
	require.NotEqual(t, "ok", rec.Body.String())

	other := auth.Identity{ID: "user_2"}
	rec = serveLimited(t, mw, &other, "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, 3, recorder.count(metrics.DecisionAllowed))
	require.Equal(t, 1, recorder.count(metrics.DecisionDenied))
}

func TestRateLimiter_Keys(t *testing.T) {
	store := &keyRecordingStore{}
	limiter := gh.NewRateLimiter(store, nil)

	serveLimited(t, limiter.PerUser(ratelimit.Authenticated), &testIdentity, "10.0.0.7:1234")
	serveLimited(t, limiter.PerUser(ratelimit.Signup), &testIdentity, "10.0.0.7:1234")
	serveLimited(t, limiter.PerUser(ratelimit.Signup), &auth.Identity{ID: "user_2"}, "10.0.0.7:1234")
	serveLimited(t, limiter.PerUser(ratelimit.Authenticated), nil, "10.0.0.8:1234")

	require.Equal(t, []string{
		"authenticated:user:user_1",
		"signup:user:user_1",
		"signup:user:user_2",
		"authenticated:ip:10.0.0.8",
	}, store.keys)
}

func TestRateLimiter_StoreErrorFailsOpen(t *testing.T) {
	recorder := &fakeDecisionRecorder{}
	limiter := gh.NewRateLimiter(failingStore{}, recorder)

	rec := serveLimited(t, limiter.PerUser(ratelimit.TaskCreate), &testIdentity, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, []decision{{"task_create", metrics.DecisionError}}, recorder.decisions)
}
