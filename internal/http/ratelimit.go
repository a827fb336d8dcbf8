package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/handler"
	"minerals/backend/internal/hashutil"
	"minerals/backend/internal/metrics"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/pkg/logger"
)

// DecisionRecorder counts limiter decisions per policy.
type DecisionRecorder interface {
	IncRateLimitDecision(policy, result string)
}

// RateLimiter turns a ratelimit.Store into per-route echo middleware.
type RateLimiter struct {
	store    ratelimit.Store
	recorder DecisionRecorder
	now      func() time.Time
}

var _ handler.RouteLimiter = (*RateLimiter)(nil)

type LimiterOption func(*RateLimiter)

// WithLimiterClock replaces time.Now when computing Retry-After, for tests.
func WithLimiterClock(now func() time.Time) LimiterOption {
	return func(l *RateLimiter) { l.now = now }
}

func NewRateLimiter(store ratelimit.Store, recorder DecisionRecorder, opts ...LimiterOption) *RateLimiter {
	l := &RateLimiter{store: store, recorder: recorder, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PerUser keys by the authenticated user and falls back to the client IP.
// It must run after RequireIdentity.
func (l *RateLimiter) PerUser(p ratelimit.Policy) echo.MiddlewareFunc {
	return l.limit(p, func(c echo.Context) string {
		id, _ := auth.FromContext(c.Request().Context())
		return ratelimit.Key(id.ID, c.RealIP())
	})
}

func (l *RateLimiter) limit(p ratelimit.Policy, keyOf func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := keyOf(c)
			res, err := l.store.CheckAndIncrement(c.Request().Context(), ratelimit.StoreKey(p, key), p)
			if err != nil {
				// fail open
				l.record(p.Name, metrics.DecisionError)
				logger.Warn("rate limit check failed", "module", "http", "action", "ratelimit", "resource", p.Name, "result", "skipped", "key_hash", hashutil.Fingerprint(key), "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(p.MaxRequests))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetTime.Unix(), 10))

			if !res.Allowed {
				l.record(p.Name, metrics.DecisionDenied)
				h.Set("Retry-After", strconv.Itoa(res.RetryAfter(l.now())))
				logger.Info("rate limited", "module", "http", "action", "ratelimit", "resource", p.Name, "result", "failed", "key_hash", hashutil.Fingerprint(key))
				return handler.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			}
			l.record(p.Name, metrics.DecisionAllowed)
			return next(c)
		}
	}
}

func (l *RateLimiter) record(policy, result string) {
	if l.recorder != nil {
		l.recorder.IncRateLimitDecision(policy, result)
	}
}
