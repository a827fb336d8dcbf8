package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/handler"
	"minerals/backend/internal/service"
	"minerals/backend/pkg/logger"
)

// AuthCookieName is the session cookie set by the identity provider's frontend SDK.
const AuthCookieName = "__session"

// RequestIDMiddleware tags every request with a uuid, reusing an inbound X-Request-ID.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLoggerMiddleware logs one line per request at a level chosen by status.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"module", "http",
				"action", "request",
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				if v.Error != nil {
					attrs = append(attrs, "error", v.Error)
				}
				logger.Error("request", append(attrs, "result", "failed")...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("request", append(attrs, "result", "failed")...)
			default:
				logger.Debug("request", append(attrs, "result", "ok")...)
			}
			return nil
		},
	})
}

type IdentityOption func(*identityConfig)

type identityConfig struct {
	cookieName string
}

// WithCookieName overrides AuthCookieName.
func WithCookieName(name string) IdentityOption {
	return func(cfg *identityConfig) {
		if name != "" {
			cfg.cookieName = name
		}
	}
}

// RequireIdentity verifies the bearer token (header or session cookie) and
// stores the identity on the request context. Requests without a valid token
// stop here with 401. It never touches the database.
func RequireIdentity(verifier auth.Verifier, opts ...IdentityOption) echo.MiddlewareFunc {
	cfg := identityConfig{cookieName: AuthCookieName}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c, cfg.cookieName)
			if token == "" {
				return handler.Error(c, http.StatusUnauthorized, "unauthorized")
			}

			ctx := c.Request().Context()
			id, err := verifier.Verify(ctx, token)
			if err != nil {
				logger.Debug("token rejected", "module", "http", "action", "authenticate", "resource", "identity", "result", "failed", "error", err)
				return handler.Error(c, http.StatusUnauthorized, "unauthorized")
			}

			c.SetRequest(c.Request().WithContext(auth.WithIdentity(ctx, id)))
			return next(c)
		}
	}
}

// SyncUser upserts the local user row for the identity RequireIdentity stored.
// Routes run it after their rate limit so a throttled caller never writes.
func SyncUser(accounts service.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			id, ok := auth.FromContext(ctx)
			if !ok {
				return handler.Error(c, http.StatusUnauthorized, "unauthorized")
			}
			if _, err := accounts.EnsureUser(ctx, id); err != nil {
				logger.Error("user sync failed", "module", "http", "action", "sync", "resource", "user", "result", "failed", "user_id", id.ID, "error", err)
				return handler.Error(c, http.StatusInternalServerError, "internal error")
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context, cookieName string) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
