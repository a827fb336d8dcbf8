package handler

import (
	"github.com/labstack/echo/v4"

	"minerals/backend/internal/ratelimit"
)

// RouteLimiter builds the rate limit middleware for one endpoint class. Every
// authenticated route is registered with exactly one policy, and nothing the
// route does after it (user sync, body parsing, storage) runs on a 429.
type RouteLimiter interface {
	PerUser(p ratelimit.Policy) echo.MiddlewareFunc
}
