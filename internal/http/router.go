package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "minerals/backend/docs"
	"minerals/backend/internal/auth"
	"minerals/backend/internal/handler"
	"minerals/backend/internal/metrics"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/service"
)

// MaxBodySize caps every /api request body, in echo's BodyLimit notation.
const MaxBodySize = "1M"

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Account      *handler.AccountHandler
	Data         *handler.DataHandler
	Task         *handler.TaskHandler
	Income       *handler.IncomeHandler
	Loop         *handler.LoopHandler
	Subscription *handler.SubscriptionHandler
	Webhook      *handler.WebhookHandler
	Outcome      *handler.OutcomeHandler
}

type Options struct {
	StaticDir     string
	EnableSwagger bool
	// TrustProxy takes the client IP from X-Forwarded-For.
	TrustProxy bool
	// CookieName is the session cookie checked when no Authorization header
	// is sent; empty means AuthCookieName.
	CookieName string
}

func NewRouter(
	h Handlers,
	verifier auth.Verifier,
	accounts service.AccountService,
	limiter *RateLimiter,
	m *metrics.Metrics,
	opts Options,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if opts.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())
	if m != nil {
		e.Use(m.Middleware())
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api", middleware.BodyLimit(MaxBodySize))
	if h.Webhook != nil {
		h.Webhook.RegisterRoutes(api)
	}

	authed := api.Group("", RequireIdentity(verifier, WithCookieName(opts.CookieName)))
	routes := admittedRoutes{limiter: limiter, then: SyncUser(accounts)}
	for _, r := range []interface {
		RegisterRoutes(*echo.Group, handler.RouteLimiter)
	}{h.Account, h.Data, h.Task, h.Income, h.Loop, h.Subscription, h.Outcome} {
		r.RegisterRoutes(authed, routes)
	}

	registerStatic(e, opts.StaticDir)
	return e
}

// admittedRoutes runs then only for requests the limiter let through.
type admittedRoutes struct {
	limiter *RateLimiter
	then    echo.MiddlewareFunc
}

func (r admittedRoutes) PerUser(p ratelimit.Policy) echo.MiddlewareFunc {
	limit := r.limiter.PerUser(p)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return limit(r.then(next))
	}
}
