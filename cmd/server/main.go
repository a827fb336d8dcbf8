// @title Minerals API
// @version 1.0
// @description Time tracking, earnings and subscription API.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/billing"
	"minerals/backend/internal/config"
	"minerals/backend/internal/db"
	"minerals/backend/internal/handler"
	gh "minerals/backend/internal/http"
	"minerals/backend/internal/metrics"
	"minerals/backend/internal/ratelimit"
	"minerals/backend/internal/repository"
	"minerals/backend/internal/scheduler"
	"minerals/backend/internal/service"
	"minerals/backend/pkg/logger"
	"minerals/backend/pkg/snowflake"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Setup(logger.Options{Level: logger.ParseLevel(cfg.LogLevel), JSON: cfg.LogJSON})

	if err := run(cfg); err != nil {
		logger.Error("server exited", "module", "main", "action", "run", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := snowflake.Init(cfg.NodeID); err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	logger.Info("database ready", "module", "main", "action", "open", "resource", "db", "result", "ok", "path", cfg.DBPath)

	m := metrics.New()

	store, reaper, closeStore, err := newLimiterStore(cfg.RateLimit, m)
	if err != nil {
		return err
	}
	defer closeStore()
	if reaper != nil {
		reaper.Start()
		defer reaper.Stop()
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	var provider billing.Provider
	if cfg.Stripe.SecretKey != "" {
		provider = billing.NewStripeProvider(billing.StripeConfig{
			SecretKey:      cfg.Stripe.SecretKey,
			WebhookSecret:  cfg.Stripe.WebhookSecret,
			ProPriceID:     cfg.Stripe.ProPriceID,
			CallsPerSecond: cfg.Stripe.CallsPerSecond,
		})
	} else {
		logger.Warn("stripe not configured, billing endpoints disabled", "module", "main", "action", "configure", "resource", "billing", "result", "skipped")
	}

	users := repository.NewUserRepository(database)
	userData := repository.NewUserDataRepository(database)
	tasks := repository.NewTaskRepository(database)
	income := repository.NewIncomeRepository(database)
	loops := repository.NewLoopRepository(database)
	billingRepo := repository.NewBillingRepository(database)

	accountService := service.NewAccountService(users, userData)
	settingsService := service.NewSettingsService(userData)
	taskService := service.NewTaskService(tasks)
	incomeService := service.NewIncomeService(income)
	loopService := service.NewLoopService(loops)
	subscriptionService := service.NewSubscriptionService(billingRepo, provider, cfg.AppOrigin)
	outcomeService := service.NewOutcomeService(userData, tasks, income, subscriptionService)

	router := gh.NewRouter(
		gh.Handlers{
			Account:      handler.NewAccountHandler(accountService),
			Data:         handler.NewDataHandler(settingsService),
			Task:         handler.NewTaskHandler(taskService),
			Income:       handler.NewIncomeHandler(incomeService),
			Loop:         handler.NewLoopHandler(loopService),
			Subscription: handler.NewSubscriptionHandler(subscriptionService),
			Webhook:      handler.NewWebhookHandler(subscriptionService, m),
			Outcome:      handler.NewOutcomeHandler(outcomeService),
		},
		verifier,
		accountService,
		gh.NewRateLimiter(store, m),
		m,
		gh.Options{
			StaticDir:     cfg.StaticDir,
			EnableSwagger: true,
			TrustProxy:    cfg.TrustProxy,
			CookieName:    cfg.Auth.CookieName,
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "main", "action", "listen", "result", "ok", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "module", "main", "action", "shutdown", "result", "ok")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLimiterStore returns the configured store. The memory store comes with a
// reaper that sweeps closed windows; Redis expires keys on its own.
func newLimiterStore(cfg config.RateLimitConfig, m *metrics.Metrics) (ratelimit.Store, *scheduler.Scheduler, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		store := ratelimit.NewMemoryStore()
		reaper := ratelimit.NewReaper(store, ratelimit.ReapInterval, m.AddRateLimitSwept)
		return store, reaper, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("rate limit store ready", "module", "main", "action", "configure", "resource", "ratelimit", "result", "ok", "backend", "redis", "addr", cfg.RedisAddr)
		return ratelimit.NewRedisStore(client), nil, func() { _ = client.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}

func newVerifier(cfg config.AuthConfig) (auth.Verifier, error) {
	var opts []auth.JWTOption
	if cfg.JWTSecret != "" {
		opts = append(opts, auth.WithHMACSecret(cfg.JWTSecret))
	}
	if cfg.PublicKeyPath != "" {
		opts = append(opts, auth.WithRSAPublicKeyFile(cfg.PublicKeyPath))
	}
	if cfg.Issuer != "" {
		opts = append(opts, auth.WithIssuer(cfg.Issuer))
	}
	verifier, err := auth.NewJWTVerifier(opts...)
	if err != nil {
		return nil, fmt.Errorf("auth verifier: %w", err)
	}
	return verifier, nil
}
