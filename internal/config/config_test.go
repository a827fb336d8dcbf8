package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"minerals/backend/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("MINERALS_ADDR", ":9999")
	t.Setenv("MINERALS_DATA_DIR", "/tmp/minerals")
	t.Setenv("MINERALS_DB_PATH", "")
	t.Setenv("MINERALS_LOG_LEVEL", "DEBUG")
	t.Setenv("MINERALS_TRUST_PROXY", "true")
	t.Setenv("MINERALS_APP_ORIGIN", "https://app.example.com/")
	t.Setenv("MINERALS_RATE_LIMIT_BACKEND", "Redis")
	t.Setenv("MINERALS_REDIS_DB", "2")
	t.Setenv("STRIPE_PRO_PRICE_ID", "price_123")
	t.Setenv("MINERALS_STRIPE_RPS", "-1")

	cfg := config.Load()
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "/tmp/minerals", cfg.DataDir)
	require.Equal(t, filepath.Join("/tmp/minerals", "minerals.db"), cfg.DBPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.TrustProxy)
	require.Equal(t, "https://app.example.com", cfg.AppOrigin)
	require.Equal(t, "redis", cfg.RateLimit.Backend)
	require.Equal(t, 2, cfg.RateLimit.RedisDB)
	require.Equal(t, "price_123", cfg.Stripe.ProPriceID)
	require.Equal(t, 20.0, cfg.Stripe.CallsPerSecond)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MINERALS_ADDR", "MINERALS_DATA_DIR", "MINERALS_DB_PATH", "MINERALS_LOG_LEVEL",
		"MINERALS_RATE_LIMIT_BACKEND", "MINERALS_AUTH_COOKIE", "MINERALS_TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "data", cfg.DataDir)
	require.Contains(t, cfg.DBPath, "minerals.db")
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "memory", cfg.RateLimit.Backend)
	require.Equal(t, "__session", cfg.Auth.CookieName)
	require.False(t, cfg.TrustProxy)
}

func TestLoad_ExplicitDBPath(t *testing.T) {
	t.Setenv("MINERALS_DB_PATH", "/var/lib/minerals/app.db")
	cfg := config.Load()
	require.Equal(t, "/var/lib/minerals/app.db", cfg.DBPath)
}

func TestLoad_AppOrigin(t *testing.T) {
	t.Setenv("MINERALS_APP_ORIGIN", "https://App.Example.com/app/dashboard")
	require.Equal(t, "https://app.example.com", config.Load().AppOrigin)

	t.Setenv("MINERALS_APP_ORIGIN", "not a url")
	require.Equal(t, "http://localhost:3000", config.Load().AppOrigin)
}
