package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"minerals/backend/internal/urlutil"
)

type Config struct {
	Addr      string
	DataDir   string
	DBPath    string
	StaticDir string
	LogLevel  string
	LogJSON   bool
	NodeID    int64

	// TrustProxy makes the client IP come from X-Forwarded-For.
	TrustProxy bool
	AppOrigin  string

	Auth      AuthConfig
	RateLimit RateLimitConfig
	Stripe    StripeConfig
}

type AuthConfig struct {
	JWTSecret     string
	PublicKeyPath string
	Issuer        string
	CookieName    string
}

type RateLimitConfig struct {
	// Backend is "memory" or "redis".
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	ProPriceID    string
	// CallsPerSecond throttles outbound API calls.
	CallsPerSecond float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("MINERALS_DATA_DIR", "data")
	dbPath := os.Getenv("MINERALS_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "minerals.db")
	}
	staticDir := os.Getenv("MINERALS_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}

	return Config{
		Addr:       getEnv("MINERALS_ADDR", ":8080"),
		DataDir:    filepath.Clean(dataDir),
		DBPath:     filepath.Clean(dbPath),
		StaticDir:  filepath.Clean(staticDir),
		LogLevel:   strings.ToLower(getEnv("MINERALS_LOG_LEVEL", "info")),
		LogJSON:    getBool("MINERALS_LOG_JSON", false),
		NodeID:     int64(getInt("MINERALS_NODE_ID", 0)),
		TrustProxy: getBool("MINERALS_TRUST_PROXY", false),
		AppOrigin:  appOrigin(getEnv("MINERALS_APP_ORIGIN", defaultAppOrigin)),
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("MINERALS_AUTH_JWT_SECRET"),
			PublicKeyPath: os.Getenv("MINERALS_AUTH_PUBLIC_KEY_PATH"),
			Issuer:        os.Getenv("MINERALS_AUTH_ISSUER"),
			CookieName:    getEnv("MINERALS_AUTH_COOKIE", "__session"),
		},
		RateLimit: RateLimitConfig{
			Backend:       strings.ToLower(getEnv("MINERALS_RATE_LIMIT_BACKEND", "memory")),
			RedisAddr:     getEnv("MINERALS_REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("MINERALS_REDIS_PASSWORD"),
			RedisDB:       getInt("MINERALS_REDIS_DB", 0),
		},
		Stripe: StripeConfig{
			SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
			ProPriceID:     os.Getenv("STRIPE_PRO_PRICE_ID"),
			CallsPerSecond: getFloat("MINERALS_STRIPE_RPS", 20),
		},
	}
}

const defaultAppOrigin = "http://localhost:3000"

// appOrigin keeps only scheme and host; a malformed value falls back to the default.
func appOrigin(raw string) string {
	origin, err := urlutil.Origin(raw)
	if err != nil {
		return defaultAppOrigin
	}
	return origin
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
