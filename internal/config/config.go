package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL       string // pooled DSN (PgBouncer in production)
	DirectDatabaseURL string // non-pooled DSN, used for migrations
	DBPoolMax         int
	DBPoolMin         int
	DBConnTimeout     time.Duration
	DBIdleTimeout     time.Duration

	// Sessions (identity provider session JWTs)
	SessionJWTSecret string

	// Identity provider webhooks
	ClerkWebhookSecret string

	// AI providers
	GLMAPIKey      string
	GLMAPIURL      string
	GLMModel       string
	DeepSeekAPIKey string
	DeepSeekAPIURL string
	DeepSeekModel  string
	AITimeout      time.Duration

	// Optional integrations
	RedisURL              string
	SentryDSN             string
	StripeSecretKey       string
	StripeWebhookSecret   string
	PostHogKey            string
	PostHogHost           string
	TikTokClientKey       string
	TikTokClientSecret    string
	InstagramClientID     string
	InstagramClientSecret string
	YouTubeAPIKey         string
	PineconeAPIKey        string
	PineconeIndexName     string
	ResendAPIKey          string

	// Admin
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
}

func Load() *Config {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DirectDatabaseURL: getEnv("DIRECT_DATABASE_URL", ""),
		DBPoolMax:         getEnvInt("DB_POOL_MAX", 20),
		DBPoolMin:         getEnvInt("DB_POOL_MIN", 2),
		DBConnTimeout:     parseDuration(getEnv("DB_CONN_TIMEOUT", "10s")),
		DBIdleTimeout:     parseDuration(getEnv("DB_IDLE_TIMEOUT", "30s")),

		SessionJWTSecret:   getEnv("SESSION_JWT_SECRET", ""),
		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),

		GLMAPIKey:      getEnv("GLM_API_KEY", ""),
		GLMAPIURL:      getEnv("GLM_API_URL", "https://api.z.ai/api/paas/v4/chat/completions"),
		GLMModel:       getEnv("GLM_MODEL", "glm-5"),
		DeepSeekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
		DeepSeekAPIURL: getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		DeepSeekModel:  getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		AITimeout:      parseDuration(getEnv("AI_TIMEOUT", "60s")),

		RedisURL:              getEnv("REDIS_URL", ""),
		SentryDSN:             getEnv("SENTRY_DSN", ""),
		StripeSecretKey:       getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:   getEnv("STRIPE_WEBHOOK_SECRET", ""),
		PostHogKey:            getEnv("POSTHOG_KEY", ""),
		PostHogHost:           getEnv("POSTHOG_HOST", ""),
		TikTokClientKey:       getEnv("TIKTOK_CLIENT_KEY", ""),
		TikTokClientSecret:    getEnv("TIKTOK_CLIENT_SECRET", ""),
		InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		YouTubeAPIKey:         getEnv("YOUTUBE_API_KEY", ""),
		PineconeAPIKey:        getEnv("PINECONE_API_KEY", ""),
		PineconeIndexName:     getEnv("PINECONE_INDEX_NAME", ""),
		ResendAPIKey:          getEnv("RESEND_API_KEY", ""),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
	}
}

// Validate reports every missing required value at once so a bad deployment
// fails with the full list instead of one key per restart.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.DirectDatabaseURL == "" {
		missing = append(missing, "DIRECT_DATABASE_URL")
	}
	if c.SessionJWTSecret == "" {
		missing = append(missing, "SESSION_JWT_SECRET")
	}
	if c.GLMAPIKey == "" {
		missing = append(missing, "GLM_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
