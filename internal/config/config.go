package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server and the command-line tools read from
// the environment.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	SessionTTL  time.Duration

	CORSAllowedOrigins []string

	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string

	GeminiAPIKey string
	GeminiModel  string

	DraftPurgeSchedule     string
	DraftMaxIdle           time.Duration
	SessionCleanupSchedule string
	Location               *time.Location

	AdminEmail    string
	AdminPassword string
}

const (
	defaultPort                   = "8080"
	defaultSessionTTLHours        = 168
	defaultGeminiModel            = "gemini-2.5-flash"
	defaultDraftPurgeSchedule     = "*/30 * * * *"
	defaultDraftMaxIdleHours      = 12
	defaultSessionCleanupSchedule = "0 3 * * *"
	defaultTimezone               = "America/Sao_Paulo"
)

// Load reads .env (when present) and then the process environment.
// DATABASE_URL is always required; APP_JWT_SECRET is checked by the server.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := &Config{
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		Port:                      getEnv("PORT", defaultPort),
		JWTSecret:                 os.Getenv("APP_JWT_SECRET"),
		SessionTTL:                time.Duration(getInt("SESSION_TTL_HOURS", defaultSessionTTLHours)) * time.Hour,
		CORSAllowedOrigins:        splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		FirebaseCredentialsBase64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		FirebaseCredentialsFile:   getEnv("FIREBASE_CREDENTIALS_FILE", "./firebase-service-account.json"),
		GeminiAPIKey:              os.Getenv("GEMINI_API_KEY"),
		GeminiModel:               getEnv("GEMINI_MODEL", defaultGeminiModel),
		DraftPurgeSchedule:        getEnv("DRAFT_PURGE_SCHEDULE", defaultDraftPurgeSchedule),
		DraftMaxIdle:              time.Duration(getInt("DRAFT_MAX_IDLE_HOURS", defaultDraftMaxIdleHours)) * time.Hour,
		SessionCleanupSchedule:    getEnv("SESSION_CLEANUP_SCHEDULE", defaultSessionCleanupSchedule),
		AdminEmail:                os.Getenv("ADMIN_EMAIL"),
		AdminPassword:             os.Getenv("ADMIN_PASSWORD"),
	}

	tz := getEnv("TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️  Unknown TIMEZONE %q, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}
	cfg.Location = loc

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set (AI summary disabled)")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
