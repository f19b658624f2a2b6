package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Job store backends.
const (
	JobStoreMemory   = "memory"
	JobStorePostgres = "postgres"
	JobStoreRedis    = "redis"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:8080",
	"*",
}

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string        `validate:"required"`
	Port               string        `validate:"required,numeric"`
	LogLevel           string        `validate:"omitempty,oneof=debug info warn error"`
	SunoBaseURL        string        `validate:"required,url"`
	SunoAPIKey         string
	SunoTimeout        time.Duration `validate:"gt=0"`
	PublicBaseURL      string        `validate:"omitempty,url"`
	CORSAllowedOrigins []string
	JobStore           string        `validate:"oneof=memory redis postgres"`
	DatabaseURL        string        `validate:"required_if=JobStore postgres"`
	RedisAddr          string        `validate:"required_if=JobStore redis"`
	RedisPassword      string
	RedisDB            int           `validate:"gte=0"`
	JobTTL             time.Duration `validate:"gte=0"`
	StaticDir          string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

var configValidator = validator.New()

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// A missing SUNO_API_KEY is not an error here; the upstream client reports it per call.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8000"),
		LogLevel:           strings.ToLower(os.Getenv("LOG_LEVEL")),
		SunoBaseURL:        getEnv("SUNO_BASE_URL", "https://api.sunoapi.org"),
		SunoAPIKey:         strings.TrimSpace(os.Getenv("SUNO_API_KEY")),
		SunoTimeout:        time.Second * time.Duration(getEnvInt("SUNO_TIMEOUT_SECONDS", 30)),
		PublicBaseURL:      strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		JobStore:           strings.ToLower(getEnv("JOB_STORE", JobStoreMemory)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		JobTTL:             time.Second * time.Duration(getEnvInt("JOB_TTL_SECONDS", 0)),
		StaticDir:          strings.TrimSpace(os.Getenv("STATIC_DIR")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// PollingMode reports whether no public callback URL is available.
func (c *Config) PollingMode() bool {
	return c.PublicBaseURL == ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
