package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultPort      = "52502"
	DefaultMaxDays   = 30
	DefaultRateBurst = 5
)

type Config struct {
	Port               string
	Completion         CompletionConfig
	MaxDays            int
	StrictSchema       bool
	FrontendURL        string
	CORSAllowedOrigins []string
	RateLimit          RateLimitConfig
	Database           DatabaseConfig
	LogLevel           string
}

type CompletionConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Enabled is false when RPS is zero.
func (r RateLimitConfig) Enabled() bool { return r.RPS > 0 }

type DatabaseConfig struct {
	Driver string
	DSN    string
}

// Error is a startup configuration problem with a single key.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored; values already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment and validates it. The
// returned error is always a *Error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", DefaultPort),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Completion, err = loadCompletion(); err != nil {
		return nil, err
	}
	if cfg.MaxDays, err = intEnv("MAX_DAYS", DefaultMaxDays); err != nil {
		return nil, err
	}
	if cfg.MaxDays < 1 {
		return nil, &Error{Key: "MAX_DAYS", Reason: "must be at least 1"}
	}
	if cfg.StrictSchema, err = boolEnv("ITINERARY_STRICT_SCHEMA", false); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"))

	if cfg.RateLimit.RPS, err = floatEnv("RATE_LIMIT_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RPS < 0 {
		return nil, &Error{Key: "RATE_LIMIT_RPS", Reason: "must not be negative"}
	}
	if cfg.RateLimit.Burst, err = intEnv("RATE_LIMIT_BURST", DefaultRateBurst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Enabled() && cfg.RateLimit.Burst < 1 {
		return nil, &Error{Key: "RATE_LIMIT_BURST", Reason: "must be at least 1 when rate limiting is enabled"}
	}

	if cfg.Database, err = loadDatabase(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadCompletion() (CompletionConfig, error) {
	cc := CompletionConfig{
		Provider: strings.ToLower(getEnvWithDefault("COMPLETION_PROVIDER", "openai")),
	}

	switch cc.Provider {
	case "openai":
		cc.APIKey = os.Getenv("OPENAI_API_KEY")
		cc.Model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		cc.BaseURL = os.Getenv("OPENAI_BASE_URL")
		if cc.APIKey == "" {
			return cc, &Error{Key: "OPENAI_API_KEY", Reason: "is required when using the openai provider"}
		}
	case "gemini":
		cc.APIKey = os.Getenv("GEMINI_API_KEY")
		cc.Model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if cc.APIKey == "" {
			return cc, &Error{Key: "GEMINI_API_KEY", Reason: "is required when using the gemini provider"}
		}
	default:
		return cc, &Error{Key: "COMPLETION_PROVIDER", Reason: fmt.Sprintf("unsupported provider %q, use openai or gemini", cc.Provider)}
	}

	timeout, err := durationEnv("COMPLETION_TIMEOUT", 0)
	if err != nil {
		return cc, err
	}
	if timeout < 0 {
		return cc, &Error{Key: "COMPLETION_TIMEOUT", Reason: "must not be negative"}
	}
	cc.Timeout = timeout
	return cc, nil
}

func loadDatabase() (DatabaseConfig, error) {
	db := DatabaseConfig{
		Driver: strings.ToLower(os.Getenv("DB_DRIVER")),
		DSN:    os.Getenv("DB_DSN"),
	}
	if db.DSN == "" {
		db.DSN = os.Getenv("POSTGRES_URL")
	}

	switch db.Driver {
	case "":
		return db, nil
	case DriverPostgres, DriverSQLite:
		if db.DSN == "" {
			return db, &Error{Key: "DB_DSN", Reason: "is required when DB_DRIVER is set"}
		}
		return db, nil
	default:
		return db, &Error{Key: "DB_DRIVER", Reason: fmt.Sprintf("unsupported driver %q, use postgres or sqlite", db.Driver)}
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &Error{Key: key, Reason: fmt.Sprintf("%q is not an integer", v)}
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &Error{Key: key, Reason: fmt.Sprintf("%q is not a number", v)}
	}
	return f, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &Error{Key: key, Reason: fmt.Sprintf("%q is not a boolean", v)}
	}
	return b, nil
}

// durationEnv accepts Go durations ("45s") or a bare number of seconds.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, &Error{Key: key, Reason: fmt.Sprintf("%q is not a duration", v)}
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
