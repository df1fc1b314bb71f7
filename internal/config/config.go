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
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret       string
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Origins allowed to make cookie-authenticated state changes
	AllowedOrigins []string

	// Infrastructure
	DBAddr        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Password reset flow (link sent via email-service)
	PasswordResetBaseURL  string
	PasswordResetTokenTTL time.Duration

	// Signup wizard drafts
	SignupSessionTTL time.Duration

	BcryptCost int
}

// envReader accumulates the first parse failure so Load can assemble the
// whole struct in one pass and report a single error.
type envReader struct {
	err error
}

func (e *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) required(key string) string {
	v := os.Getenv(key)
	if v == "" && e.err == nil {
		e.err = fmt.Errorf("missing required env var: %s", key)
	}
	return v
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
		}
		return 0
	}
	return d
}

func (e *envReader) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
		}
		return 0
	}
	return n
}

func (e *envReader) csv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads the environment into a Config. A .env file is honored for
// local development; missing file is fine. The database, JWT secret and
// reset-link base are hard requirements; redis and rabbit are optional
// because the service degrades to in-process fallbacks without them.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var e envReader
	cfg := &Config{
		Env:      e.str("ENV", "dev"),
		HTTPAddr: e.str("HTTP_ADDR", ":8080"),

		JWTSecret:       e.required("JWT_SECRET"),
		JWTIssuer:       e.str("JWT_ISSUER", "account-service"),
		AccessTokenTTL:  e.duration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: e.duration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		AllowedOrigins: e.csv("ALLOWED_ORIGINS"),

		DBAddr:        e.required("DB_ADDR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       e.integer("REDIS_DB", 0),
		RabbitURL:     os.Getenv("RABBIT_URL"),

		HTTPReadTimeout:  e.duration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: e.duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:  e.duration("HTTP_IDLE_TIMEOUT", time.Minute),

		PasswordResetBaseURL:  e.required("PASSWORD_RESET_BASE_URL"),
		PasswordResetTokenTTL: e.duration("PASSWORD_RESET_TOKEN_TTL", 30*time.Minute),

		SignupSessionTTL: e.duration("SIGNUP_SESSION_TTL", 24*time.Hour),

		BcryptCost: e.integer("BCRYPT_COST", 0), // 0 => library default
	}
	if e.err != nil {
		return nil, e.err
	}

	// The service appends the raw token to the reset link.
	if !strings.Contains(cfg.PasswordResetBaseURL, "token=") {
		return nil, fmt.Errorf("PASSWORD_RESET_BASE_URL must contain `token=`")
	}

	return cfg, nil
}
