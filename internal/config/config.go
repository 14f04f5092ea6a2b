// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvProduction is the APP_ENV value that enables production-only behavior
// (secure cookies, secret strength check).
const EnvProduction = "production"

// minProductionSecretLen is the minimum JWT_SECRET length accepted in production.
const minProductionSecretLen = 32

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :5000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// APIPrefix is the path every API route is mounted under (e.g. /api).
	APIPrefix string `mapstructure:"API_PREFIX"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the HS256 signing secret for session tokens. The server refuses to start without it.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTTL is the session token lifetime (e.g. "168h").
	JWTTTL string `mapstructure:"JWT_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// CORSAllowedOrigins is a comma-separated list of origins allowed to call the API from a browser.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// RegistrationEnabled exposes POST /auth/register. Disable once the admin account exists.
	RegistrationEnabled bool `mapstructure:"REGISTRATION_ENABLED"`
	// CacheTTL is how long post and project reads stay cached (e.g. "10m"); "0" disables the cache.
	CacheTTL string `mapstructure:"CACHE_TTL"`

	// ResendAPIKey enables contact form email delivery via Resend.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	// ResendBaseURL is the Resend API base URL.
	ResendBaseURL string `mapstructure:"RESEND_BASE_URL"`
	// ContactFrom is the sender address of contact notifications.
	ContactFrom string `mapstructure:"CONTACT_FROM"`
	// ContactTo is the inbox that receives contact notifications.
	ContactTo string `mapstructure:"CONTACT_TO"`

	// OpenAIAPIKey enables live chat replies; empty runs the chat in demo mode.
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	// OpenAIBaseURL is the chat completions API base URL.
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	// OpenAIModel is the chat completions model name.
	OpenAIModel string `mapstructure:"OPENAI_MODEL"`

	// OTLPEndpoint is the OpenTelemetry collector endpoint; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext connection to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// ServiceName is the OpenTelemetry service.name resource attribute.
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
// JWT_SECRET is not required here so that tooling (migrate) can run without it; see RequireJWTSecret.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("REGISTRATION_ENABLED", true)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("CONTACT_FROM", "onboarding@resend.dev")
	v.SetDefault("CONTACT_TO", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "portfolio-api")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	cfg.APIPrefix = "/" + strings.Trim(strings.TrimSpace(cfg.APIPrefix), "/")
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.IsProduction() && cfg.JWTSecret != "" && len(cfg.JWTSecret) < minProductionSecretLen {
		return nil, errors.New("config: JWT_SECRET must be at least 32 bytes when APP_ENV=production")
	}

	return &cfg, nil
}

// RequireJWTSecret returns an error when no signing secret is configured.
// The server calls it before mounting authenticated routes.
func (c *Config) RequireJWTSecret() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), EnvProduction)
}

// TokenTTL parses JWTTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// ReadCacheTTL parses CacheTTL. Returns 0 (cache disabled) when set to "0",
// and 10m when unset or invalid.
func (c *Config) ReadCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 10 * time.Minute
	}
	return d
}

// AllowedOrigins returns the CORS origins from the comma-separated config.
func (c *Config) AllowedOrigins() []string {
	if c == nil || c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
