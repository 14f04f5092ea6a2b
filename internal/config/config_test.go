package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":5000")
	}
	if cfg.APIPrefix != "/api" {
		t.Errorf("APIPrefix = %q, want %q", cfg.APIPrefix, "/api")
	}
	if cfg.JWTTTL != "168h" {
		t.Errorf("JWTTTL = %q, want %q", cfg.JWTTTL, "168h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.RegistrationEnabled {
		t.Error("RegistrationEnabled should default to true")
	}
	if cfg.ResendBaseURL != "https://api.resend.com" {
		t.Errorf("ResendBaseURL = %q, want default", cfg.ResendBaseURL)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q, want default", cfg.OpenAIModel)
	}
	if cfg.JWTSecret != "" {
		t.Error("JWTSecret must never be defaulted")
	}
	if cfg.IsProduction() {
		t.Error("IsProduction should be false by default")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("API_PREFIX", "v1/")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("JWT_SECRET", "dev-secret")
	os.Setenv("REGISTRATION_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.APIPrefix != "/v1" {
		t.Errorf("APIPrefix = %q, want %q", cfg.APIPrefix, "/v1")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.JWTSecret != "dev-secret" {
		t.Errorf("JWTSecret = %q, want dev-secret", cfg.JWTSecret)
	}
	if cfg.RegistrationEnabled {
		t.Error("RegistrationEnabled should be false")
	}
}

func TestLoad_RootPrefix(t *testing.T) {
	os.Clearenv()
	os.Setenv("API_PREFIX", "/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIPrefix != "" {
		t.Errorf("APIPrefix = %q, want empty", cfg.APIPrefix)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	for _, cost := range []string{"3", "32"} {
		os.Clearenv()
		os.Setenv("BCRYPT_COST", cost)
		if _, err := Load(); err == nil {
			t.Errorf("BCRYPT_COST=%s: want error", cost)
		}
	}
}

func TestLoad_ProductionRejectsWeakSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "production")
	os.Setenv("JWT_SECRET", "short")
	if _, err := Load(); err == nil {
		t.Fatal("want error for short production secret")
	}

	os.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
}

func TestConfig_RequireJWTSecret(t *testing.T) {
	if err := (&Config{}).RequireJWTSecret(); err == nil {
		t.Error("empty secret: want error")
	}
	if err := (&Config{JWTSecret: "   "}).RequireJWTSecret(); err == nil {
		t.Error("blank secret: want error")
	}
	if err := (&Config{JWTSecret: "s"}).RequireJWTSecret(); err != nil {
		t.Errorf("set secret: %v", err)
	}
}

func TestConfig_TokenTTL(t *testing.T) {
	if got := (&Config{JWTTTL: "1h"}).TokenTTL(); got != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", got)
	}
	for _, v := range []string{"", "bogus", "-5m"} {
		if got := (&Config{JWTTTL: v}).TokenTTL(); got != 168*time.Hour {
			t.Errorf("TokenTTL(%q) = %v, want 168h", v, got)
		}
	}
}

func TestConfig_ReadCacheTTL(t *testing.T) {
	if got := (&Config{CacheTTL: "0"}).ReadCacheTTL(); got != 0 {
		t.Errorf("ReadCacheTTL(0) = %v, want 0", got)
	}
	if got := (&Config{CacheTTL: "30s"}).ReadCacheTTL(); got != 30*time.Second {
		t.Errorf("ReadCacheTTL(30s) = %v", got)
	}
	if got := (&Config{CacheTTL: "nope"}).ReadCacheTTL(); got != 10*time.Minute {
		t.Errorf("ReadCacheTTL(nope) = %v, want 10m", got)
	}
}

func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,https://b.test"}
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "https://b.test" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	var nilCfg *Config
	if nilCfg.AllowedOrigins() != nil {
		t.Error("nil config should return nil origins")
	}
}
