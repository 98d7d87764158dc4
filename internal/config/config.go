package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv string

	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	AdminAddr        string
	EnableTracing    bool
	OTLPEndpoint     string
	SamplingRatio    float64

	CurrencySymbol string
	AdminEmail     string
	AdminNickname  string
	AdminPassword  string
	PasswordHasher string

	PaymentBreaker BreakerConfig
}

// BreakerConfig tunes the circuit breaker in front of payment settlement.
type BreakerConfig struct {
	MinRequests  int
	FailureRatio float64
	OpenFor      time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "console"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "warn"),
		MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "toko_console"),
		AdminAddr:        strings.TrimSpace(k.String("OBS_ADMIN_ADDR")),
		EnableTracing:    parseBool(k.String("OBS_ENABLE_TRACING")),
		OTLPEndpoint:     strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		SamplingRatio:    parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),

		CurrencySymbol: valueOrDefault(k.String("SHOP_CURRENCY_SYMBOL"), "€"),
		AdminEmail:     valueOrDefault(k.String("SHOP_ADMIN_EMAIL"), "admin@shop.com"),
		AdminNickname:  valueOrDefault(k.String("SHOP_ADMIN_NICKNAME"), "admin"),
		AdminPassword:  valueOrDefault(k.String("SHOP_ADMIN_PASSWORD"), "admin123"),
		PasswordHasher: strings.ToLower(valueOrDefault(strings.TrimSpace(k.String("SHOP_PASSWORD_HASHER")), "plain")),

		PaymentBreaker: BreakerConfig{
			MinRequests:  parseInt(k.String("SHOP_PAYMENT_BREAKER_MIN_REQUESTS"), 5),
			FailureRatio: parseFloat(k.String("SHOP_PAYMENT_BREAKER_FAILURE_RATIO"), 0.5),
			OpenFor:      parseDuration(k.String("SHOP_PAYMENT_BREAKER_OPEN_FOR"), "30s"),
		},
	}

	switch cfg.PasswordHasher {
	case "plain", "argon2id":
	default:
		return nil, fmt.Errorf("SHOP_PASSWORD_HASHER must be plain or argon2id, got %q", cfg.PasswordHasher)
	}
	if cfg.SamplingRatio <= 0 || cfg.SamplingRatio > 1 {
		cfg.SamplingRatio = 1.0
	}
	if cfg.PaymentBreaker.FailureRatio <= 0 || cfg.PaymentBreaker.FailureRatio > 1 {
		return nil, fmt.Errorf("SHOP_PAYMENT_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", cfg.PaymentBreaker.FailureRatio)
	}
	if cfg.PaymentBreaker.MinRequests < 1 {
		cfg.PaymentBreaker.MinRequests = 1
	}

	return cfg, nil
}

// AdminEnabled reports whether the admin HTTP listener should start.
func (c *Config) AdminEnabled() bool {
	return c.AdminAddr != ""
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
