package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/target/marketplace-console/config"
)

// InitLogger builds the process logger from LOG_LEVEL and LOG_FORMAT, read before the rest of the
// config so configuration errors are logged in the right format.
func InitLogger() *slog.Logger {
	var cfg config.LoggingConfig
	if err := env.Parse(&cfg); err != nil {
		cfg = config.LoggingConfig{Level: "info", Format: "json"}
	}
	cfg.Sanitize()
	logger := NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewLogger returns a JSON logger, or a colourised tint logger for LOG_FORMAT=text.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	level := cfg.SlogLevel()
	if cfg.Format == "text" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// LoadConfig loads configuration from environment variables, reading .env first when present.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateServiceConfig checks the service list and the settings the enabled services need.
func ValidateServiceConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("service config is required")
	}
	services, err := cfg.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("invalid service configuration: %w", err)
	}
	if len(services) == 0 {
		return errors.New("no services enabled")
	}

	if services[config.ServiceModeLedgerJanitor] && !cfg.Postgres.Enabled && !services[config.ServiceModeHTTP] {
		return errors.New("ledger-janitor alone needs DB_ENABLED=true; the in-memory ledger lives in the http process")
	}
	if cfg.Auth.Mode == config.AuthModeMock && !cfg.IsDev {
		return errors.New("AUTH_MODE=mock is only allowed in development (DEV=true)")
	}
	if cfg.Auth.Mode == config.AuthModeOAuth && !cfg.Auth.OAuthReady() {
		return errors.New("AUTH_MODE=oauth requires OAUTH_DISCOVERY_URL, OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET")
	}
	if cfg.Auth.Mode == config.AuthModeOAuth && cfg.Marketplace.ServiceAdminToken == "" {
		return errors.New("AUTH_MODE=oauth requires MARKETPLACE_SERVICE_ADMIN_TOKEN")
	}
	return nil
}

// GetEnabledServices returns the enabled service names in a stable order.
func GetEnabledServices(cfg *config.AppConfig) []string {
	if cfg == nil {
		return []string{}
	}
	services, err := cfg.GetEnabledServices()
	if err != nil {
		// validation reports this
		return []string{}
	}

	enabled := make([]string, 0, len(services))
	for _, mode := range config.ValidServiceModes() {
		if services[mode] {
			enabled = append(enabled, string(mode))
		}
	}
	slices.Sort(enabled)
	return enabled
}
