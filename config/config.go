package config

import (
	"os"
	"strings"
)

// AppConfig is everything the console and admin CLI read from the environment (caarlos0/env).
// Each concern keeps its struct and defaults in its own file.
type AppConfig struct {
	// IsDev enables mock auth, live template reloading and error detail. APP_ENV=development also sets it.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Marketplace MarketplaceConfig `envPrefix:"MARKETPLACE_"`
	Search      SearchConfig      `envPrefix:"SEARCH_"`
	Export      ExportConfig      `envPrefix:"EXPORT_"`

	// Services lists the processes to run, e.g. "http,ledger-janitor".
	Services string `env:"SERVICES" envDefault:"http"`

	Janitor JanitorConfig `envPrefix:"LEDGER_JANITOR_"`

	Observability ObservabilityConfig
}

// Sanitize clamps loaded values. Call it after env.Parse.
func (c *AppConfig) Sanitize() {
	for _, part := range []interface{ Sanitize() }{
		&c.HTTP, &c.Postgres, &c.Redis, &c.Marketplace, &c.Search, &c.Export, &c.Janitor, &c.Observability,
	} {
		part.Sanitize()
	}
	if !c.IsDev {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
		case "development", "dev":
			c.IsDev = true
		}
	}
}

// GetEnabledServices parses Services.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

func (c *AppConfig) serviceEnabled(mode ServiceMode) bool {
	services, err := c.GetEnabledServices()
	return err == nil && services[mode]
}

// IsHTTPServerEnabled reports whether the console web server runs.
func (c *AppConfig) IsHTTPServerEnabled() bool { return c.serviceEnabled(ServiceModeHTTP) }

// IsLedgerJanitorEnabled reports whether the ledger janitor runs.
func (c *AppConfig) IsLedgerJanitorEnabled() bool { return c.serviceEnabled(ServiceModeLedgerJanitor) }
