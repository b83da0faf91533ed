package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the console HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeLedgerJanitor periodically purges old workflow action ledger entries.
	ServiceModeLedgerJanitor ServiceMode = "ledger-janitor"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeLedgerJanitor}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if strings.TrimSpace(servicesStr) == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		mode := ServiceMode(name)
		switch mode {
		case ServiceModeHTTP, ServiceModeLedgerJanitor:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, ledger-janitor)", name)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// JanitorConfig controls the ledger janitor loop.
type JanitorConfig struct {
	Interval  time.Duration `env:"INTERVAL"  envDefault:"1h"`
	Retention time.Duration `env:"RETENTION" envDefault:"720h"`
}

// Sanitize clamps janitor timings to sane minimums.
func (c *JanitorConfig) Sanitize() {
	if c.Interval < time.Minute {
		c.Interval = time.Minute
	}
	if c.Retention < time.Hour {
		c.Retention = time.Hour
	}
}
