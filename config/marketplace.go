package config

import (
	"strings"
	"time"
)

// MarketplaceConfig points the console at the marketplace REST backend.
type MarketplaceConfig struct {
	// APIURL is the backend base URL, e.g. "https://api.example.com/api".
	APIURL  string        `env:"API_URL"  envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT"  envDefault:"15s"`

	// ServiceAdminToken authorises admin calls for staff signed in through SSO and for the admin CLI.
	ServiceAdminToken string `env:"SERVICE_ADMIN_TOKEN"`

	UserAgent string `env:"USER_AGENT" envDefault:"marketplace-console"`
}

// Sanitize trims the base URL and enforces a minimum timeout.
func (c *MarketplaceConfig) Sanitize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.ServiceAdminToken = strings.TrimSpace(c.ServiceAdminToken)
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = "marketplace-console"
	}
}

// SearchConfig controls debounced search.
type SearchConfig struct {
	Debounce time.Duration `env:"DEBOUNCE"  envDefault:"500ms"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// Sanitize keeps the debounce window within a usable range.
func (c *SearchConfig) Sanitize() {
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.Debounce > 5*time.Second {
		c.Debounce = 5 * time.Second
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
}

// ExportConfig controls CSV export presets.
type ExportConfig struct {
	// PresetsFile optionally overrides the embedded column presets (YAML).
	PresetsFile string `env:"PRESETS_FILE"`
	// PageSize is the backend page size used while collecting export rows.
	PageSize int `env:"PAGE_SIZE" envDefault:"200"`
}

// Sanitize clamps the export page size.
func (c *ExportConfig) Sanitize() {
	c.PresetsFile = strings.TrimSpace(c.PresetsFile)
	if c.PageSize <= 0 {
		c.PageSize = 200
	}
	if c.PageSize > 1000 {
		c.PageSize = 1000
	}
}
