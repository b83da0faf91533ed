package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:  "http and janitor with spaces",
			input: " http , ledger-janitor ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:          true,
				ServiceModeLedgerJanitor: true,
			},
		},
		{
			name:     "duplicate services",
			input:    "http,http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only commas",
			input:       " , ,",
			expectError: true,
		},
		{
			name:        "unknown service",
			input:       "http,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	cfg := AppConfig{Services: "ledger-janitor"}
	if cfg.IsHTTPServerEnabled() {
		t.Error("IsHTTPServerEnabled(): expected false")
	}
	if !cfg.IsLedgerJanitorEnabled() {
		t.Error("IsLedgerJanitorEnabled(): expected true")
	}

	invalid := AppConfig{Services: "invalid-service"}
	if invalid.IsHTTPServerEnabled() || invalid.IsLedgerJanitorEnabled() {
		t.Error("expected all services disabled for invalid configuration")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "OAuth")
	t.Setenv("AUTH_ADMIN_GROUP", "cn=ops,ou=groups,dc=example,dc=org")
	t.Setenv("OAUTH_CLIENT_ID", "console")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("DEV_AUTH_GROUPS", "admins;devs")
	t.Setenv("MARKETPLACE_API_URL", "https://api.example.com/api/ ")
	t.Setenv("MARKETPLACE_TIMEOUT", "3s")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")
	t.Setenv("DB_ENABLED", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeOAuth {
		t.Fatalf("expected oauth mode, got %q", cfg.Auth.Mode)
	}
	if !cfg.Auth.OAuthReady() {
		t.Fatal("expected oauth config to be complete")
	}
	if !reflect.DeepEqual(cfg.Auth.DevAuth.Groups, []string{"admins", "devs"}) {
		t.Fatalf("unexpected dev groups: %v", cfg.Auth.DevAuth.Groups)
	}
	if cfg.Marketplace.APIURL != "https://api.example.com/api" {
		t.Fatalf("expected trimmed api url, got %q", cfg.Marketplace.APIURL)
	}
	if cfg.Marketplace.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Marketplace.Timeout)
	}
	if cfg.Search.Debounce != 250*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.Search.Debounce)
	}
	if !cfg.Postgres.Enabled {
		t.Fatal("expected postgres ledger enabled")
	}
}

func TestAuthMode_UnmarshalTextRejectsUnknown(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte("saml")); err == nil {
		t.Fatal("expected error for unknown auth mode")
	}
}

func TestHTTPConfig_SanitizeCookieDomain(t *testing.T) {
	tests := map[string]string{
		"":                      "",
		"localhost":             "localhost",
		" .Console.Example.com": "console.example.com",
		"co.uk":                 "",
		"com":                   "",
	}

	for input, want := range tests {
		cfg := HTTPConfig{CookieDomain: input, CompressionLevel: 42}
		cfg.Sanitize()
		if cfg.CookieDomain != want {
			t.Errorf("cookie domain %q: expected %q, got %q", input, want, cfg.CookieDomain)
		}
		if cfg.CompressionLevel != 9 {
			t.Errorf("expected compression level clamped to 9, got %d", cfg.CompressionLevel)
		}
	}
}

func TestSearchConfig_Sanitize(t *testing.T) {
	cfg := SearchConfig{Debounce: 0, CacheTTL: -time.Second}
	cfg.Sanitize()
	if cfg.Debounce != 500*time.Millisecond {
		t.Fatalf("expected default debounce, got %v", cfg.Debounce)
	}
	if cfg.CacheTTL != 0 {
		t.Fatalf("expected cache ttl clamped to zero, got %v", cfg.CacheTTL)
	}

	cfg = SearchConfig{Debounce: time.Minute}
	cfg.Sanitize()
	if cfg.Debounce != 5*time.Second {
		t.Fatalf("expected debounce capped, got %v", cfg.Debounce)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " "}
	cfg.Sanitize()
	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " statsd:1234 "}
	cfg.Sanitize()
	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled: true,
		Slack:   SlackNotificationConfig{Enabled: true, WebhookURL: " "},
	}
	cfg.Sanitize()
	if cfg.Timeout <= 0 {
		t.Fatalf("expected timeout to fall back to default, got %v", cfg.Timeout)
	}
	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled without a webhook url")
	}
	if cfg.Slack.Username != "marketplace-console" {
		t.Fatalf("expected default username, got %q", cfg.Slack.Username)
	}

	cfg = ObservabilityNotificationsConfig{
		Enabled: false,
		Slack:   SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.com/services/test"},
	}
	cfg.Sanitize()
	if cfg.Slack.Enabled {
		t.Fatal("expected disabled notifications to disable slack")
	}
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	cfg := LoggingConfig{Level: " DEBUG ", Format: "yaml"}
	cfg.Sanitize()
	if cfg.SlogLevel().String() != "DEBUG" {
		t.Fatalf("expected debug level, got %s", cfg.SlogLevel())
	}
	if cfg.Format != "json" {
		t.Fatalf("expected unknown format to fall back to json, got %q", cfg.Format)
	}
}
