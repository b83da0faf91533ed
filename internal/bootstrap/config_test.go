package bootstrap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/marketplace-console/config"
)

func TestNewLogger_Formats(t *testing.T) {
	var jsonBuf bytes.Buffer
	NewLogger(&jsonBuf, config.LoggingConfig{Level: "info", Format: "json"}).Info("hello", "k", "v")
	assert.Contains(t, jsonBuf.String(), `"msg":"hello"`)

	var textBuf bytes.Buffer
	l := NewLogger(&textBuf, config.LoggingConfig{Level: "warn", Format: "text"})
	l.Info("dropped")
	l.Warn("kept")
	assert.NotContains(t, textBuf.String(), "dropped")
	assert.Contains(t, textBuf.String(), "kept")
}

func TestValidateServiceConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.AppConfig)
		wantErr string
	}{
		{name: "http with backend auth", mutate: func(*config.AppConfig) {}},
		{
			name:    "unknown service",
			mutate:  func(c *config.AppConfig) { c.Services = "http,scheduler" },
			wantErr: "invalid service configuration",
		},
		{
			name:    "janitor alone without postgres",
			mutate:  func(c *config.AppConfig) { c.Services = "ledger-janitor" },
			wantErr: "DB_ENABLED",
		},
		{
			name: "janitor alone with postgres",
			mutate: func(c *config.AppConfig) {
				c.Services = "ledger-janitor"
				c.Postgres.Enabled = true
			},
		},
		{
			name:    "mock auth in production",
			mutate:  func(c *config.AppConfig) { c.Auth.Mode = config.AuthModeMock },
			wantErr: "AUTH_MODE=mock",
		},
		{
			name: "oauth without service token",
			mutate: func(c *config.AppConfig) {
				c.Auth.Mode = config.AuthModeOAuth
				c.Auth.OAuth = config.OAuthConfig{DiscoveryURL: "https://idp.test", ClientID: "id", ClientSecret: "s"}
			},
			wantErr: "SERVICE_ADMIN_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{Services: "http", Auth: config.AuthConfig{Mode: config.AuthModeBackend}}
			tt.mutate(cfg)
			err := ValidateServiceConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnabledServices(t *testing.T) {
	cfg := &config.AppConfig{Services: "ledger-janitor, http"}
	assert.Equal(t, []string{"http", "ledger-janitor"}, GetEnabledServices(cfg))
	assert.Empty(t, GetEnabledServices(&config.AppConfig{Services: "bogus"}))
	assert.Empty(t, GetEnabledServices(nil))
}
