package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/marketplace"
)

type stubCredentialsBackend struct{}

func (stubCredentialsBackend) Login(context.Context, string, string) (*marketplace.AuthResult, error) {
	return nil, nil //nolint:nilnil // never called
}

func (stubCredentialsBackend) AdminLogin(context.Context, string, string) (*marketplace.AdminAuthResult, error) {
	return nil, nil //nolint:nilnil // never called
}

func (stubCredentialsBackend) Logout(context.Context) error { return nil }

func unconnectedRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	// Nothing dials until a command runs.
	c := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBuildAuthService_RequiresRedis(t *testing.T) {
	_, err := BuildAuthService(AuthConfig{
		Auth:    config.AuthConfig{Mode: config.AuthModeBackend},
		Backend: stubCredentialsBackend{},
	})
	require.Error(t, err)
}

func TestBuildAuthService_Modes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		cfg          AuthConfig
		wantErr      string
		wantPassword bool
		wantSSO      bool
	}{
		{
			name: "backend password sign-in",
			cfg: AuthConfig{
				Auth:    config.AuthConfig{Mode: config.AuthModeBackend},
				Backend: stubCredentialsBackend{},
			},
			wantPassword: true,
		},
		{
			name:    "backend without client",
			cfg:     AuthConfig{Auth: config.AuthConfig{Mode: config.AuthModeBackend}},
			wantErr: "marketplace client",
		},
		{
			name: "mock in development",
			cfg: AuthConfig{
				Auth: config.AuthConfig{
					Mode:       config.AuthModeMock,
					AdminGroup: "admins",
					DevAuth: config.DevAuthConfig{
						UserID: "dev",
						Email:  "dev@example.com",
						Groups: []string{"admins"},
					},
				},
				IsDev:             true,
				ServiceAdminToken: "svc-token",
			},
			wantSSO: true,
		},
		{
			name: "mock outside development",
			cfg: AuthConfig{
				Auth: config.AuthConfig{
					Mode:    config.AuthModeMock,
					DevAuth: config.DevAuthConfig{UserID: "dev", Email: "dev@example.com"},
				},
			},
			wantErr: "only available in development",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.RedisClient = unconnectedRedis(t)
			cfg.Logger = logger

			svc, err := BuildAuthService(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPassword, svc.PasswordEnabled())
			assert.Equal(t, tt.wantSSO, svc.SSOEnabled())
		})
	}
}
