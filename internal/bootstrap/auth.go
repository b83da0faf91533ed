package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/config"
	"github.com/target/marketplace-console/internal/adapters/authroles"
	"github.com/target/marketplace-console/internal/adapters/backendauth"
	"github.com/target/marketplace-console/internal/adapters/devauth"
	"github.com/target/marketplace-console/internal/adapters/oidc"
	redisadapter "github.com/target/marketplace-console/internal/adapters/redis"
	"github.com/target/marketplace-console/internal/data/cryptoutil"
	"github.com/target/marketplace-console/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth              config.AuthConfig
	ServiceAdminToken string
	IsDev             bool
	RedisClient       redis.UniversalClient
	// Backend signs users in with marketplace credentials; required in backend mode.
	Backend backendauth.Backend
	Sealer  cryptoutil.Sealer
	Logger  *slog.Logger
}

// BuildAuthService wires sign-in for the configured mode:
//   - backend: marketplace email and password, plus staff SSO when OAuth is configured
//   - oauth: staff SSO only
//   - mock: a fixed development identity
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth requires a redis client for sessions")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sealer := cfg.Sealer
	if sealer == nil {
		sealer = cryptoutil.Plain{}
	}

	opts := service.AuthServiceOptions{
		Sessions: redisadapter.NewSessionStore(cfg.RedisClient,
			redisadapter.WithSessionPrefix("session:"),
			redisadapter.WithSessionSealer(sealer),
		),
	}
	roles := authroles.StaticRoleMapper{AdminGroup: cfg.Auth.AdminGroup}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, errors.New("mock auth is only available in development")
		}
		prov, err := devauth.NewProvider(devauth.Config{
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
			Groups: cfg.Auth.DevAuth.Groups,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		logger.Warn("mock auth enabled; every SSO sign-in gets the development identity",
			"user_id", cfg.Auth.DevAuth.UserID)
		opts.SSO = service.SSOOptions{Provider: prov, Roles: roles, ServiceAdminToken: cfg.ServiceAdminToken}

	case config.AuthModeOAuth:
		prov, err := buildOIDCProvider(cfg.Auth.OAuth)
		if err != nil {
			return nil, err
		}
		opts.SSO = service.SSOOptions{Provider: prov, Roles: roles, ServiceAdminToken: cfg.ServiceAdminToken}

	default:
		if cfg.Backend == nil {
			return nil, errors.New("backend auth requires a marketplace client")
		}
		creds, err := backendauth.NewAuthenticator(backendauth.Config{Backend: cfg.Backend, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("create backend authenticator: %w", err)
		}
		opts.Credentials = creds

		if cfg.Auth.OAuthReady() && cfg.ServiceAdminToken != "" {
			prov, oidcErr := buildOIDCProvider(cfg.Auth.OAuth)
			if oidcErr != nil {
				// Password sign-in still works; staff SSO stays off until the IdP is reachable.
				logger.Warn("staff SSO disabled", "error", oidcErr)
			} else {
				opts.SSO = service.SSOOptions{Provider: prov, Roles: roles, ServiceAdminToken: cfg.ServiceAdminToken}
			}
		}
	}

	return service.NewAuthService(opts), nil
}

func buildOIDCProvider(o config.OAuthConfig) (*oidc.Provider, error) {
	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Scope:        o.Scope,
		DiscoveryURL: o.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create OIDC provider: %w", err)
	}
	return prov, nil
}
