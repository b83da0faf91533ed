package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the console.
type AuthMode string

const (
	// AuthModeBackend signs users in with their marketplace email and password.
	AuthModeBackend AuthMode = "backend"
	// AuthModeOAuth signs staff in through OIDC; backend calls use the service admin token.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses a fixed development identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "backend", "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: backend, oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for staff sign-in.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls the mock identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID string   `env:"USER_ID" envDefault:"dev-admin"`
	Email  string   `env:"EMAIL"   envDefault:"dev@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"marketplace-admins" envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	Mode AuthMode `env:"AUTH_MODE" envDefault:"backend"`

	OAuth   OAuthConfig   `envPrefix:"OAUTH_"`
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminGroup is the IdP group whose members get the admin role in oauth/mock modes.
	AdminGroup string `env:"AUTH_ADMIN_GROUP" envDefault:"marketplace-admins"`

	// SessionKeys encrypt sessions in Redis. The first key seals; the rest still open older sessions.
	// Each is 64 hex characters or a passphrase. Empty stores sessions unencrypted.
	SessionKeys []string `env:"SESSION_ENCRYPTION_KEYS" envSeparator:","`
}

// OAuthReady reports whether every setting required for OIDC sign-in is present.
func (a AuthConfig) OAuthReady() bool {
	o := a.OAuth
	return o.DiscoveryURL != "" && o.ClientID != "" && o.ClientSecret != ""
}
