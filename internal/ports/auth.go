// Package ports defines interfaces (hexagonal ports) for auth and persistence behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

// BeginInput carries inputs for initiating an SSO flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes a staff SSO flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// CredentialInput is an email/password sign-in against the marketplace backend.
// Admin selects the separate admin login endpoint.
type CredentialInput struct {
	Email    string
	Password string
	Admin    bool
}

// CredentialAuthenticator signs users in with their marketplace credentials and revokes backend tokens.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, in CredentialInput) (domainauth.Identity, domainauth.Tokens, error)
	Revoke(ctx context.Context, tokens domainauth.Tokens) error
}

// ErrSessionNotFound is returned by SessionStore.Get for missing or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps IdP groups to console roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
