package backendauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/ports"
)

// Backend is the slice of the marketplace client used for sign-in.
type Backend interface {
	Login(ctx context.Context, email, password string) (*marketplace.AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*marketplace.AdminAuthResult, error)
	Logout(ctx context.Context) error
}

// Config configures an Authenticator.
type Config struct {
	Backend Backend
	// FallbackTTL bounds sessions whose token carries no exp claim (default 12h).
	FallbackTTL time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
}

// Authenticator implements ports.CredentialAuthenticator against the marketplace backend.
type Authenticator struct {
	backend     Backend
	fallbackTTL time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

var _ ports.CredentialAuthenticator = (*Authenticator)(nil)

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if cfg.Backend == nil {
		return nil, errors.New("backendauth: backend is required")
	}
	ttl := cfg.FallbackTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Authenticator{backend: cfg.Backend, fallbackTTL: ttl, logger: logger, now: now}, nil
}

// Authenticate signs in with email and password.
func (a *Authenticator) Authenticate(
	ctx context.Context,
	in ports.CredentialInput,
) (domainauth.Identity, domainauth.Tokens, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return domainauth.Identity{}, domainauth.Tokens{}, errors.New("email and password are required")
	}
	if in.Admin {
		return a.adminLogin(ctx, email, in.Password)
	}

	res, err := a.backend.Login(ctx, email, in.Password)
	if err != nil {
		return domainauth.Identity{}, domainauth.Tokens{}, err
	}

	claims := a.claims(ctx, res.Token)
	role := domainauth.ParseRole(string(res.User.Role))
	if role == domainauth.RoleGuest && claims != nil {
		role = domainauth.ParseRole(claims.Role)
	}
	// Admin accounts sign in through the admin endpoint; a user token never grants admin screens.
	if role == domainauth.RoleAdmin {
		role = domainauth.RoleGuest
	}

	userID := res.User.ID
	if userID == "" && claims != nil {
		userID = claims.UserSubject()
	}

	id := domainauth.Identity{
		UserID:       userID,
		ContractorID: res.User.ContractorID,
		CustomerID:   res.User.CustomerID,
		FirstName:    res.User.FirstName,
		LastName:     res.User.LastName,
		Email:        firstNonEmpty(res.User.Email, email),
		Role:         role,
		ExpiresAt:    a.expiry(claims),
	}
	return id, domainauth.Tokens{AuthToken: res.Token, RefreshToken: res.RefreshToken}, nil
}

func (a *Authenticator) adminLogin(
	ctx context.Context,
	email, password string,
) (domainauth.Identity, domainauth.Tokens, error) {
	res, err := a.backend.AdminLogin(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, domainauth.Tokens{}, err
	}
	claims := a.claims(ctx, res.Token)

	userID := res.Admin.ID
	if userID == "" && claims != nil {
		userID = claims.UserSubject()
	}
	id := domainauth.Identity{
		UserID:    userID,
		FirstName: res.Admin.FirstName,
		LastName:  res.Admin.LastName,
		Email:     firstNonEmpty(res.Admin.Email, email),
		Role:      domainauth.RoleAdmin,
		ExpiresAt: a.expiry(claims),
	}
	return id, domainauth.Tokens{AdminToken: res.Token}, nil
}

// Revoke logs the user token out on the backend. Admin tokens simply expire.
func (a *Authenticator) Revoke(ctx context.Context, tokens domainauth.Tokens) error {
	if tokens.AuthToken == "" {
		return nil
	}
	sess := &domainauth.Session{Tokens: tokens}
	if err := a.backend.Logout(marketplace.WithSession(ctx, sess)); err != nil {
		return fmt.Errorf("backend logout: %w", err)
	}
	return nil
}

func (a *Authenticator) claims(ctx context.Context, token string) *Claims {
	claims, err := ParseClaims(token)
	if err != nil {
		a.logger.WarnContext(ctx, "backend token is not a readable JWT", "error", err)
		return nil
	}
	return claims
}

// expiry is the token's exp capped at now+fallbackTTL.
func (a *Authenticator) expiry(claims *Claims) time.Time {
	limit := a.now().Add(a.fallbackTTL)
	if claims == nil {
		return limit
	}
	exp := claims.Expiry()
	if exp.IsZero() || exp.After(limit) {
		return limit
	}
	return exp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
