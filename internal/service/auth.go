package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	// Credentials signs users in with marketplace email and password. Nil disables password sign-in.
	Credentials ports.CredentialAuthenticator
	// SSO handles staff sign-in through an IdP (OIDC or the dev provider). Nil disables it.
	SSO      SSOOptions
	Sessions ports.SessionStore
}

// SSOOptions configures staff single sign-on.
type SSOOptions struct {
	Provider ports.AuthProvider
	Roles    ports.RoleMapper
	// ServiceAdminToken is the backend admin bearer given to staff sessions.
	ServiceAdminToken string
}

// AuthService coordinates sign-in, session persistence and sign-out.
type AuthService struct {
	credentials ports.CredentialAuthenticator
	sso         SSOOptions
	sessions    ports.SessionStore
	logger      *slog.Logger
	now         func() time.Time
}

var (
	errSessionExpired = apperrors.Unauthorized("Your session has expired. Please sign in again.")
	errNotConsoleUser = apperrors.Forbidden("This account cannot use the console.")
)

// NewAuthService constructs an AuthService. Sessions is required.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Sessions == nil {
		panic("session store is required")
	}
	return &AuthService{
		credentials: opts.Credentials,
		sso:         opts.SSO,
		sessions:    opts.Sessions,
		logger:      slog.Default().With("component", "auth_service"),
		now:         time.Now,
	}
}

// PasswordEnabled reports whether email/password sign-in is available.
func (s *AuthService) PasswordEnabled() bool { return s.credentials != nil }

// SSOEnabled reports whether staff SSO is available.
func (s *AuthService) SSOEnabled() bool { return s.sso.Provider != nil }

// PasswordLoginInput carries a sign-in form submission.
type PasswordLoginInput struct {
	Email    string
	Password string
	// Admin selects the backend's admin login endpoint.
	Admin bool
}

// PasswordLogin signs in against the marketplace backend and stores a new session holding its tokens.
func (s *AuthService) PasswordLogin(ctx context.Context, in PasswordLoginInput) (*domainauth.Session, error) {
	if s.credentials == nil {
		return nil, apperrors.Forbidden("Password sign-in is disabled.")
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}
	if in.Password == "" {
		return nil, apperrors.ValidationField("password", "Password is required.")
	}

	id, tokens, err := s.credentials.Authenticate(ctx, ports.CredentialInput{
		Email:    in.Email,
		Password: in.Password,
		Admin:    in.Admin,
	})
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	if id.Role == domainauth.RoleGuest {
		s.revoke(ctx, tokens)
		return nil, errNotConsoleUser
	}

	sess := newSession(id, id.Role, tokens)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.InfoContext(ctx, "signed in", "user_id", sess.UserID, "role", sess.Role)
	return &sess, nil
}

// BeginLoginResult contains the result of beginning an SSO flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin starts staff SSO and returns the IdP URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.sso.Provider == nil {
		return nil, apperrors.Forbidden("Single sign-on is disabled.")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	authURL, state, nonce, err := s.sso.Provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an SSO flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the code, maps groups to a role, and stores a staff session.
// Staff act on the backend with the service admin token.
func (s *AuthService) CompleteLogin(ctx context.Context, in CompleteLoginInput) (*domainauth.Session, error) {
	if s.sso.Provider == nil {
		return nil, apperrors.Forbidden("Single sign-on is disabled.")
	}
	switch {
	case in.Code == "":
		return nil, errors.New("authorization code is required")
	case in.State == "":
		return nil, errors.New("state parameter is required")
	case in.Nonce == "":
		return nil, errors.New("nonce parameter is required")
	}

	id, err := s.sso.Provider.Exchange(ctx, ports.ExchangeInput{Code: in.Code, State: in.State, Nonce: in.Nonce})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	role := domainauth.RoleGuest
	if s.sso.Roles != nil {
		role = s.sso.Roles.Map(id.Groups)
	}
	if role != domainauth.RoleAdmin {
		return nil, errNotConsoleUser
	}
	if s.sso.ServiceAdminToken == "" {
		s.logger.WarnContext(ctx, "service admin token is not configured; admin screens will be rejected by the backend")
	}

	sess := newSession(id, role, domainauth.Tokens{AdminToken: s.sso.ServiceAdminToken})
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.InfoContext(ctx, "staff signed in", "user_id", sess.UserID)
	return &sess, nil
}

// GetSession loads a live session. Missing or expired sessions are unauthorized.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errSessionExpired
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil, errSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.now()) {
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", delErr))
		}
		return nil, errSessionExpired
	}
	return &sess, nil
}

// Logout revokes the backend token when there is one and deletes the session,
// which drops the auth, refresh and admin tokens together.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("get session: %w", err)
	}

	s.revoke(ctx, sess.Tokens)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// revoke logs the user token out on the backend; failures only warn.
func (s *AuthService) revoke(ctx context.Context, tokens domainauth.Tokens) {
	if s.credentials == nil || tokens.AuthToken == "" {
		return
	}
	if err := s.credentials.Revoke(ctx, tokens); err != nil {
		s.logger.WarnContext(ctx, "backend logout failed", "error", err)
	}
}

func newSession(id domainauth.Identity, role domainauth.Role, tokens domainauth.Tokens) domainauth.Session {
	return domainauth.Session{
		ID:           uuid.NewString(),
		UserID:       id.UserID,
		ContractorID: id.ContractorID,
		CustomerID:   id.CustomerID,
		FirstName:    id.FirstName,
		LastName:     id.LastName,
		Email:        id.Email,
		Role:         role,
		Tokens:       tokens,
		ExpiresAt:    id.ExpiresAt,
	}
}
