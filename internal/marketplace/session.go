package marketplace

import (
	"context"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

// SessionProvider supplies the bearer token for a call. An empty token sends the request
// unauthenticated and lets the backend answer 401.
type SessionProvider interface {
	Token(ctx context.Context, scope domainauth.TokenScope) (string, error)
}

// SessionProviderFunc adapts a function to SessionProvider.
type SessionProviderFunc func(ctx context.Context, scope domainauth.TokenScope) (string, error)

// Token implements SessionProvider.
func (f SessionProviderFunc) Token(ctx context.Context, scope domainauth.TokenScope) (string, error) {
	return f(ctx, scope)
}

type sessionCtxKey struct{}

// WithSession attaches the console session whose tokens authorise calls made with ctx.
func WithSession(ctx context.Context, s *domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session attached by WithSession.
func SessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*domainauth.Session)
	return s, ok && s != nil
}

// ContextSessions reads tokens from the session carried in the request context.
type ContextSessions struct{}

// Token implements SessionProvider.
func (ContextSessions) Token(ctx context.Context, scope domainauth.TokenScope) (string, error) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return "", nil
	}
	return s.BearerFor(scope), nil
}

// StaticTokens serves fixed tokens, for the CLI and service accounts.
type StaticTokens struct {
	User  string
	Admin string
}

// Token implements SessionProvider.
func (t StaticTokens) Token(_ context.Context, scope domainauth.TokenScope) (string, error) {
	if scope == domainauth.ScopeAdmin {
		return t.Admin, nil
	}
	return t.User, nil
}
