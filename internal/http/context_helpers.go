package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

// sessionKey is the unexported context key for the signed-in session.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying session. A nil session leaves ctx unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session and whether one was present.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s, ok && s != nil
}

// requestSession is shorthand for handlers mounted behind RequireAuth.
func requestSession(r *http.Request) *domainauth.Session {
	s, _ := GetSessionFromContext(r.Context())
	return s
}

// IsGuestUser reports whether the request is unauthenticated or carries a guest session.
func IsGuestUser(ctx context.Context) bool {
	s, ok := GetSessionFromContext(ctx)
	return !ok || s.IsGuest()
}
