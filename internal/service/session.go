package service

import (
	"context"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/marketplace"
)

// withSession attaches sess for the marketplace client. A nil session leaves ctx alone so
// callers using static tokens (the admin CLI) work unchanged.
func withSession(ctx context.Context, sess *domainauth.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return marketplace.WithSession(ctx, sess)
}

// actorName is how an admin is named in notifications.
func actorName(sess *domainauth.Session) string {
	if sess == nil {
		return "service account"
	}
	return sess.DisplayName()
}
