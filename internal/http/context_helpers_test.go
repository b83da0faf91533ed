package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
)

func TestGetSessionFromContext(t *testing.T) {
	s, ok := GetSessionFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, s)

	sess := &domainauth.Session{ID: "abc", Role: domainauth.RoleContractor}
	s, ok = GetSessionFromContext(SetSessionInContext(context.Background(), sess))
	assert.True(t, ok)
	assert.Same(t, sess, s)

	ctx := SetSessionInContext(context.Background(), nil)
	_, ok = GetSessionFromContext(ctx)
	assert.False(t, ok)
}

func TestIsGuestUser(t *testing.T) {
	assert.True(t, IsGuestUser(context.Background()))

	guest := &domainauth.Session{ID: "g", Role: domainauth.RoleGuest}
	assert.True(t, IsGuestUser(SetSessionInContext(context.Background(), guest)))

	for _, role := range []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleContractor, domainauth.RoleCustomer} {
		sess := &domainauth.Session{ID: "u", Role: role}
		assert.False(t, IsGuestUser(SetSessionInContext(context.Background(), sess)), role)
	}
}
