package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/ports"
)

func TestMockAuthProvider_Begin(t *testing.T) {
	provider := NewMockAuthProvider("marketplace-admins")
	ctx := context.Background()

	authURL, state, nonce, err := provider.Begin(ctx, ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	_, state2, _, err := provider.Begin(ctx, ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.Equal(t, "state-2", state2)

	id, err := provider.Exchange(ctx, ports.ExchangeInput{Code: "c", State: state, Nonce: nonce})
	require.NoError(t, err)
	assert.Equal(t, []string{"marketplace-admins"}, id.Groups)
	assert.False(t, id.ExpiresAt.IsZero())
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainauth.Session{}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "s1", Email: "a@example.com"}))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestFakeCredentials(t *testing.T) {
	creds := &FakeCredentials{Accounts: map[string]Account{
		"c@example.com": {
			Password: "pw",
			Identity: domainauth.Identity{UserID: "u1", Role: domainauth.RoleContractor},
			Tokens:   domainauth.Tokens{AuthToken: "tok"},
		},
	}}
	ctx := context.Background()

	id, tokens, err := creds.Authenticate(ctx, ports.CredentialInput{Email: "c@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "tok", tokens.AuthToken)

	_, _, err = creds.Authenticate(ctx, ports.CredentialInput{Email: "c@example.com", Password: "pw", Admin: true})
	require.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, creds.Revoke(ctx, tokens))
	assert.Equal(t, []domainauth.Tokens{tokens}, creds.Revoked())
}
