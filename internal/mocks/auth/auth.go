// Package auth contains hand-written test doubles for the auth ports.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/ports"
)

var (
	_ ports.AuthProvider            = (*MockAuthProvider)(nil)
	_ ports.SessionStore            = (*MemorySessionStore)(nil)
	_ ports.CredentialAuthenticator = (*FakeCredentials)(nil)
)

// MockAuthProvider simulates a staff IdP with deterministic state and nonce values.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockAuthProvider returns a provider whose identity belongs to the given groups.
func NewMockAuthProvider(groups ...string) *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			UserID:    "staff-1",
			FirstName: "Ops",
			LastName:  "Person",
			Email:     "ops@example.com",
			Groups:    groups,
		},
	}
}

// Begin returns "state-N" and "nonce-N" for the Nth call.
func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()
	return m.AuthURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

// Exchange returns DefaultUser with an expiry one hour out.
func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory ports.SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Account is one set of credentials known to FakeCredentials.
type Account struct {
	Password string
	Admin    bool
	Identity domainauth.Identity
	Tokens   domainauth.Tokens
}

// FakeCredentials is a ports.CredentialAuthenticator backed by a fixed account table.
type FakeCredentials struct {
	Accounts  map[string]Account // keyed by email
	RevokeErr error

	mu      sync.Mutex
	revoked []domainauth.Tokens
}

// ErrBadCredentials is returned for unknown emails or wrong passwords.
var ErrBadCredentials = errors.New("invalid email or password")

func (f *FakeCredentials) Authenticate(
	_ context.Context,
	in ports.CredentialInput,
) (domainauth.Identity, domainauth.Tokens, error) {
	acct, ok := f.Accounts[in.Email]
	if !ok || acct.Password != in.Password || acct.Admin != in.Admin {
		return domainauth.Identity{}, domainauth.Tokens{}, ErrBadCredentials
	}
	id := acct.Identity
	if id.ExpiresAt.IsZero() {
		id.ExpiresAt = time.Now().Add(time.Hour)
	}
	return id, acct.Tokens, nil
}

func (f *FakeCredentials) Revoke(_ context.Context, tokens domainauth.Tokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, tokens)
	return f.RevokeErr
}

// Revoked returns every token set passed to Revoke.
func (f *FakeCredentials) Revoked() []domainauth.Tokens {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainauth.Tokens(nil), f.revoked...)
}
