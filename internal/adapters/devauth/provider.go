// Package devauth provides a config-driven staff sign-in for local development.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/ports"
)

// Config describes the fixed identity handed out by the provider.
type Config struct {
	UserID          string
	Email           string
	FirstName       string
	Groups          []string
	SessionDuration time.Duration // 8h when zero
	Now             func() time.Time
}

// Provider implements ports.AuthProvider without an IdP. Begin redirects straight back to the
// console callback and Exchange returns the configured identity whatever the code.
type Provider struct {
	mu       sync.Mutex
	identity domainauth.Identity
	ttl      time.Duration
	now      func() time.Time
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider validates cfg and returns a provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	ttl := cfg.SessionDuration
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID:    cfg.UserID,
			Email:     cfg.Email,
			FirstName: cfg.FirstName,
			Groups:    append([]string(nil), cfg.Groups...),
		},
		ttl: ttl,
		now: now,
	}, nil
}

// Begin returns the local callback URL carrying a fresh state.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	q := url.Values{"code": {"dev"}, "state": {state}}
	return "/auth/callback?" + q.Encode(), state, nonce, nil
}

// Exchange returns a copy of the dev identity with a fresh expiry.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.identity
	id.Groups = append([]string(nil), p.identity.Groups...)
	id.ExpiresAt = p.now().Add(p.ttl)
	return id, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
