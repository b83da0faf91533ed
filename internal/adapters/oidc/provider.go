// Package oidc implements staff single sign-on for the console over OpenID Connect.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/ports"
)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client
}

// Provider implements ports.AuthProvider with go-oidc and x/oauth2.
type Provider struct {
	oauth    *oauth2.Config
	op       *gooidc.Provider
	verifier *gooidc.IDTokenVerifier
	client   *http.Client
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider runs discovery against the issuer and returns a ready provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	switch {
	case cfg.ClientID == "":
		return nil, errors.New("client ID is required")
	case cfg.ClientSecret == "":
		return nil, errors.New("client secret is required")
	case cfg.RedirectURL == "":
		return nil, errors.New("redirect URL is required")
	case cfg.DiscoveryURL == "":
		return nil, errors.New("discovery URL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := gooidc.ClientContext(context.Background(), hc)
	op, err := gooidc.NewProvider(ctx, issuerFromDiscovery(cfg.DiscoveryURL))
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scopes := strings.Fields(cfg.Scope)
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		op:       op,
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		client:   hc,
	}, nil
}

// issuerFromDiscovery accepts either the issuer or its .well-known document URL.
func issuerFromDiscovery(raw string) string {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	s = strings.TrimSuffix(s, "/.well-known/openid-configuration")
	return strings.TrimSuffix(s, "/")
}

// Begin returns the IdP authorization URL with fresh state and nonce.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}
	state, err := randomToken(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomToken(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.oauth.AuthCodeURL(state,
		gooidc.Nonce(nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nonce, nil
}

// Exchange redeems the code, verifies the ID token and nonce, and fills gaps from userinfo.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	switch {
	case in.Code == "":
		return domainauth.Identity{}, errors.New("authorization code is required")
	case in.State == "":
		return domainauth.Identity{}, errors.New("state is required")
	case in.Nonce == "":
		return domainauth.Identity{}, errors.New("nonce is required")
	}

	ctx = gooidc.ClientContext(ctx, p.client)
	tok, err := p.oauth.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	var c staffClaims
	if slices.Contains(p.oauth.Scopes, gooidc.ScopeOpenID) {
		if c, err = p.verifyIDToken(ctx, tok, in.Nonce); err != nil {
			return domainauth.Identity{}, err
		}
	}

	if !c.complete() {
		ui, uiErr := p.op.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if uiErr != nil {
			return domainauth.Identity{}, fmt.Errorf("fetch user info: %w", uiErr)
		}
		var extra staffClaims
		if claimErr := ui.Claims(&extra); claimErr != nil {
			return domainauth.Identity{}, fmt.Errorf("decode user info: %w", claimErr)
		}
		c.fillFrom(extra)
	}

	expires := tok.Expiry
	if expires.IsZero() {
		expires = time.Now().Add(time.Hour)
	}
	return c.identity(expires), nil
}

func (p *Provider) verifyIDToken(ctx context.Context, tok *oauth2.Token, nonce string) (staffClaims, error) {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return staffClaims{}, errors.New("missing id_token in token response")
	}
	idTok, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return staffClaims{}, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != nonce {
		return staffClaims{}, errors.New("invalid nonce")
	}
	var c staffClaims
	if err := idTok.Claims(&c); err != nil {
		return staffClaims{}, fmt.Errorf("parse id_token claims: %w", err)
	}
	return c, nil
}

// staffClaims accepts both standard OIDC claim names and the directory-style ones some IdPs emit.
type staffClaims struct {
	Subject        string   `json:"sub"`
	Username       string   `json:"preferred_username"`
	SamAccountName string   `json:"samaccountname"`
	Email          string   `json:"email"`
	Mail           string   `json:"mail"`
	GivenName      string   `json:"given_name"`
	FamilyName     string   `json:"family_name"`
	Groups         []string `json:"groups"`
	MemberOf       []string `json:"memberof"`
}

func (c staffClaims) userID() string { return firstNonEmpty(c.SamAccountName, c.Username, c.Subject) }
func (c staffClaims) email() string  { return firstNonEmpty(c.Email, c.Mail) }

func (c staffClaims) groups() []string {
	if len(c.Groups) > 0 {
		return c.Groups
	}
	return c.MemberOf
}

func (c staffClaims) complete() bool {
	return c.userID() != "" && c.email() != "" && len(c.groups()) > 0
}

// fillFrom copies fields that are still empty from other.
func (c *staffClaims) fillFrom(other staffClaims) {
	if c.userID() == "" {
		c.Subject, c.Username, c.SamAccountName = other.Subject, other.Username, other.SamAccountName
	}
	if c.email() == "" {
		c.Email, c.Mail = other.Email, other.Mail
	}
	if c.GivenName == "" {
		c.GivenName = other.GivenName
	}
	if c.FamilyName == "" {
		c.FamilyName = other.FamilyName
	}
	if len(c.groups()) == 0 {
		c.Groups, c.MemberOf = other.Groups, other.MemberOf
	}
}

func (c staffClaims) identity(expires time.Time) domainauth.Identity {
	return domainauth.Identity{
		UserID:    c.userID(),
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
		Email:     c.email(),
		Groups:    c.groups(),
		ExpiresAt: expires,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// randomToken returns n URL-safe characters from crypto/rand.
func randomToken(n int) (string, error) {
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
