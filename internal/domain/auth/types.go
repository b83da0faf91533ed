// Package auth contains domain-level types for console sign-in and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"strings"
	"time"
)

// Role represents a console authorization role.
// Keep string form for easy persistence in Redis.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleContractor Role = "contractor"
	RoleCustomer   Role = "customer"
	RoleGuest      Role = "guest"
)

// ParseRole maps a backend role name ("ADMIN", "contractor", ...) onto a Role, defaulting to guest.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleContractor:
		return RoleContractor
	case RoleCustomer:
		return RoleCustomer
	default:
		return RoleGuest
	}
}

// TokenScope selects which backend token authorises a call.
type TokenScope int

const (
	// ScopeUser calls act as the signed-in marketplace user.
	ScopeUser TokenScope = iota
	// ScopeAdmin calls hit /admin endpoints.
	ScopeAdmin
)

// Identity represents the authenticated principal returned by an IdP or the backend.
type Identity struct {
	UserID       string // backend user id, or IdP subject for staff SSO
	ContractorID string // set for contractor accounts
	CustomerID   string // set for customer accounts
	FirstName    string
	LastName     string
	Email        string
	Role         Role     // set by the backend; empty for IdP identities
	Groups       []string // IdP groups, mapped to a role by RoleMapper
	ExpiresAt    time.Time
}

// Tokens are the backend bearer tokens held for a session. They replace browser local storage.
type Tokens struct {
	AuthToken    string `json:"auth_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	AdminToken   string `json:"admin_token,omitempty"`
}

// Session is the server-side record we persist for a signed-in user.
// ID is an opaque session identifier carried in the session cookie.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ContractorID string    `json:"contractor_id,omitempty"`
	CustomerID   string    `json:"customer_id,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Tokens       Tokens    `json:"tokens"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// BearerFor returns the token for the given scope. Admin scope falls back to nothing,
// never to the user token, so a non-admin can't reach /admin endpoints by accident.
func (s Session) BearerFor(scope TokenScope) string {
	if scope == ScopeAdmin {
		return s.Tokens.AdminToken
	}
	return s.Tokens.AuthToken
}

// DisplayName joins first and last name, falling back to the email.
func (s Session) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Email
	}
	return name
}
