// Package backendauth signs users in against the marketplace backend and reads its JWT claims.
package backendauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the backend token fields the console relies on.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}

// UserSubject returns the user id, preferring the explicit claim over "sub".
func (c *Claims) UserSubject() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// Expiry returns the token expiry, or the zero time when the token has none.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ParseClaims decodes a backend JWT without verifying its signature. The backend verifies its own
// tokens on every call; the console only needs the expiry and ids for session bookkeeping.
func ParseClaims(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse backend token: %w", err)
	}
	return claims, nil
}
