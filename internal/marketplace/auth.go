package marketplace

import (
	"context"
	"net/http"

	"github.com/target/marketplace-console/internal/domain/model"
)

// AuthResult is returned by login, register and refresh.
type AuthResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         AccountUser `json:"user"`
}

// AccountUser is the signed-in user with the role-specific profile ids.
type AccountUser struct {
	model.User
	ContractorID string `json:"contractorId,omitempty"`
	CustomerID   string `json:"customerId,omitempty"`
}

// AdminAuthResult is returned by the admin login endpoint.
type AdminAuthResult struct {
	Token string     `json:"token"`
	Admin model.User `json:"admin"`
}

// RegisterRequest creates a contractor or customer account.
type RegisterRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Role         model.UserRole `json:"role"`
	BusinessName string         `json:"businessName,omitempty"`
	Phone        string         `json:"phone,omitempty"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email and password for user tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, call{
		resource:  "auth",
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      credentials{Email: email, Password: password},
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogin exchanges admin credentials for an admin token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*AdminAuthResult, error) {
	var out AdminAuthResult
	err := c.do(ctx, call{
		resource:  "admin",
		method:    http.MethodPost,
		path:      "/admin/auth/login",
		body:      credentials{Email: email, Password: password},
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, call{
		resource:  "auth",
		method:    http.MethodPost,
		path:      "/auth/register",
		body:      req,
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh trades a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, call{
		resource:  "auth",
		method:    http.MethodPost,
		path:      "/auth/refresh",
		body:      map[string]string{"refreshToken": refreshToken},
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session's user token on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{resource: "auth", method: http.MethodPost, path: "/auth/logout"}, nil)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*AccountUser, error) {
	var out AccountUser
	if err := c.do(ctx, call{resource: "auth", method: http.MethodGet, path: "/auth/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
