package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/http/validation"
	"github.com/target/marketplace-console/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	PasswordLogin(ctx context.Context, in service.PasswordLoginInput) (*domainauth.Session, error)
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, in service.CompleteLoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	PasswordEnabled() bool
	SSOEnabled() bool
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

// AuthHandlers provides HTTP handlers for sign-in and sign-out.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	// UI renders the sign-in, signed-out and error pages.
	UI     *UIHandlers
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage shows the sign-in form.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if sess, err := sessionFromRequest(r, h.Svc); err == nil && sess != nil && !sess.IsGuest() {
		http.Redirect(w, r, redirectURI, http.StatusFound)
		return
	}
	h.renderLogin(w, r, loginForm{RedirectURI: redirectURI}, http.StatusOK)
}

type loginForm struct {
	Email       string
	Admin       bool
	RedirectURI string
	Errors      map[string]string
	Message     string
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, form loginForm, status int) {
	b := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).
		With("Form", form).
		With("PasswordEnabled", h.Svc.PasswordEnabled()).
		With("SSOEnabled", h.Svc.SSOEnabled()).
		WithFieldErrors(form.Errors)
	if form.Message != "" {
		b.WithError(form.Message)
	}
	h.UI.render(w, r, status, b.Build())
}

// LoginSubmit handles the sign-in form.
// POST /auth/login.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginForm{Message: "Invalid form submission."}, http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Admin:       r.PostFormValue("admin") != "",
		RedirectURI: safeRedirectPath(r.PostFormValue("redirect_uri")),
	}
	password := r.PostFormValue("password")

	fv := validation.New().
		Validate("email", form.Email, validation.Required("Email", 254)).
		Validate("password", password, validation.Required("Password", 1024))
	if !fv.Valid() {
		form.Errors = fv.Errors()
		form.Message = errMsgFixBelow
		h.renderLogin(w, r, form, http.StatusUnprocessableEntity)
		return
	}

	sess, err := h.Svc.PasswordLogin(r.Context(), service.PasswordLoginInput{
		Email:    form.Email,
		Password: password,
		Admin:    form.Admin,
	})
	if err != nil {
		f := describeError(err)
		h.logger().InfoContext(r.Context(), "sign-in rejected", "code", f.Code, "error", err)
		form.Message = f.Message
		if field := apperrors.GetField(err); field != "" {
			form.Errors = map[string]string{field: f.Message}
		}
		h.renderLogin(w, r, form, f.Status)
		return
	}

	h.setSessionCookie(w, r, *sess)
	h.redirect(w, r, form.RedirectURI)
}

// apiLoginRequest is the JSON sign-in body.
type apiLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// APILogin signs in with JSON and sets the session cookie.
// POST /api/auth/login.
func (h *AuthHandlers) APILogin(w http.ResponseWriter, r *http.Request) {
	var req apiLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	sess, err := h.Svc.PasswordLogin(r.Context(), service.PasswordLoginInput{
		Email:    req.Email,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		RenderError(ErrorOpts{W: w, R: r, Err: err, Logger: h.logger()})
		return
	}
	h.setSessionCookie(w, r, *sess)
	WriteJSON(w, http.StatusOK, statusBody(sess))
}

// SSOStart begins staff single sign-on.
// GET /auth/sso?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) SSOStart(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		h.UI.fail(w, r, err)
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes staff single sign-on.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	switch {
	case code == "":
		h.UI.fail(w, r, apperrors.Validation("Sign-in did not return an authorization code."))
		return
	case state == "":
		h.UI.fail(w, r, apperrors.Validation("Sign-in did not return a state parameter."))
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state {
		h.UI.fail(w, r, apperrors.Validation("Sign-in expired or was started elsewhere. Please try again."))
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil {
		h.UI.fail(w, r, apperrors.Validation("Sign-in expired. Please try again."))
		return
	}

	sess, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Sign-in failed. Please try again.")
		}
		h.UI.fail(w, r, err)
		return
	}

	h.setSessionCookie(w, r, *sess)
	h.clearCookie(w, r, oauthStateCookie)
	h.clearCookie(w, r, oauthNonceCookie)
	http.Redirect(w, r, h.getPostLoginRedirect(w, r), http.StatusFound)
}

// Logout ends the session, revoking backend tokens.
// POST /auth/logout and POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), c.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearCookie(w, r, SessionCookieName)

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		redirectURI = r.URL.Query().Get("redirect_uri")
	}
	u := url.URL{Path: "/auth/signed-out", RawQuery: url.Values{"redirect_uri": {safeRedirectPath(redirectURI)}}.Encode()}
	signedOutURL := u.String()

	switch {
	case IsHTMX(r):
		HTMX(w).Redirect(signedOutURL)
		w.WriteHeader(http.StatusOK)
	case strings.HasPrefix(r.URL.Path, "/api/") || !IsBrowserRequest(r):
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": signedOutURL})
	default:
		http.Redirect(w, r, signedOutURL, http.StatusFound)
	}
}

// SignedOut confirms sign-out and offers to sign in again.
// GET /auth/signed-out.
func (h *AuthHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	loginURL := url.URL{
		Path:     "/auth/login",
		RawQuery: url.Values{"redirect_uri": {safeRedirectPath(r.URL.Query().Get("redirect_uri"))}}.Encode(),
	}
	data := NewTemplateData(r, PageMeta{Title: "Signed out", CurrentPage: PageSignedOut}).
		With("LoginURL", loginURL.String()).
		Build()
	h.UI.render(w, r, http.StatusOK, data)
}

// Me reports the current session.
// GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r, h.Svc)
	if err != nil || sess == nil || sess.IsGuest() {
		if _, cookieErr := r.Cookie(SessionCookieName); cookieErr == nil {
			h.clearCookie(w, r, SessionCookieName)
		}
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, statusBody(sess))
}

type sessionUser struct {
	ID           string          `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Role         domainauth.Role `json:"role"`
	ContractorID string          `json:"contractor_id,omitempty"`
	CustomerID   string          `json:"customer_id,omitempty"`
}

// statusBody never includes the backend tokens.
func statusBody(sess *domainauth.Session) map[string]any {
	return map[string]any{
		"authenticated": true,
		"user": sessionUser{
			ID:           sess.UserID,
			FirstName:    sess.FirstName,
			LastName:     sess.LastName,
			Email:        sess.Email,
			Role:         sess.Role,
			ContractorID: sess.ContractorID,
			CustomerID:   sess.CustomerID,
		},
		"expires_at": sess.ExpiresAt,
	}
}

// redirect sends the browser on after sign-in; htmx-boosted forms follow HX-Redirect.
func (h *AuthHandlers) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// clearCookie mirrors the attributes used when the cookie was set so every browser drops it.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies keeps state, nonce and the post-login destination for the callback.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	for name, value := range map[string]string{
		oauthStateCookie:        p.State,
		oauthNonceCookie:        p.Nonce,
		postLoginRedirectCookie: p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecureRequest(r),
			SameSite: http.SameSiteLaxMode,
			MaxAge:   oauthCookieMaxAgeSeconds,
		})
	}
}

// setSessionCookie writes the session cookie; it expires with the session.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	maxAge := 0
	if !s.ExpiresAt.IsZero() {
		maxAge = max(int(time.Until(s.ExpiresAt).Seconds()), 1)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(postLoginRedirectCookie)
	if err != nil {
		return "/"
	}
	h.clearCookie(w, r, postLoginRedirectCookie)
	return safeRedirectPath(c.Value)
}
