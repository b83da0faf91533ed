package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	// CSRFCookieName holds the double-submit token. It is readable by page scripts so htmx can echo it.
	CSRFCookieName = "csrf_token"
	// CSRFHeaderName carries the token on htmx and fetch requests.
	CSRFHeaderName = "X-Csrf-Token"
	// CSRFFormField carries the token on plain form posts.
	CSRFFormField = "csrf_token"

	csrfTokenBytes = 32
)

// CSRFConfig configures CSRFProtection.
type CSRFConfig struct {
	CookieDomain string
	// Exempt skips validation for matching requests; the token cookie is still issued.
	Exempt func(r *http.Request) bool
}

// CSRFProtection implements the double-submit cookie pattern: unsafe methods must echo the cookie
// value in the X-Csrf-Token header or the csrf_token form field.
func CSRFProtection(cfg CSRFConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(CSRFCookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				var err error
				if token, err = newCSRFToken(); err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					Secure:   isSecureRequest(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   12 * 3600,
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			exempt := cfg.Exempt != nil && cfg.Exempt(r)
			if !exempt && unsafeMethod(r.Method) && !csrfTokenMatches(r, token) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

// newCSRFToken fails closed rather than falling back to a predictable token.
func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func csrfTokenMatches(r *http.Request, want string) bool {
	if want == "" {
		return false
	}
	got := r.Header.Get(CSRFHeaderName)
	if got == "" {
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseForm(); err != nil {
				return false
			}
			got = r.PostFormValue(CSRFFormField)
		}
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// isSecureRequest accounts for TLS terminated at a proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token for templates to embed in forms and hx-headers.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
