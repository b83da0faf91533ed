package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/target/marketplace-console/internal/errors"
)

// APIError is a non-2xx (or status "error") backend response.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// StatusCode returns the backend HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// newAPIError reads the message from an error envelope when there is one.
func newAPIError(status int, cl call, raw []byte) *APIError {
	msg := ""
	if env, err := parseEnvelope(raw); err == nil {
		msg = env.Message
	}
	return &APIError{Status: status, Message: messageOr(msg, status), Method: cl.method, Path: cl.path}
}

// AsAPIError unwraps an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

// IsUnauthorized reports whether the backend rejected the bearer token.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// ToAppError converts backend failures into *AppError carrying the message users should see.
// Already-classified errors pass through unchanged.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apperrors.FromStatus(apiErr.Status, apiErr.Message, err)
	}
	if errors.Is(err, ErrMalformedEnvelope) {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "The marketplace returned an unexpected response.")
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The marketplace took too long to respond.")
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "Request was canceled.")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUpstream, FallbackMessage)
}
