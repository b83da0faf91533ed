package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/target/marketplace-console/internal/errors"
)

const errMsgUnexpected = "Something went wrong. Please try again."

// failure is an error reduced to what a client may see.
type failure struct {
	Status  int
	Code    apperrors.ErrorCode
	Message string
	Field   string
}

// describeError maps err onto a response. AppError messages (including backend messages) are shown
// verbatim; anything else becomes a generic internal error so internals never leak.
func describeError(err error) failure {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return failure{
			Status:  http.StatusInternalServerError,
			Code:    apperrors.ErrCodeInternal,
			Message: errMsgUnexpected,
		}
	}
	msg := appErr.Message
	if msg == "" {
		msg = errMsgUnexpected
	}
	return failure{
		Status:  apperrors.HTTPStatus(appErr.Code),
		Code:    appErr.Code,
		Message: msg,
		Field:   appErr.Field,
	}
}

// ErrorOpts groups what writeFailure needs.
type ErrorOpts struct {
	W      http.ResponseWriter
	R      *http.Request
	Err    error
	Logger *slog.Logger
	// Page renders a full error page for plain browser requests. Nil falls back to text.
	Page func(w http.ResponseWriter, r *http.Request, f failure)
}

// RenderError answers a failed request. API callers get {error, message}; htmx callers get the same
// body plus a showToast trigger and Hx-Reswap: none, so the page keeps its last good state.
func RenderError(opts ErrorOpts) {
	f := describeError(opts.Err)
	logFailure(opts, f)

	switch {
	case IsHTMX(opts.R):
		HTMX(opts.W).Reswap("none").Toast(ToastError, f.Message)
		writeFailureJSON(opts.W, f)
	case IsBrowserRequest(opts.R) && opts.Page != nil:
		opts.Page(opts.W, opts.R, f)
	case IsBrowserRequest(opts.R):
		http.Error(opts.W, f.Message, f.Status)
	default:
		writeFailureJSON(opts.W, f)
	}
}

func writeFailureJSON(w http.ResponseWriter, f failure) {
	WriteError(w, ErrorParams{
		Code:    f.Status,
		ErrCode: string(f.Code),
		Err:     errors.New(f.Message),
		Field:   f.Field,
	})
}

func logFailure(opts ErrorOpts, f failure) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"method", opts.R.Method, "path", opts.R.URL.Path, "status", f.Status, "code", f.Code}
	if f.Status >= http.StatusInternalServerError {
		logger.ErrorContext(opts.R.Context(), "request failed", append(attrs, "error", opts.Err)...)
		return
	}
	logger.DebugContext(opts.R.Context(), "request rejected", append(attrs, "error", opts.Err)...)
}
