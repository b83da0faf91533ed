package httpx

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/observability/metrics"
	"github.com/target/marketplace-console/internal/observability/statsd"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so the first one listed is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging logs every request and records http.request metrics. A nil sink disables metrics.
func Logging(logger *slog.Logger, sink statsd.Sink) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
			)
			metrics.EmitHTTPRequest(sink, metrics.HTTPRequest{
				Area:     routeArea(r.URL.Path),
				Method:   r.Method,
				Status:   ww.status,
				Duration: elapsed,
			})
		})
	}
}

func routeArea(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/auth/"):
		return "auth"
	case strings.HasPrefix(path, "/static/"):
		return "static"
	default:
		return "ui"
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover turns a panic into a 500 and logs the stack.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic",
					slog.Any("error", rec),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("stack", string(debug.Stack())))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionLoader resolves the session cookie to a live session.
type SessionLoader interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

var (
	errSignInRequired = apperrors.Unauthorized("Please sign in to continue.")
	errWrongRole      = apperrors.Forbidden("You don't have access to this page.")
)

// RequireAuth admits requests with a live session whose role is one of roles. With no roles any
// signed-in, non-guest session is admitted. Contractor and customer are peers, so a route meant for
// one of them lists it explicitly; admin is not implied.
//
// Unauthenticated browser requests are sent to the sign-in page, htmx requests get Hx-Redirect,
// and API requests get a 401 JSON body.
func RequireAuth(auth SessionLoader, roles ...domainauth.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessionFromRequest(r, auth)
			switch {
			case err != nil && !apperrors.IsUnauthorized(err):
				RenderError(ErrorOpts{W: w, R: r, Err: err})
				return
			case session == nil || session.IsGuest():
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				if err == nil {
					err = errSignInRequired
				}
				RenderError(ErrorOpts{W: w, R: r, Err: err})
				return
			case !roleAllowed(session.Role, roles):
				RenderError(ErrorOpts{W: w, R: r, Err: errWrongRole})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// OptionalAuth attaches the session when there is one and never rejects.
func OptionalAuth(auth SessionLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := sessionFromRequest(r, auth); err == nil && session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionFromRequest returns (nil, nil) when there is no cookie at all.
func sessionFromRequest(r *http.Request, auth SessionLoader) (*domainauth.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return auth.GetSession(r.Context(), cookie.Value)
}

func roleAllowed(role domainauth.Role, roles []domainauth.Role) bool {
	if role == domainauth.RoleGuest || role == "" {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, want := range roles {
		if role == want {
			return true
		}
	}
	return false
}

// browserRequestKey is the context key set by BrowserDetection.
type browserRequestKey struct{}

// BrowserDetection records whether the request wants HTML so handlers can pick a response style.
func BrowserDetection() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest reports whether the request expects HTML rather than JSON.
func IsBrowserRequest(r *http.Request) bool {
	if v, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return v
	}
	return isBrowserRequest(r)
}

// isBrowserRequest: /api/ and /static/ never are, htmx always is, otherwise the Accept header decides.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}

// redirectToLogin sends the browser to sign in, remembering where it was going.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	back := redirectPathForRequest(r)
	loginURL := "/auth/login?redirect_uri=" + url.QueryEscape(back)

	if IsHTMX(r) {
		HTMX(w).Redirect(loginURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "/" {
			return current
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

// safeRedirectFromURL keeps only the path and query of an absolute URL.
func safeRedirectFromURL(raw string) string {
	u, err := url.Parse(raw)
	if raw == "" || err != nil {
		return "/"
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath allows only same-origin relative paths; anything else becomes "/".
func safeRedirectPath(candidate string) string {
	u, err := url.Parse(candidate)
	if candidate == "" || err != nil || u.IsAbs() || u.Host != "" ||
		!strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}

// CompressionConfig configures gzip compression of text responses.
type CompressionConfig struct {
	// Level is the gzip level, 1-9.
	Level  int
	Logger *slog.Logger
}

var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/csv":               true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// Compression gzips text responses for clients that accept it. HEAD requests, 1xx/204/304 responses
// and responses that already carry a Content-Encoding pass through untouched.
func Compression(cfg CompressionConfig) Middleware {
	if cfg.Level < gzip.BestSpeed || cfg.Level > gzip.BestCompression {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	pool := &sync.Pool{New: func() any {
		gz, err := gzip.NewWriterLevel(io.Discard, cfg.Level)
		if err != nil {
			return gzip.NewWriter(io.Discard)
		}
		return gz
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			next.ServeHTTP(gzw, r)

			if gzw.gz != nil {
				if err := gzw.gz.Close(); err != nil {
					cfg.Logger.ErrorContext(r.Context(), "closing gzip writer failed", "error", err)
				}
				gzw.gz.Reset(io.Discard)
				pool.Put(gzw.gz)
			}
		})
	}
}

// acceptsGzip honours an explicit q=0.
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		q := strings.ReplaceAll(strings.TrimSpace(params), " ", "")
		return q != "q=0" && q != "q=0.0" && q != "q=0.00" && q != "q=0.000"
	}
	return false
}

func isCompressible(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return compressibleTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

type gzipResponseWriter struct {
	http.ResponseWriter
	pool          *sync.Pool
	gz            *gzip.Writer
	headerWritten bool
}

// WriteHeader decides on compression once the status and content type are known.
func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	h := w.Header()
	skip := status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified ||
		h.Get("Content-Encoding") != "" || !isCompressible(h.Get("Content-Type"))
	if !skip {
		gz, _ := w.pool.Get().(*gzip.Writer)
		gz.Reset(w.ResponseWriter)
		w.gz = gz
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher.
func (w *gzipResponseWriter) Flush() {
	if w.gz != nil {
		_ = w.gz.Flush()
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *gzipResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("http.Hijacker not supported")
}
