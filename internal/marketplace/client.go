// Package marketplace is the typed client for the marketplace backend REST API.
//
// Every call decodes the backend's {status, data, message} envelope strictly and returns the data payload.
// Non-2xx responses become *APIError. Nothing is retried.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/observability/metrics"
	"github.com/target/marketplace-console/internal/observability/statsd"
)

const (
	// FallbackMessage is shown when the backend could not be reached or gave no usable message.
	FallbackMessage = "marketplace request failed"

	idempotencyHeader = "Idempotency-Key"
	maxResponseBytes  = 8 << 20
	defaultTimeout    = 15 * time.Second
)

// ErrMalformedEnvelope is returned when a response body is not a well-formed {status, data, message} envelope.
var ErrMalformedEnvelope = errors.New("malformed marketplace response envelope")

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Sessions   SessionProvider
	Logger     *slog.Logger
	Metrics    statsd.Sink
	UserAgent  string
}

// Client talks to the marketplace backend.
type Client struct {
	base      *url.URL
	hc        *http.Client
	sessions  SessionProvider
	logger    *slog.Logger
	metrics   statsd.Sink
	userAgent string
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("marketplace base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse marketplace base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("marketplace base url must be http(s), got %q", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = ContextSessions{}
	}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "marketplace-console"
	}

	return &Client{
		base:      base,
		hc:        hc,
		sessions:  sessions,
		logger:    logger.With("component", "marketplace"),
		metrics:   sink,
		userAgent: ua,
	}, nil
}

// call describes one backend request.
type call struct {
	resource       string
	method         string
	path           string
	query          url.Values
	body           any
	scope          domainauth.TokenScope
	anonymous      bool
	idempotencyKey string
}

// envelope is the only response shape the backend uses.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

const (
	envelopeSuccess = "success"
	envelopeError   = "error"
)

// do sends c and decodes the envelope's data into out (which may be nil).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, cl, out)

	metrics.EmitBackendCall(c.metrics, metrics.BackendCall{
		Resource: cl.resource,
		Method:   cl.method,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "marketplace call failed",
			"method", cl.method, "path", cl.path, "status", status, "error", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, cl call, out any) (int, error) {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return 0, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %s %s: %w", FallbackMessage, cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s: read %s %s: %w", FallbackMessage, cl.method, cl.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newAPIError(resp.StatusCode, cl, raw)
	}
	return resp.StatusCode, decodeEnvelope(resp.StatusCode, cl, raw, out)
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.base.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, cl.idempotencyKey)
	}

	if !cl.anonymous {
		token, err := c.sessions.Token(ctx, cl.scope)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// decodeEnvelope enforces the success envelope: known keys only, status and data present.
func decodeEnvelope(status int, cl call, raw []byte, out any) error {
	env, err := parseEnvelope(raw)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrMalformedEnvelope, cl.method, cl.path, err)
	}

	switch env.Status {
	case envelopeSuccess:
	case envelopeError:
		return &APIError{Status: status, Message: messageOr(env.Message, status), Method: cl.method, Path: cl.path}
	default:
		return fmt.Errorf("%w: %s %s: unexpected status %q", ErrMalformedEnvelope, cl.method, cl.path, env.Status)
	}

	if env.Data == nil {
		return fmt.Errorf("%w: %s %s: missing data", ErrMalformedEnvelope, cl.method, cl.path)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode data: %w", ErrMalformedEnvelope, cl.method, cl.path, err)
	}
	return nil
}

func parseEnvelope(raw []byte) (envelope, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return envelope{}, err
	}
	if dec.More() {
		return envelope{}, errors.New("trailing data after envelope")
	}
	if env.Status == "" {
		return envelope{}, errors.New("missing status")
	}
	return env, nil
}

func messageOr(msg string, status int) string {
	if m := strings.TrimSpace(msg); m != "" {
		return m
	}
	if t := http.StatusText(status); t != "" {
		return t
	}
	return FallbackMessage
}
