package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
	// ConsoleURL is the console base URL used to link disputes and invoices.
	ConsoleURL string
}

// Client posts money events to a Slack incoming webhook.
type Client struct {
	webhookURL string
	channel    string
	username   string
	retryLimit int
	consoleURL string
	client     *http.Client
}

var _ notify.Sink = (*Client)(nil)

var kindTitles = map[string]string{
	notify.KindRefundIssued:     "Refund issued",
	notify.KindDisputeResolved:  "Dispute resolved",
	notify.KindSubscriptionStop: "Subscription cancelled",
}

// NewClient builds a Slack webhook client.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "marketplace-console"
	}

	return &Client{
		webhookURL: webhookURL,
		channel:    strings.TrimSpace(cfg.Channel),
		username:   username,
		retryLimit: max(cfg.RetryLimit, 0),
		consoleURL: strings.TrimRight(strings.TrimSpace(cfg.ConsoleURL), "/"),
		client:     hc,
	}, nil
}

// SendMoneyEvent posts a formatted message, retrying with linear backoff.
func (c *Client) SendMoneyEvent(ctx context.Context, ev notify.MoneyEvent) error {
	body, err := json.Marshal(c.formatMessage(ev))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	var lastErr error
	for attempt := range c.retryLimit + 1 {
		if attempt > 0 {
			timer := time.NewTimer(time.Duration(attempt) * 200 * time.Millisecond)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if lastErr = c.post(ctx, body); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) formatMessage(ev notify.MoneyEvent) map[string]any {
	var text strings.Builder

	title, ok := kindTitles[ev.Kind]
	if !ok {
		title = ev.Kind
	}
	text.WriteString("*")
	text.WriteString(title)
	text.WriteString("*\n")

	amount := ev.Amount
	if amount == "" && ev.Kind == notify.KindRefundIssued {
		amount = "full"
	}

	fields := []struct{ label, value string }{
		{"By", escape(ev.Actor)},
		{"Dispute", c.link("admin/disputes", ev.DisputeID)},
		{"Invoice", c.link("admin/invoices", ev.InvoiceID)},
		{"Payment", escape(ev.PaymentID)},
		{"Amount", escape(amount)},
		{"Reason", escape(ev.Reason)},
	}
	for _, f := range fields {
		writeField(&text, f.label, f.value)
	}

	keys := make([]string, 0, len(ev.Details))
	for k := range ev.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(&text, k, escape(ev.Details[k]))
	}

	at := ev.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	text.WriteString("• At: ")
	text.WriteString(at.UTC().Format(time.RFC3339))

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

// link renders "<console/path/id|id>" when a console URL is configured.
func (c *Client) link(path, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if c.consoleURL == "" {
		return escape(id)
	}
	u, err := url.JoinPath(c.consoleURL, path, id)
	if err != nil {
		return escape(id)
	}
	return fmt.Sprintf("<%s|%s>", u, escape(id))
}

func escape(value string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(value)
}

func writeField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	if readErr != nil {
		return fmt.Errorf("read slack response: %w", readErr)
	}
	return nil
}
