package marketplace

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/marketplace-console/internal/domain/model"
)

// pathFor builds "/collection/{id}/rest..." with the id path-escaped.
func pathFor(collection, id string, rest ...string) string {
	parts := append([]string{"", collection, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

func jobPath(id string, rest ...string) string { return pathFor("jobs", id, rest...) }

// ListJobs lists jobs visible to the caller.
func (c *Client) ListJobs(ctx context.Context, opts model.JobListOptions) (*model.Page[model.Job], error) {
	var out model.Page[model.Job]
	err := c.do(ctx, call{resource: "jobs", method: http.MethodGet, path: "/jobs", query: opts.Values()}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJob fetches one job with its applications and lead access records.
func (c *Client) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	if err := c.do(ctx, call{resource: "jobs", method: http.MethodGet, path: jobPath(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateJob posts a new job for the signed-in customer.
func (c *Client) CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.Job, error) {
	var out model.Job
	if err := c.do(ctx, call{resource: "jobs", method: http.MethodPost, path: "/jobs", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyToJob submits the signed-in contractor's application.
func (c *Client) ApplyToJob(ctx context.Context, id string, req model.ApplyRequest) (*model.JobApplication, error) {
	var out model.JobApplication
	err := c.do(ctx, call{resource: "jobs", method: http.MethodPost, path: jobPath(id, "apply"), body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UnlockLead spends a credit (or payment) to reveal the customer's contact details.
func (c *Client) UnlockLead(ctx context.Context, id string) (*model.JobAccess, error) {
	var out model.JobAccess
	if err := c.do(ctx, call{resource: "jobs", method: http.MethodPost, path: jobPath(id, "access")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workflow mutations. Each carries an idempotency key so a retried submit can be recognised.

// ClaimWon records the contractor's claim that the customer hired them.
func (c *Client) ClaimWon(ctx context.Context, id, idemKey string) error {
	return c.mutateJob(ctx, id, "claim-won", nil, idemKey)
}

// ConfirmWinner confirms the claiming contractor and moves the job to IN_PROGRESS.
func (c *Client) ConfirmWinner(ctx context.Context, id, idemKey string) error {
	return c.mutateJob(ctx, id, "confirm-winner", nil, idemKey)
}

// MarkAsCompleted submits the winner's final price.
func (c *Client) MarkAsCompleted(ctx context.Context, id string, finalAmount model.Money, idemKey string) error {
	return c.mutateJob(ctx, id, "complete", map[string]model.Money{"finalAmount": finalAmount}, idemKey)
}

// ConfirmJobCompletion accepts the final price.
func (c *Client) ConfirmJobCompletion(ctx context.Context, id, idemKey string) error {
	return c.mutateJob(ctx, id, "confirm-completion", map[string]bool{"approved": true}, idemKey)
}

// DeclineJobCompletion rejects the final price, which opens a dispute.
func (c *Client) DeclineJobCompletion(ctx context.Context, id, idemKey string) error {
	return c.mutateJob(ctx, id, "confirm-completion", map[string]bool{"approved": false}, idemKey)
}

// SuggestPriceChange proposes a different final price.
func (c *Client) SuggestPriceChange(ctx context.Context, id string, amount model.Money, idemKey string) error {
	return c.mutateJob(ctx, id, "suggest-price", map[string]model.Money{"suggestedAmount": amount}, idemKey)
}

// RequestReview asks the customer to leave a review.
func (c *Client) RequestReview(ctx context.Context, id, idemKey string) error {
	return c.mutateJob(ctx, id, "request-review", nil, idemKey)
}

func (c *Client) mutateJob(ctx context.Context, id, verb string, body any, idemKey string) error {
	return c.do(ctx, call{
		resource:       "jobs",
		method:         http.MethodPost,
		path:           jobPath(id, verb),
		body:           body,
		idempotencyKey: idemKey,
	}, nil)
}
