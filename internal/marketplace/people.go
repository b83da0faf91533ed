package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"github.com/target/marketplace-console/internal/domain/model"
)

// GetContractor fetches a contractor profile.
func (c *Client) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	var out model.Contractor
	err := c.do(ctx, call{resource: "contractors", method: http.MethodGet, path: pathFor("contractors", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContractors searches contractors.
func (c *Client) ListContractors(ctx context.Context, opts model.ListOptions) (*model.Page[model.Contractor], error) {
	var out model.Page[model.Contractor]
	err := c.do(ctx, call{resource: "contractors", method: http.MethodGet, path: "/contractors", query: opts.Values()}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ContractorJobs lists jobs a contractor applied to or won.
func (c *Client) ContractorJobs(
	ctx context.Context,
	id string,
	opts model.JobListOptions,
) (*model.Page[model.Job], error) {
	var out model.Page[model.Job]
	err := c.do(ctx, call{
		resource: "contractors",
		method:   http.MethodGet,
		path:     pathFor("contractors", id, "jobs"),
		query:    opts.Values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Credits returns a contractor's lead credit balance.
func (c *Client) Credits(ctx context.Context, id string) (*model.CreditBalance, error) {
	var out model.CreditBalance
	err := c.do(ctx, call{
		resource: "contractors",
		method:   http.MethodGet,
		path:     pathFor("contractors", id, "credits"),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer fetches a customer profile.
func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var out model.Customer
	err := c.do(ctx, call{resource: "customers", method: http.MethodGet, path: pathFor("customers", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerJobs lists a customer's posted jobs.
func (c *Client) CustomerJobs(ctx context.Context, id string, opts model.JobListOptions) (*model.Page[model.Job], error) {
	var out model.Page[model.Job]
	err := c.do(ctx, call{
		resource: "customers",
		method:   http.MethodGet,
		path:     pathFor("customers", id, "jobs"),
		query:    opts.Values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReviews lists reviews left for a contractor.
func (c *Client) ListReviews(
	ctx context.Context,
	contractorID string,
	opts model.ListOptions,
) (*model.Page[model.Review], error) {
	var out model.Page[model.Review]
	err := c.do(ctx, call{
		resource: "reviews",
		method:   http.MethodGet,
		path:     "/reviews/contractor/" + url.PathEscape(contractorID),
		query:    opts.Values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReview leaves a review for a completed job.
func (c *Client) CreateReview(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	var out model.Review
	if err := c.do(ctx, call{resource: "reviews", method: http.MethodPost, path: "/reviews", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
