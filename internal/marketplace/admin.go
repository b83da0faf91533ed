package marketplace

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
)

// adminGet fetches an /admin resource with the admin token.
func (c *Client) adminGet(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, call{
		resource: "admin",
		method:   http.MethodGet,
		path:     path,
		query:    query,
		scope:    domainauth.ScopeAdmin,
	}, out)
}

func (c *Client) adminSend(ctx context.Context, method, path string, body any, idemKey string, out any) error {
	return c.do(ctx, call{
		resource:       "admin",
		method:         method,
		path:           path,
		body:           body,
		scope:          domainauth.ScopeAdmin,
		idempotencyKey: idemKey,
	}, out)
}

func adminList[T any](ctx context.Context, c *Client, path string, query url.Values) (*model.Page[T], error) {
	var out model.Page[T]
	if err := c.adminGet(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func adminOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.adminGet(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardStats returns the admin dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return adminOne[model.DashboardStats](ctx, c, "/admin/dashboard/stats")
}

// Settings returns platform settings.
func (c *Client) Settings(ctx context.Context) (*model.PlatformSettings, error) {
	return adminOne[model.PlatformSettings](ctx, c, "/admin/settings")
}

// ListDisputes lists disputes matching opts.
func (c *Client) ListDisputes(ctx context.Context, opts model.DisputeListOptions) (*model.Page[model.Dispute], error) {
	return adminList[model.Dispute](ctx, c, "/admin/disputes", opts.Values())
}

// GetDispute fetches one dispute.
func (c *Client) GetDispute(ctx context.Context, id string) (*model.Dispute, error) {
	return adminOne[model.Dispute](ctx, c, pathFor("admin/disputes", id))
}

// UpdateDispute changes a dispute's status, resolution and money flags.
func (c *Client) UpdateDispute(
	ctx context.Context,
	id string,
	req model.ResolveDisputeRequest,
	idemKey string,
) (*model.Dispute, error) {
	var out model.Dispute
	if err := c.adminSend(ctx, http.MethodPatch, pathFor("admin/disputes", id), req, idemKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvoices lists invoices matching opts.
func (c *Client) ListInvoices(ctx context.Context, opts model.InvoiceListOptions) (*model.Page[model.Invoice], error) {
	return adminList[model.Invoice](ctx, c, "/admin/invoices", opts.Values())
}

// GetInvoice fetches one invoice with its line items.
func (c *Client) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	return adminOne[model.Invoice](ctx, c, pathFor("admin/invoices", id))
}

// RefundPayment refunds a payment in full, or partially when req.Amount is set.
func (c *Client) RefundPayment(ctx context.Context, req model.RefundRequest, idemKey string) (*model.Payment, error) {
	var out model.Payment
	path := pathFor("admin/payments", req.PaymentID, "refund")
	if err := c.adminSend(ctx, http.MethodPost, path, req, idemKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPayments lists payments matching opts.
func (c *Client) ListPayments(ctx context.Context, opts model.PaymentListOptions) (*model.Page[model.Payment], error) {
	return adminList[model.Payment](ctx, c, "/admin/payments", opts.Values())
}

// ListUsers lists marketplace users matching opts.
func (c *Client) ListUsers(ctx context.Context, opts model.UserListOptions) (*model.Page[model.User], error) {
	return adminList[model.User](ctx, c, "/admin/users", opts.Values())
}

// SetUserStatus suspends or reactivates a user.
func (c *Client) SetUserStatus(ctx context.Context, id string, status model.UserStatus) (*model.User, error) {
	var out model.User
	body := map[string]model.UserStatus{"status": status}
	if err := c.adminSend(ctx, http.MethodPatch, pathFor("admin/users", id, "status"), body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdmins lists admin accounts.
func (c *Client) ListAdmins(ctx context.Context, opts model.ListOptions) (*model.Page[model.User], error) {
	return adminList[model.User](ctx, c, "/admin/admins", opts.Values())
}

// ListTransactions lists platform money movements.
func (c *Client) ListTransactions(
	ctx context.Context,
	opts model.TransactionListOptions,
) (*model.Page[model.Transaction], error) {
	return adminList[model.Transaction](ctx, c, "/admin/transactions", opts.Values())
}

// ListSubscriptions lists contractor subscriptions.
func (c *Client) ListSubscriptions(
	ctx context.Context,
	opts model.SubscriptionListOptions,
) (*model.Page[model.Subscription], error) {
	return adminList[model.Subscription](ctx, c, "/admin/subscriptions", opts.Values())
}
