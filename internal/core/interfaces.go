// Package core declares the marketplace backend capabilities the services depend on.
// *marketplace.Client satisfies all of them; tests substitute gomock doubles from internal/mocks.
package core

import (
	"context"

	"github.com/target/marketplace-console/internal/domain/model"
)

// JobWorkflowBackend reads jobs and requests workflow transitions.
type JobWorkflowBackend interface {
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ClaimWon(ctx context.Context, id, idemKey string) error
	ConfirmWinner(ctx context.Context, id, idemKey string) error
	MarkAsCompleted(ctx context.Context, id string, finalAmount model.Money, idemKey string) error
	ConfirmJobCompletion(ctx context.Context, id, idemKey string) error
	DeclineJobCompletion(ctx context.Context, id, idemKey string) error
	SuggestPriceChange(ctx context.Context, id string, amount model.Money, idemKey string) error
	RequestReview(ctx context.Context, id, idemKey string) error
}

// DisputeBackend backs the admin dispute screen.
type DisputeBackend interface {
	ListDisputes(ctx context.Context, opts model.DisputeListOptions) (*model.Page[model.Dispute], error)
	GetDispute(ctx context.Context, id string) (*model.Dispute, error)
	UpdateDispute(ctx context.Context, id string, req model.ResolveDisputeRequest, idemKey string) (*model.Dispute, error)
}

// BillingBackend backs the admin invoice and payment screens.
type BillingBackend interface {
	ListInvoices(ctx context.Context, opts model.InvoiceListOptions) (*model.Page[model.Invoice], error)
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
	ListPayments(ctx context.Context, opts model.PaymentListOptions) (*model.Page[model.Payment], error)
	RefundPayment(ctx context.Context, req model.RefundRequest, idemKey string) (*model.Payment, error)
}

// UserBackend backs the admin user and admin-account screens.
type UserBackend interface {
	ListUsers(ctx context.Context, opts model.UserListOptions) (*model.Page[model.User], error)
	SetUserStatus(ctx context.Context, id string, status model.UserStatus) (*model.User, error)
	ListAdmins(ctx context.Context, opts model.ListOptions) (*model.Page[model.User], error)
}

// SubscriptionBackend covers contractor self-service and the admin subscription table.
type SubscriptionBackend interface {
	CurrentSubscription(ctx context.Context) (*model.Subscription, error)
	Plans(ctx context.Context) ([]model.PlanOption, error)
	Subscribe(ctx context.Context, plan model.SubscriptionPlan, idemKey string) (*model.Checkout, error)
	CancelSubscription(ctx context.Context) (*model.Subscription, error)
	ListSubscriptions(ctx context.Context, opts model.SubscriptionListOptions) (*model.Page[model.Subscription], error)
}

// DashboardBackend provides the two independent admin dashboard reads.
type DashboardBackend interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	Settings(ctx context.Context) (*model.PlatformSettings, error)
}

// ExportBackend lists the datasets that can be exported to CSV.
type ExportBackend interface {
	ListUsers(ctx context.Context, opts model.UserListOptions) (*model.Page[model.User], error)
	ListAdmins(ctx context.Context, opts model.ListOptions) (*model.Page[model.User], error)
	ListSubscriptions(ctx context.Context, opts model.SubscriptionListOptions) (*model.Page[model.Subscription], error)
	ListTransactions(ctx context.Context, opts model.TransactionListOptions) (*model.Page[model.Transaction], error)
}

// DirectoryBackend answers search-as-you-type queries.
type DirectoryBackend interface {
	ListContractors(ctx context.Context, opts model.ListOptions) (*model.Page[model.Contractor], error)
	ListUsers(ctx context.Context, opts model.UserListOptions) (*model.Page[model.User], error)
}

// JobListBackend lists the jobs a contractor works on or a customer posted.
type JobListBackend interface {
	ContractorJobs(ctx context.Context, id string, opts model.JobListOptions) (*model.Page[model.Job], error)
	CustomerJobs(ctx context.Context, id string, opts model.JobListOptions) (*model.Page[model.Job], error)
}
