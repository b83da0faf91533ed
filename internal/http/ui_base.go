package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	"github.com/target/marketplace-console/internal/export"
	"github.com/target/marketplace-console/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// JobsService is what the job screens need.
type JobsService interface {
	View(ctx context.Context, sess *domainauth.Session, jobID string) (*service.JobView, error)
	Perform(ctx context.Context, sess *domainauth.Session, req service.PerformRequest) (*service.JobView, error)
	Mine(ctx context.Context, sess *domainauth.Session, opts model.JobListOptions) (*model.Page[model.Job], error)
	History(ctx context.Context, filter workflow.LedgerFilter) ([]*workflow.LedgerEntry, error)
}

// DisputesService is a minimal interface for the dispute screens.
type DisputesService interface {
	List(
		ctx context.Context,
		sess *domainauth.Session,
		opts model.DisputeListOptions,
	) (*model.Page[model.Dispute], error)
	Get(ctx context.Context, sess *domainauth.Session, id string) (*model.Dispute, error)
	Resolve(
		ctx context.Context,
		sess *domainauth.Session,
		id string,
		req model.ResolveDisputeRequest,
	) (*model.Dispute, error)
}

// InvoicesService is a minimal interface for the invoice screens.
type InvoicesService interface {
	List(
		ctx context.Context,
		sess *domainauth.Session,
		opts model.InvoiceListOptions,
	) (*model.Page[model.Invoice], error)
	Get(ctx context.Context, sess *domainauth.Session, id string) (*model.Invoice, error)
	Refund(ctx context.Context, sess *domainauth.Session, in service.RefundInput) (*model.Payment, error)
}

// PaymentsService lists payments.
type PaymentsService interface {
	List(
		ctx context.Context,
		sess *domainauth.Session,
		opts model.PaymentListOptions,
	) (*model.Page[model.Payment], error)
}

// UsersService is a minimal interface for the user and admin-account screens.
type UsersService interface {
	List(ctx context.Context, sess *domainauth.Session, opts model.UserListOptions) (*model.Page[model.User], error)
	SetStatus(ctx context.Context, sess *domainauth.Session, id string, status model.UserStatus) (*model.User, error)
	ListAdmins(ctx context.Context, sess *domainauth.Session, opts model.ListOptions) (*model.Page[model.User], error)
}

// SubscriptionsService covers contractor self-service and the admin table.
type SubscriptionsService interface {
	Current(ctx context.Context, sess *domainauth.Session) (*model.Subscription, error)
	Plans(ctx context.Context, sess *domainauth.Session) ([]model.PlanOption, error)
	Subscribe(ctx context.Context, sess *domainauth.Session, plan model.SubscriptionPlan) (*model.Checkout, error)
	Cancel(ctx context.Context, sess *domainauth.Session) (*model.Subscription, error)
	List(
		ctx context.Context,
		sess *domainauth.Session,
		opts model.SubscriptionListOptions,
	) (*model.Page[model.Subscription], error)
}

// DashboardLoader loads the admin dashboard.
type DashboardLoader interface {
	Load(ctx context.Context, sess *domainauth.Session) (*service.Dashboard, error)
}

// Exporter writes admin datasets as CSV.
type Exporter interface {
	Presets(dataset export.Dataset) []string
	Export(ctx context.Context, sess *domainauth.Session, req service.ExportRequest, w io.Writer) (int, error)
}

// Searcher answers search-as-you-type.
type Searcher interface {
	Search(
		ctx context.Context,
		sess *domainauth.Session,
		field service.SearchField,
		query string,
	) (*service.SearchHits, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their handler interfaces.
var (
	_ JobsService          = (*service.JobWorkflowService)(nil)
	_ DisputesService      = (*service.DisputeService)(nil)
	_ InvoicesService      = (*service.InvoiceService)(nil)
	_ PaymentsService      = (*service.PaymentService)(nil)
	_ UsersService         = (*service.UserService)(nil)
	_ SubscriptionsService = (*service.SubscriptionService)(nil)
	_ DashboardLoader      = (*service.DashboardService)(nil)
	_ Exporter             = (*service.ExportService)(nil)
	_ Searcher             = (*service.SearchService)(nil)
)

// Services bundles the domain services behind the console's routes.
// A nil service leaves its routes unregistered.
type Services struct {
	Jobs          JobsService
	Disputes      DisputesService
	Invoices      InvoicesService
	Payments      PaymentsService
	Users         UsersService
	Subscriptions SubscriptionsService
	Dashboard     DashboardLoader
	Export        Exporter
	Search        Searcher
}

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T *TemplateRenderer
	Services
	Logger *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// render writes a page: the whole layout for normal navigation, only the content for htmx swaps.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	var err error
	if WantsPartial(r) {
		err = h.T.RenderPartial(w, data)
	} else {
		err = h.T.RenderFull(w, data)
	}
	if err != nil && status == http.StatusOK {
		http.Error(w, errMsgUnexpected, http.StatusInternalServerError)
	}
}

// fragment renders one partial template, e.g. the workflow panel after a button press.
func (h *UIHandlers) fragment(w http.ResponseWriter, name string, data map[string]any) {
	if err := h.T.RenderFragment(w, name, data); err != nil {
		http.Error(w, errMsgUnexpected, http.StatusInternalServerError)
	}
}

// fail answers with a toast for htmx, an error page for browsers, or JSON otherwise.
func (h *UIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	RenderError(ErrorOpts{W: w, R: r, Err: err, Logger: h.logger(), Page: h.errorPage})
}

func (h *UIHandlers) errorPage(w http.ResponseWriter, r *http.Request, f failure) {
	data := NewTemplateData(r, PageMeta{Title: "Marketplace Console - Error", CurrentPage: PageError}).
		WithError(f.Message).
		With("Status", f.Status).
		Build()
	h.render(w, r, f.Status, data)
}

// APIHandlers serves the JSON API under /api.
type APIHandlers struct {
	Services
	Logger *slog.Logger
}

func (h *APIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	RenderError(ErrorOpts{W: w, R: r, Err: err, Logger: h.logger()})
}

// listResponse is the JSON shape of every list endpoint.
type listResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func listJSON[T any](page *model.Page[T]) listResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: page.Total, Limit: page.Limit, Offset: page.Offset}
}
