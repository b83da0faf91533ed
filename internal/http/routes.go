package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/observability/statsd"
)

// RouterServices holds everything the HTTP router wires together.
type RouterServices struct {
	Services
	Auth         AuthServiceInterface
	CookieDomain string
	// Renderer overrides the embedded templates. Nil parses them on startup.
	Renderer *TemplateRenderer
	// Readiness checks back GET /readyz, e.g. Redis and Postgres pings.
	Readiness map[string]ReadinessCheck
	// Compression enables gzip when non-nil.
	Compression *CompressionConfig
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// routeGuards are the role checks routes are registered behind.
type routeGuards struct {
	anyone     Middleware
	admin      Middleware
	member     Middleware
	contractor Middleware
}

// NewRouter creates the console's HTTP handler: JSON API under /api, HTML screens elsewhere.
func NewRouter(s RouterServices) (http.Handler, error) {
	if s.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := s.Renderer
	if renderer == nil {
		var err error
		renderer, err = NewTemplateRenderer(TemplateRendererConfig{Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	ui := &UIHandlers{T: renderer, Services: s.Services, Logger: logger}
	api := &APIHandlers{Services: s.Services, Logger: logger}
	auth := &AuthHandlers{Svc: s.Auth, CookieDomain: s.CookieDomain, UI: ui, Logger: logger}
	guards := routeGuards{
		anyone:     RequireAuth(s.Auth),
		admin:      RequireAuth(s.Auth, domainauth.RoleAdmin),
		member:     RequireAuth(s.Auth, domainauth.RoleContractor, domainauth.RoleCustomer),
		contractor: RequireAuth(s.Auth, domainauth.RoleContractor),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.Handle("GET /readyz", readinessHandler(s.Readiness))

	registerAuthRoutes(mux, auth)
	registerJobRoutes(mux, ui, api, guards)
	registerAdminRoutes(mux, ui, api, guards)
	registerAccountRoutes(mux, ui, api, guards)

	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ui.fail(w, r, apperrors.NotFound("We couldn't find that page."))
	}))

	mws := []Middleware{Recover(logger), Logging(logger, s.Metrics)}
	if s.Compression != nil {
		mws = append(mws, Compression(*s.Compression))
	}
	mws = append(mws,
		BrowserDetection(),
		CSRFProtection(CSRFConfig{CookieDomain: s.CookieDomain, Exempt: csrfExempt}),
	)
	return Chain(mux, mws...), nil
}

// csrfExempt skips the JSON API, which only accepts application/json bodies, and probes.
func csrfExempt(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" || r.URL.Path == "/readyz"
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.LoginPage)
	mux.HandleFunc("POST /auth/login", h.LoginSubmit)
	mux.HandleFunc("GET /auth/sso", h.SSOStart)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/signed-out", h.SignedOut)

	mux.HandleFunc("POST /api/auth/login", h.APILogin)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/me", h.Me)
}

func registerJobRoutes(mux *http.ServeMux, ui *UIHandlers, api *APIHandlers, g routeGuards) {
	if ui.Jobs == nil {
		return
	}
	mux.Handle("GET /api/jobs", g.member(http.HandlerFunc(api.ListMyJobs)))
	mux.Handle("GET /api/jobs/{id}", g.anyone(http.HandlerFunc(api.GetJob)))
	mux.Handle("POST /api/jobs/{id}/actions", g.member(http.HandlerFunc(api.PerformJobAction)))
	mux.Handle("GET /api/admin/ledger", g.admin(http.HandlerFunc(api.LedgerHistory)))

	mux.Handle("GET /{$}", g.anyone(http.HandlerFunc(ui.Home)))
	mux.Handle("GET /jobs/{id}", g.anyone(http.HandlerFunc(ui.JobPage)))
	mux.Handle("POST /jobs/{id}/actions/{action}", g.member(http.HandlerFunc(ui.JobAction)))
}

func registerAdminRoutes(mux *http.ServeMux, ui *UIHandlers, api *APIHandlers, g routeGuards) {
	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, g.admin(h))
	}

	if ui.Dashboard != nil {
		admin("GET /api/admin/dashboard", api.GetDashboard)
		admin("GET /admin", ui.DashboardPage)
	}
	if ui.Disputes != nil {
		admin("GET /api/admin/disputes", api.ListDisputes)
		admin("GET /api/admin/disputes/{id}", api.GetDispute)
		admin("PATCH /api/admin/disputes/{id}", api.ResolveDispute)
		admin("GET /admin/disputes", ui.DisputesPage)
		admin("GET /admin/disputes/{id}", ui.DisputePage)
		admin("POST /admin/disputes/{id}", ui.ResolveDispute)
	}
	if ui.Invoices != nil {
		admin("GET /api/admin/invoices", api.ListInvoices)
		admin("GET /api/admin/invoices/{id}", api.GetInvoice)
		admin("POST /api/admin/invoices/{id}/refund", api.RefundInvoice)
		admin("GET /admin/invoices", ui.InvoicesPage)
		admin("GET /admin/invoices/{id}", ui.InvoicePage)
		admin("GET /admin/invoices/{id}/refund", ui.RefundDialog)
		admin("POST /admin/invoices/{id}/refund", ui.RefundSubmit)
	}
	if ui.Payments != nil {
		admin("GET /api/admin/payments", api.ListPayments)
		admin("GET /admin/payments", ui.PaymentsPage)
	}
	if ui.Users != nil {
		admin("GET /api/admin/users", api.ListUsers)
		admin("PATCH /api/admin/users/{id}/status", api.SetUserStatus)
		admin("GET /api/admin/admins", api.ListAdmins)
		admin("GET /admin/users", ui.UsersPage)
		admin("GET /admin/admins", ui.AdminsPage)
		admin("POST /admin/users/{id}/status", ui.UserStatus)
	}
	if ui.Subscriptions != nil {
		admin("GET /api/admin/subscriptions", api.ListSubscriptions)
		admin("GET /admin/subscriptions", ui.SubscriptionsPage)
	}
	if ui.Export != nil {
		admin("GET /api/admin/export/presets", api.ExportPresets)
		admin("GET /api/admin/export/{file}", api.ExportCSV)
	}
}

func registerAccountRoutes(mux *http.ServeMux, ui *UIHandlers, api *APIHandlers, g routeGuards) {
	if ui.Subscriptions != nil {
		mux.Handle("GET /api/subscriptions/plans", g.anyone(http.HandlerFunc(api.ListPlans)))
		mux.Handle("GET /api/subscriptions/current", g.contractor(http.HandlerFunc(api.CurrentSubscription)))
		mux.Handle("POST /api/subscriptions", g.contractor(http.HandlerFunc(api.Subscribe)))
		mux.Handle("POST /api/subscriptions/cancel", g.contractor(http.HandlerFunc(api.CancelSubscription)))

		mux.Handle("GET /subscription", g.contractor(http.HandlerFunc(ui.SubscriptionPage)))
		mux.Handle("POST /subscription", g.contractor(http.HandlerFunc(ui.Subscribe)))
		mux.Handle("POST /subscription/cancel", g.contractor(http.HandlerFunc(ui.CancelSubscription)))
	}
	if ui.Search != nil {
		mux.Handle("GET /api/search", g.anyone(http.HandlerFunc(api.SearchDirectory)))
		mux.Handle("GET /search", g.anyone(http.HandlerFunc(ui.SearchHits)))
	}
}
