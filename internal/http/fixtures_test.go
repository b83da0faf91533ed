package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/export"
	"github.com/target/marketplace-console/internal/service"
)

// fakeAuth resolves the test sessions by cookie value.
type fakeAuth struct {
	SessionLoader
	login func(in service.PasswordLoginInput) (*domainauth.Session, error)

	mu        sync.Mutex
	loggedOut []string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{SessionLoader: sessionsByID(adminSession, contractorSession, customerSession, guestSession)}
}

func (f *fakeAuth) PasswordLogin(_ context.Context, in service.PasswordLoginInput) (*domainauth.Session, error) {
	if f.login == nil {
		return nil, apperrors.Unauthorized("Invalid email or password.")
	}
	return f.login(in)
}

func (f *fakeAuth) BeginLogin(context.Context, string) (*service.BeginLoginResult, error) {
	return nil, apperrors.NotFound("Single sign-on is not configured.")
}

func (f *fakeAuth) CompleteLogin(context.Context, service.CompleteLoginInput) (*domainauth.Session, error) {
	return nil, apperrors.NotFound("Single sign-on is not configured.")
}

func (f *fakeAuth) Logout(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = append(f.loggedOut, id)
	return nil
}

func (f *fakeAuth) PasswordEnabled() bool { return true }
func (f *fakeAuth) SSOEnabled() bool { return false }

type fakeJobs struct {
	jobs    map[string]*service.JobView
	perform func(req service.PerformRequest) (*service.JobView, error)
	history []*workflow.LedgerEntry

	mu        sync.Mutex
	performed []service.PerformRequest
	listed    []model.JobListOptions
}

func (f *fakeJobs) View(_ context.Context, _ *domainauth.Session, id string) (*service.JobView, error) {
	if v, ok := f.jobs[id]; ok {
		return v, nil
	}
	return nil, apperrors.NotFound("Job not found.")
}

func (f *fakeJobs) Perform(_ context.Context, _ *domainauth.Session, req service.PerformRequest) (*service.JobView, error) {
	f.mu.Lock()
	f.performed = append(f.performed, req)
	f.mu.Unlock()
	if f.perform != nil {
		return f.perform(req)
	}
	return f.View(context.Background(), nil, req.JobID)
}

func (f *fakeJobs) Mine(_ context.Context, _ *domainauth.Session, opts model.JobListOptions) (*model.Page[model.Job], error) {
	f.mu.Lock()
	f.listed = append(f.listed, opts)
	f.mu.Unlock()
	page := &model.Page[model.Job]{Limit: opts.Limit, Offset: opts.Offset}
	for _, v := range f.jobs {
		page.Items = append(page.Items, *v.Job)
	}
	page.Total = len(page.Items)
	return page, nil
}

func (f *fakeJobs) History(context.Context, workflow.LedgerFilter) ([]*workflow.LedgerEntry, error) {
	return f.history, nil
}

type fakeDisputes struct {
	dispute  *model.Dispute
	resolved []model.ResolveDisputeRequest
}

func (f *fakeDisputes) List(context.Context, *domainauth.Session, model.DisputeListOptions) (*model.Page[model.Dispute], error) {
	return &model.Page[model.Dispute]{Items: []model.Dispute{*f.dispute}, Total: 1, Limit: defaultPageSize}, nil
}

func (f *fakeDisputes) Get(_ context.Context, _ *domainauth.Session, id string) (*model.Dispute, error) {
	if f.dispute == nil || f.dispute.ID != id {
		return nil, apperrors.NotFound("Dispute not found.")
	}
	return f.dispute, nil
}

func (f *fakeDisputes) Resolve(
	_ context.Context,
	_ *domainauth.Session,
	_ string,
	req model.ResolveDisputeRequest,
) (*model.Dispute, error) {
	f.resolved = append(f.resolved, req)
	d := *f.dispute
	d.Status = req.Status
	return &d, nil
}

type fakeInvoices struct {
	invoice   *model.Invoice
	refundErr error
	refunds   []service.RefundInput
}

func (f *fakeInvoices) List(context.Context, *domainauth.Session, model.InvoiceListOptions) (*model.Page[model.Invoice], error) {
	return &model.Page[model.Invoice]{Items: []model.Invoice{*f.invoice}, Total: 1, Limit: defaultPageSize}, nil
}

func (f *fakeInvoices) Get(_ context.Context, _ *domainauth.Session, id string) (*model.Invoice, error) {
	if f.invoice == nil || f.invoice.ID != id {
		return nil, apperrors.NotFound("Invoice not found.")
	}
	return f.invoice, nil
}

func (f *fakeInvoices) Refund(_ context.Context, _ *domainauth.Session, in service.RefundInput) (*model.Payment, error) {
	f.refunds = append(f.refunds, in)
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return &model.Payment{ID: f.invoice.PaymentID, Status: model.PaymentPartiallyRefunded}, nil
}

type fakePayments struct{}

func (fakePayments) List(context.Context, *domainauth.Session, model.PaymentListOptions) (*model.Page[model.Payment], error) {
	p := model.Payment{
		ID:        "pay-1",
		InvoiceID: "inv-1",
		Amount:    12000,
		Currency:  "GBP",
		Status:    model.PaymentSucceeded,
		Provider:  "stripe",
		CreatedAt: fixedNow,
	}
	return &model.Page[model.Payment]{Items: []model.Payment{p}, Total: 1}, nil
}

type fakeUsers struct {
	users []model.User
}

func (f *fakeUsers) List(context.Context, *domainauth.Session, model.UserListOptions) (*model.Page[model.User], error) {
	return &model.Page[model.User]{Items: f.users, Total: len(f.users)}, nil
}

func (f *fakeUsers) SetStatus(_ context.Context, _ *domainauth.Session, id string, status model.UserStatus) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			u.Status = status
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("User not found.")
}

func (f *fakeUsers) ListAdmins(context.Context, *domainauth.Session, model.ListOptions) (*model.Page[model.User], error) {
	return &model.Page[model.User]{}, nil
}

type fakeSubscriptions struct{}

func (fakeSubscriptions) Current(context.Context, *domainauth.Session) (*model.Subscription, error) {
	return nil, nil
}

func (fakeSubscriptions) Plans(context.Context, *domainauth.Session) ([]model.PlanOption, error) {
	return []model.PlanOption{{Plan: model.PlanMonthly, Price: 2999, Credits: 5}}, nil
}

func (fakeSubscriptions) Subscribe(
	_ context.Context,
	_ *domainauth.Session,
	plan model.SubscriptionPlan,
) (*model.Checkout, error) {
	return &model.Checkout{SubscriptionID: "sub-" + strings.ToLower(string(plan)), ClientSecret: "secret"}, nil
}

func (fakeSubscriptions) Cancel(context.Context, *domainauth.Session) (*model.Subscription, error) {
	return &model.Subscription{ID: "sub-1", CancelAtPeriodEnd: true, CurrentPeriodEnd: fixedNow}, nil
}

func (fakeSubscriptions) List(
	context.Context,
	*domainauth.Session,
	model.SubscriptionListOptions,
) (*model.Page[model.Subscription], error) {
	return &model.Page[model.Subscription]{}, nil
}

type fakeDashboard struct{}

func (fakeDashboard) Load(context.Context, *domainauth.Session) (*service.Dashboard, error) {
	return &service.Dashboard{
		Stats:    &model.DashboardStats{TotalUsers: 42, OpenDisputes: 3, RevenueThisMonth: 123456},
		Settings: &model.PlatformSettings{CommissionRate: 10, VATRate: 20, LeadPrice: 500},
	}, nil
}

type fakeExport struct {
	rows string
	err  error
}

func (f *fakeExport) Presets(export.Dataset) []string { return []string{"default", "contact"} }

func (f *fakeExport) Export(_ context.Context, _ *domainauth.Session, _ service.ExportRequest, w io.Writer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	_, err := io.WriteString(w, f.rows)
	return strings.Count(f.rows, "\n") - 1, err
}

type fakeSearch struct {
	queries []string
}

func (f *fakeSearch) Search(
	_ context.Context,
	_ *domainauth.Session,
	field service.SearchField,
	q string,
) (*service.SearchHits, error) {
	f.queries = append(f.queries, string(field)+":"+q)
	hits := &service.SearchHits{Query: q}
	if field == service.SearchUsers {
		hits.Users = []model.User{{ID: "u-9", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Role: model.UserRoleCustomer}}
		hits.Total = 1
		return hits, nil
	}
	hits.Contractors = []model.Contractor{{BusinessName: "Lee Plumbing", Trade: "Plumber"}}
	hits.Total = 1
	return hits, nil
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func postedJob() *service.JobView {
	return &service.JobView{
		Job: &model.Job{
			ID:         "j-1",
			Title:      "Fix leaking tap",
			Location:   "Leeds",
			Status:     model.JobStatusPosted,
			Budget:     15000,
			CustomerID: "cu-1",
			CreatedAt:  fixedNow,
			UpdatedAt:  fixedNow,
		},
		Actions: []workflow.Action{workflow.ActionClaimWon},
	}
}

func testInvoice() *model.Invoice {
	return &model.Invoice{
		ID:           "inv-1",
		Number:       "INV-0001",
		ContractorID: "c-1",
		PaymentID:    "pay-1",
		Items:        []model.InvoiceItem{{Description: "Lead credits", Quantity: 1, UnitPrice: 10000}},
		Subtotal:     10000,
		VATRate:      20,
		VATAmount:    2000,
		Total:        12000,
		Currency:     "GBP",
		IssuedAt:     fixedNow,
		DueAt:        fixedNow.Add(14 * 24 * time.Hour),
		PaidAt:       &fixedNow,
	}
}

// testEnv is the full router over fakes.
type testEnv struct {
	handler       http.Handler
	auth          *fakeAuth
	jobs          *fakeJobs
	disputes      *fakeDisputes
	invoices      *fakeInvoices
	users         *fakeUsers
	export        *fakeExport
	search        *fakeSearch
	readinessErrs map[string]error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth: newFakeAuth(),
		jobs: &fakeJobs{jobs: map[string]*service.JobView{"j-1": postedJob()}},
		disputes: &fakeDisputes{dispute: &model.Dispute{
			ID:          "d-1",
			JobID:       "j-1",
			JobTitle:    "Fix leaking tap",
			RaisedBy:    "cu-1",
			Status:      model.DisputeOpen,
			Type:        model.DisputeTypeQuality,
			Priority:    model.PriorityMedium,
			Description: "Tap still drips.",
			CreatedAt:   fixedNow,
		}},
		invoices: &fakeInvoices{invoice: testInvoice()},
		users: &fakeUsers{users: []model.User{{
			ID:        "u-1",
			Email:     "sam@example.com",
			FirstName: "Sam",
			LastName:  "Hart",
			Role:      model.UserRoleContractor,
			Status:    model.UserActive,
			CreatedAt: fixedNow,
		}}},
		export:        &fakeExport{rows: "id,email\nu-1,sam@example.com\n"},
		search:        &fakeSearch{},
		readinessErrs: map[string]error{},
	}
	h, err := NewRouter(RouterServices{
		Services: Services{
			Jobs:          env.jobs,
			Disputes:      env.disputes,
			Invoices:      env.invoices,
			Payments:      fakePayments{},
			Users:         env.users,
			Subscriptions: fakeSubscriptions{},
			Dashboard:     fakeDashboard{},
			Export:        env.export,
			Search:        env.search,
		},
		Auth: env.auth,
		Readiness: map[string]ReadinessCheck{
			"redis": func(context.Context) error { return env.readinessErrs["redis"] },
		},
		Logger: quietLogger,
	})
	require.NoError(t, err)
	env.handler = h
	return env
}

// req describes one request against the test router.
type req struct {
	method string
	target string
	sess   *domainauth.Session
	htmx   bool
	html   bool
	form   url.Values
	json   string
}

func (e *testEnv) do(t *testing.T, rq req) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch {
	case rq.form != nil:
		body = strings.NewReader(rq.form.Encode())
	case rq.json != "":
		body = strings.NewReader(rq.json)
	}
	r := httptest.NewRequest(rq.method, rq.target, body)
	switch {
	case rq.form != nil:
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case rq.json != "":
		r.Header.Set("Content-Type", "application/json")
	}
	if rq.htmx {
		r.Header.Set("Hx-Request", "true")
	}
	if rq.html {
		r.Header.Set("Accept", "text/html")
	} else if !rq.htmx {
		r.Header.Set("Accept", "application/json")
	}
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: testCSRFToken})
	r.Header.Set(CSRFHeaderName, testCSRFToken)
	withSessionCookie(r, rq.sess)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

// toast decodes the showToast payload from Hx-Trigger.
func toast(t *testing.T, rec *httptest.ResponseRecorder) Toast {
	t.Helper()
	var events map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("Hx-Trigger")), &events))
	var out Toast
	require.NoError(t, json.Unmarshal(events["showToast"], &out))
	return out
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
