package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/export"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/http/validation"
	"github.com/target/marketplace-console/internal/service"
)

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// redirectWithFlash finishes a form post: htmx navigates via Hx-Redirect, plain forms get a 303.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, flash string) {
	u := url.URL{Path: path}
	if flash != "" {
		u.RawQuery = url.Values{"flash": {flash}}.Encode()
	}
	if IsHTMX(r) {
		HTMX(w).Redirect(u.String())
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// DashboardPage renders the admin dashboard.
// GET /admin.
func (h *UIHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Load(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Dashboard", CurrentPage: PageDashboard}).
		With("Stats", d.Stats).
		With("Settings", d.Settings).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// DisputesPage lists disputes with status, type and priority filters.
// GET /admin/disputes.
func (h *UIHandlers) DisputesPage(w http.ResponseWriter, r *http.Request) {
	opts := disputeListOptions(r)
	page, err := h.Disputes.List(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Disputes", CurrentPage: PageDisputes}).
		With("Disputes", page.Items).
		With("Filter", opts).
		With("Statuses", model.DisputeStatuses).
		With("Types", model.DisputeTypes).
		With("Priorities", model.DisputePriorities).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

type disputeForm struct {
	Status             string
	Priority           string
	Resolution         string
	RefundIssued       bool
	CommissionAdjusted bool
	AdminNotes         string
}

func disputeFormFrom(d *model.Dispute) disputeForm {
	return disputeForm{
		Status:             string(d.Status),
		Priority:           string(d.Priority),
		Resolution:         d.Resolution,
		RefundIssued:       d.RefundIssued,
		CommissionAdjusted: d.CommissionAdjusted,
		AdminNotes:         d.AdminNotes,
	}
}

func (h *UIHandlers) renderDispute(
	w http.ResponseWriter,
	r *http.Request,
	d *model.Dispute,
	form disputeForm,
	errs map[string]string,
) {
	status := http.StatusOK
	b := NewTemplateData(r, PageMeta{Title: "Dispute", CurrentPage: PageDispute}).
		With("Dispute", d).
		With("Form", form).
		With("Statuses", model.DisputeStatuses).
		With("Priorities", model.DisputePriorities).
		WithFieldErrors(errs)
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
		b.WithError(errMsgFixBelow)
	}
	h.render(w, r, status, b.Build())
}

// DisputePage shows one dispute and the resolution form.
// GET /admin/disputes/{id}.
func (h *UIHandlers) DisputePage(w http.ResponseWriter, r *http.Request) {
	d, err := h.Disputes.Get(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderDispute(w, r, d, disputeFormFrom(d), nil)
}

// ResolveDispute handles the resolution form.
// POST /admin/disputes/{id}.
func (h *UIHandlers) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form := disputeForm{
		Status:             strings.ToUpper(strings.TrimSpace(r.PostFormValue("status"))),
		Priority:           strings.ToUpper(strings.TrimSpace(r.PostFormValue("priority"))),
		Resolution:         strings.TrimSpace(r.PostFormValue("resolution")),
		RefundIssued:       r.PostFormValue("refund_issued") != "",
		CommissionAdjusted: r.PostFormValue("commission_adjusted") != "",
		AdminNotes:         strings.TrimSpace(r.PostFormValue("admin_notes")),
	}

	fv := validation.New().
		Validate("status", form.Status,
			validation.Required("Status", 32),
			validation.OneOf("Status", enumStrings(model.DisputeStatuses))).
		Validate("priority", form.Priority, validation.OneOf("Priority", enumStrings(model.DisputePriorities))).
		Validate("admin_notes", form.AdminNotes, validation.Optional("Admin notes", 2000))
	if model.DisputeStatus(form.Status).Final() {
		fv.Validate("resolution", form.Resolution, validation.Required("Resolution", 2000))
	}
	if !fv.Valid() {
		h.disputeFormFailed(w, r, id, form, fv)
		return
	}

	_, err := h.Disputes.Resolve(r.Context(), requestSession(r), id, model.ResolveDisputeRequest{
		Status:             model.DisputeStatus(form.Status),
		Priority:           model.DisputePriority(form.Priority),
		Resolution:         form.Resolution,
		RefundIssued:       form.RefundIssued,
		CommissionAdjusted: form.CommissionAdjusted,
		AdminNotes:         form.AdminNotes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirectWithFlash(w, r, "/admin/disputes/"+url.PathEscape(id), "Dispute updated.")
}

// disputeFormFailed toasts the first problem for htmx and re-renders the form otherwise.
func (h *UIHandlers) disputeFormFailed(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	form disputeForm,
	fv *validation.FieldValidator,
) {
	if IsHTMX(r) {
		h.fail(w, r, fv.Err())
		return
	}
	d, err := h.Disputes.Get(r.Context(), requestSession(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderDispute(w, r, d, form, fv.Errors())
}

// invoiceRow pairs an invoice with its derived status.
type invoiceRow struct {
	model.Invoice
	Status model.InvoiceStatus
}

func invoiceRows(items []model.Invoice, now time.Time) []invoiceRow {
	out := make([]invoiceRow, 0, len(items))
	for _, inv := range items {
		out = append(out, invoiceRow{Invoice: inv, Status: inv.Status(now)})
	}
	return out
}

// InvoicesPage lists invoices filtered by paid, overdue or pending.
// GET /admin/invoices.
func (h *UIHandlers) InvoicesPage(w http.ResponseWriter, r *http.Request) {
	opts := invoiceListOptions(r)
	page, err := h.Invoices.List(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Invoices", CurrentPage: PageInvoices}).
		With("Invoices", invoiceRows(page.Items, time.Now())).
		With("Status", string(opts.Status)).
		With("Statuses", []model.InvoiceStatus{model.InvoicePaid, model.InvoiceOverdue, model.InvoicePending}).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// InvoicePage shows an invoice with its line items and the refund button.
// GET /admin/invoices/{id}.
func (h *UIHandlers) InvoicePage(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Invoice " + inv.Number, CurrentPage: PageInvoice}).
		With("Invoice", invoiceRow{Invoice: *inv, Status: inv.Status(time.Now())}).
		Build()
	h.render(w, r, http.StatusOK, data)
}

type refundForm struct {
	Partial bool
	Amount  string
	Reason  string
}

func (h *UIHandlers) renderRefundDialog(
	w http.ResponseWriter,
	r *http.Request,
	inv *model.Invoice,
	form refundForm,
	errs map[string]string,
) {
	b := NewTemplateData(r, PageMeta{}).
		With("Invoice", inv).
		With("Form", form).
		With("Open", true).
		WithFieldErrors(errs)
	h.fragment(w, FragmentRefundDialog, b.Build())
}

// RefundDialog opens the refund dialog for an invoice.
// GET /admin/invoices/{id}/refund.
func (h *UIHandlers) RefundDialog(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderRefundDialog(w, r, inv, refundForm{}, nil)
}

// RefundSubmit validates the dialog against the invoice, then refunds. Field problems re-render
// the dialog; backend failures raise a toast and keep the dialog as it was.
// POST /admin/invoices/{id}/refund.
func (h *UIHandlers) RefundSubmit(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	inv, err := h.Invoices.Get(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	form := refundForm{
		Partial: r.PostFormValue("mode") == "partial",
		Amount:  strings.TrimSpace(r.PostFormValue("amount")),
		Reason:  strings.TrimSpace(r.PostFormValue("reason")),
	}
	fv := validation.New().Validate("reason", form.Reason, validation.Required("Reason", 500))
	if form.Partial {
		fv.Validate("amount", form.Amount,
			validation.Required("Refund amount", 32),
			validation.Amount("Refund amount", inv.Total))
	}
	if !fv.Valid() {
		h.renderRefundDialog(w, r, inv, form, fv.Errors())
		return
	}
	in := service.RefundInput{InvoiceID: inv.ID, Reason: form.Reason}
	if form.Partial {
		m, _ := model.ParseMoney(form.Amount)
		in.Amount = &m
	}
	if err := service.ValidateRefund(inv, in); err != nil {
		field := apperrors.GetField(err)
		if field == "" {
			field = "form"
		}
		h.renderRefundDialog(w, r, inv, form, map[string]string{field: apperrors.GetMessage(err, errMsgFixBelow)})
		return
	}

	payment, err := h.Invoices.Refund(r.Context(), sess, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	refunded := inv.Total
	if in.Amount != nil {
		refunded = *in.Amount
	}
	msg := fmt.Sprintf("Refund of %s issued.", refunded)
	if !IsHTMX(r) {
		redirectWithFlash(w, r, "/admin/invoices/"+url.PathEscape(inv.ID), msg)
		return
	}
	HTMX(w).Toast(ToastSuccess, msg).Trigger("refundIssued", map[string]string{
		"invoice_id": inv.ID,
		"payment_id": payment.ID,
	})
	h.fragment(w, FragmentRefundDialog, NewTemplateData(r, PageMeta{}).With("Invoice", inv).With("Open", false).Build())
}

// PaymentsPage lists payments.
// GET /admin/payments.
func (h *UIHandlers) PaymentsPage(w http.ResponseWriter, r *http.Request) {
	opts := model.PaymentListOptions{
		ListOptions: listOptions(r),
		Status:      model.PaymentStatus(upper(r.URL.Query(), "status")),
	}
	page, err := h.Payments.List(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Payments", CurrentPage: PagePayments}).
		With("Payments", page.Items).
		With("Status", string(opts.Status)).
		With("Statuses", []model.PaymentStatus{
			model.PaymentSucceeded,
			model.PaymentPending,
			model.PaymentFailed,
			model.PaymentRefunded,
			model.PaymentPartiallyRefunded,
		}).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

func (h *UIHandlers) exportPresets(dataset export.Dataset) []string {
	if h.Export == nil {
		return nil
	}
	return h.Export.Presets(dataset)
}

// UsersPage lists accounts with role and status filters.
// GET /admin/users.
func (h *UIHandlers) UsersPage(w http.ResponseWriter, r *http.Request) {
	opts := userListOptions(r)
	page, err := h.Users.List(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Users", CurrentPage: PageUsers}).
		With("Users", page.Items).
		With("Filter", opts).
		With("Dataset", export.DatasetUsers).
		With("Presets", h.exportPresets(export.DatasetUsers)).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// AdminsPage lists admin accounts.
// GET /admin/admins.
func (h *UIHandlers) AdminsPage(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	page, err := h.Users.ListAdmins(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Admins", CurrentPage: PageUsers}).
		With("Users", page.Items).
		With("AdminsOnly", true).
		With("Filter", model.UserListOptions{ListOptions: opts}).
		With("Dataset", export.DatasetAdmins).
		With("Presets", h.exportPresets(export.DatasetAdmins)).
		WithPagination(paginationFor(r, page, opts)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// UserStatus suspends or reactivates one account and returns its refreshed table row.
// POST /admin/users/{id}/status.
func (h *UIHandlers) UserStatus(w http.ResponseWriter, r *http.Request) {
	status := model.UserStatus(strings.ToUpper(strings.TrimSpace(r.PostFormValue("status"))))
	u, err := h.Users.SetStatus(r.Context(), requestSession(r), r.PathValue("id"), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := fmt.Sprintf("%s is now %s.", u.FullName(), strings.ToLower(string(u.Status)))
	if !IsHTMX(r) {
		redirectWithFlash(w, r, "/admin/users", msg)
		return
	}
	HTMX(w).Toast(ToastSuccess, msg)
	h.fragment(w, FragmentUserRow, NewTemplateData(r, PageMeta{}).With("User", u).Build())
}

// SubscriptionsPage lists contractor subscriptions.
// GET /admin/subscriptions.
func (h *UIHandlers) SubscriptionsPage(w http.ResponseWriter, r *http.Request) {
	opts := subscriptionListOptions(r)
	page, err := h.Subscriptions.List(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Subscriptions", CurrentPage: PageSubscriptions}).
		With("Subscriptions", page.Items).
		With("Filter", opts).
		With("Plans", []model.SubscriptionPlan{model.PlanMonthly, model.PlanSixMonths, model.PlanYearly}).
		With("Dataset", export.DatasetSubscriptions).
		With("Presets", h.exportPresets(export.DatasetSubscriptions)).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}
