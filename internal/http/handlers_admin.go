package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/service"
)

func disputeListOptions(r *http.Request) model.DisputeListOptions {
	q := r.URL.Query()
	return model.DisputeListOptions{
		ListOptions: listOptions(r),
		Status:      model.DisputeStatus(upper(q, "status")),
		Type:        model.DisputeType(upper(q, "type")),
		Priority:    model.DisputePriority(upper(q, "priority")),
	}
}

// ListDisputes handles GET /api/admin/disputes.
func (h *APIHandlers) ListDisputes(w http.ResponseWriter, r *http.Request) {
	page, err := h.Disputes.List(r.Context(), requestSession(r), disputeListOptions(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

// GetDispute handles GET /api/admin/disputes/{id}.
func (h *APIHandlers) GetDispute(w http.ResponseWriter, r *http.Request) {
	d, err := h.Disputes.Get(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// ResolveDispute updates status, priority and resolution.
// PATCH /api/admin/disputes/{id}.
func (h *APIHandlers) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req model.ResolveDisputeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Status = model.DisputeStatus(strings.ToUpper(string(req.Status)))
	req.Priority = model.DisputePriority(strings.ToUpper(string(req.Priority)))
	d, err := h.Disputes.Resolve(r.Context(), requestSession(r), r.PathValue("id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// invoiceJSON adds the derived status, which the backend does not store.
type invoiceJSON struct {
	*model.Invoice
	Status model.InvoiceStatus `json:"status"`
}

func invoicesJSON(items []model.Invoice, now time.Time) []invoiceJSON {
	out := make([]invoiceJSON, 0, len(items))
	for i := range items {
		out = append(out, invoiceJSON{Invoice: &items[i], Status: items[i].Status(now)})
	}
	return out
}

func invoiceListOptions(r *http.Request) model.InvoiceListOptions {
	q := r.URL.Query()
	return model.InvoiceListOptions{
		ListOptions:  listOptions(r),
		Status:       model.InvoiceStatus(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		ContractorID: strings.TrimSpace(q.Get("contractor_id")),
	}
}

// ListInvoices handles GET /api/admin/invoices?status=paid|overdue|pending.
func (h *APIHandlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page, err := h.Invoices.List(r.Context(), requestSession(r), invoiceListOptions(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listResponse[invoiceJSON]{
		Items:  invoicesJSON(page.Items, time.Now()),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetInvoice handles GET /api/admin/invoices/{id}.
func (h *APIHandlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, invoiceJSON{Invoice: inv, Status: inv.Status(time.Now())})
}

type refundRequest struct {
	PaymentID string       `json:"paymentId,omitempty"`
	Amount    *model.Money `json:"amount,omitempty"`
	Reason    string       `json:"reason"`
}

// RefundInvoice refunds an invoice's payment in full, or partially when amount is set.
// POST /api/admin/invoices/{id}/refund.
func (h *APIHandlers) RefundInvoice(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	payment, err := h.Invoices.Refund(r.Context(), requestSession(r), service.RefundInput{
		InvoiceID: r.PathValue("id"),
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, payment)
}

// ListPayments handles GET /api/admin/payments.
func (h *APIHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, err := h.Payments.List(r.Context(), requestSession(r), model.PaymentListOptions{
		ListOptions: listOptions(r),
		Status:      model.PaymentStatus(upper(r.URL.Query(), "status")),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

func userListOptions(r *http.Request) model.UserListOptions {
	q := r.URL.Query()
	return model.UserListOptions{
		ListOptions: listOptions(r),
		Role:        model.UserRole(upper(q, "role")),
		Status:      model.UserStatus(upper(q, "status")),
	}
}

// ListUsers handles GET /api/admin/users.
func (h *APIHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.Users.List(r.Context(), requestSession(r), userListOptions(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

type userStatusRequest struct {
	Status string `json:"status"`
}

// SetUserStatus suspends or reactivates an account.
// PATCH /api/admin/users/{id}/status.
func (h *APIHandlers) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req userStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	status := model.UserStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	u, err := h.Users.SetStatus(r.Context(), requestSession(r), r.PathValue("id"), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// ListAdmins handles GET /api/admin/admins.
func (h *APIHandlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	page, err := h.Users.ListAdmins(r.Context(), requestSession(r), listOptions(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

func subscriptionListOptions(r *http.Request) model.SubscriptionListOptions {
	q := r.URL.Query()
	return model.SubscriptionListOptions{
		ListOptions: listOptions(r),
		Plan:        model.SubscriptionPlan(upper(q, "plan")),
		Status:      model.SubscriptionStatus(upper(q, "status")),
	}
}

// ListSubscriptions handles GET /api/admin/subscriptions.
func (h *APIHandlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, err := h.Subscriptions.List(r.Context(), requestSession(r), subscriptionListOptions(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

// GetDashboard handles GET /api/admin/dashboard.
func (h *APIHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Load(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"stats": d.Stats, "settings": d.Settings})
}
