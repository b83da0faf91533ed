package httpx

import (
	"net/http"
	"strings"

	"github.com/target/marketplace-console/internal/domain/model"
)

// SubscriptionPage shows the contractor's plan and the plans on offer.
// GET /subscription.
func (h *UIHandlers) SubscriptionPage(w http.ResponseWriter, r *http.Request) {
	h.renderSubscription(w, r, nil)
}

func (h *UIHandlers) renderSubscription(w http.ResponseWriter, r *http.Request, checkout *model.Checkout) {
	sess := requestSession(r)
	current, err := h.Subscriptions.Current(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	plans, err := h.Subscriptions.Plans(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Subscription", CurrentPage: PageSubscription}).
		With("Current", current).
		With("Plans", plans).
		With("Checkout", checkout).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// Subscribe starts checkout for the chosen plan. The page then hands the client secret to the
// payment provider's script; card details never reach the console.
// POST /subscription.
func (h *UIHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	plan := model.SubscriptionPlan(strings.ToUpper(strings.TrimSpace(r.PostFormValue("plan"))))
	checkout, err := h.Subscriptions.Subscribe(r.Context(), requestSession(r), plan)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if IsHTMX(r) {
		HTMX(w).Toast(ToastInfo, "Complete payment to activate your plan.")
	}
	h.renderSubscription(w, r, checkout)
}

// CancelSubscription stops renewal at the end of the period.
// POST /subscription/cancel.
func (h *UIHandlers) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Subscriptions.Cancel(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirectWithFlash(w, r, "/subscription",
		"Your subscription will end on "+sub.CurrentPeriodEnd.Format("2 Jan 2006")+".")
}
