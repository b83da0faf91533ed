package httpx

import (
	"net/http"
	"strings"

	"github.com/target/marketplace-console/internal/domain/model"
)

// ListPlans handles GET /api/subscriptions/plans.
func (h *APIHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Subscriptions.Plans(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if plans == nil {
		plans = []model.PlanOption{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": plans})
}

// CurrentSubscription handles GET /api/subscriptions/current. A contractor without a plan gets null.
func (h *APIHandlers) CurrentSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Subscriptions.Current(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"subscription": sub})
}

type subscribeRequest struct {
	Plan string `json:"plan"`
}

// Subscribe starts a checkout and returns the payment client secret for the browser.
// POST /api/subscriptions.
func (h *APIHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	plan := model.SubscriptionPlan(strings.ToUpper(strings.TrimSpace(req.Plan)))
	checkout, err := h.Subscriptions.Subscribe(r.Context(), requestSession(r), plan)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, checkout)
}

// CancelSubscription handles POST /api/subscriptions/cancel.
func (h *APIHandlers) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Subscriptions.Cancel(r.Context(), requestSession(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, sub)
}
