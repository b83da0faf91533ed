package marketplace

import (
	"context"
	"net/http"

	"github.com/target/marketplace-console/internal/domain/model"
)

// CurrentSubscription returns the signed-in contractor's subscription, or nil when they have none.
func (c *Client) CurrentSubscription(ctx context.Context) (*model.Subscription, error) {
	var out *model.Subscription
	err := c.do(ctx, call{resource: "subscriptions", method: http.MethodGet, path: "/subscriptions/current"}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Plans lists purchasable plans.
func (c *Client) Plans(ctx context.Context) ([]model.PlanOption, error) {
	var out []model.PlanOption
	err := c.do(ctx, call{resource: "subscriptions", method: http.MethodGet, path: "/subscriptions/plans"}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe starts a checkout for plan. The returned client secret is handed to Stripe Elements unchanged.
func (c *Client) Subscribe(ctx context.Context, plan model.SubscriptionPlan, idemKey string) (*model.Checkout, error) {
	var out model.Checkout
	err := c.do(ctx, call{
		resource:       "subscriptions",
		method:         http.MethodPost,
		path:           "/subscriptions",
		body:           map[string]model.SubscriptionPlan{"plan": plan},
		idempotencyKey: idemKey,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription cancels at the end of the current period.
func (c *Client) CancelSubscription(ctx context.Context) (*model.Subscription, error) {
	var out model.Subscription
	err := c.do(ctx, call{resource: "subscriptions", method: http.MethodPost, path: "/subscriptions/cancel"}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
