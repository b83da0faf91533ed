package model

import "time"

// SubscriptionPlan is a contractor's billing plan.
type SubscriptionPlan string

const (
	PlanMonthly   SubscriptionPlan = "MONTHLY"
	PlanSixMonths SubscriptionPlan = "SIX_MONTHS"
	PlanYearly    SubscriptionPlan = "YEARLY"
)

// Valid returns true if the SubscriptionPlan is known.
func (p SubscriptionPlan) Valid() bool {
	return p == PlanMonthly || p == PlanSixMonths || p == PlanYearly
}

// Months is the billing period length.
func (p SubscriptionPlan) Months() int {
	switch p {
	case PlanMonthly:
		return 1
	case PlanSixMonths:
		return 6
	case PlanYearly:
		return 12
	default:
		return 0
	}
}

// SubscriptionStatus is the billing status of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionTrialing  SubscriptionStatus = "TRIALING"
)

// Subscription is a contractor's plan membership.
type Subscription struct {
	ID                 string             `json:"id"`
	ContractorID       string             `json:"contractorId"`
	ContractorName     string             `json:"contractorName,omitempty"`
	Plan               SubscriptionPlan   `json:"plan"`
	Status             SubscriptionStatus `json:"status"`
	Price              Money              `json:"price"`
	CurrentPeriodStart time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time          `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool               `json:"cancelAtPeriodEnd"`
}

// PlanOption is a purchasable plan as advertised by the backend.
type PlanOption struct {
	Plan        SubscriptionPlan `json:"plan"`
	Price       Money            `json:"price"`
	Credits     int              `json:"weeklyCredits"`
	Description string           `json:"description,omitempty"`
}

// Checkout is returned when starting a subscription; the browser completes payment with Stripe
// using the client secret, so card data never reaches the console.
type Checkout struct {
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey,omitempty"`
}
