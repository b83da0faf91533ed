// Package notify announces admin money movements to chat sinks.
package notify

import (
	"context"
	"time"
)

// Event kinds.
const (
	KindRefundIssued     = "refund_issued"
	KindDisputeResolved  = "dispute_resolved"
	KindSubscriptionStop = "subscription_cancelled"
)

// MoneyEvent describes an admin action that moved or adjusted money.
type MoneyEvent struct {
	Kind       string
	Actor      string // admin display name or email
	DisputeID  string
	InvoiceID  string
	PaymentID  string
	Amount     string // formatted, e.g. "£120.00"; empty for full refunds
	Reason     string
	OccurredAt time.Time
	Details    map[string]string
}

// Sink describes a destination for money event notifications.
type Sink interface {
	SendMoneyEvent(ctx context.Context, ev MoneyEvent) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, ev MoneyEvent) error

// SendMoneyEvent implements the Sink interface.
func (f SinkFunc) SendMoneyEvent(ctx context.Context, ev MoneyEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, ev)
}

// Discard drops events; used when notifications are disabled.
var Discard Sink = SinkFunc(func(context.Context, MoneyEvent) error { return nil })
