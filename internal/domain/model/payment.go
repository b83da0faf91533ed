package model

import (
	"errors"
	"strings"
	"time"
)

// PaymentStatus is the provider status of a payment.
type PaymentStatus string

const (
	PaymentSucceeded         PaymentStatus = "SUCCEEDED"
	PaymentPending           PaymentStatus = "PENDING"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// Refundable reports whether a refund may still be issued.
func (s PaymentStatus) Refundable() bool {
	return s == PaymentSucceeded || s == PaymentPartiallyRefunded
}

// Payment is a card payment collected through Stripe by the backend.
type Payment struct {
	ID             string        `json:"id"`
	InvoiceID      string        `json:"invoiceId,omitempty"`
	UserID         string        `json:"userId"`
	Amount         Money         `json:"amount"`
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	Provider       string        `json:"provider"`
	ProviderRef    string        `json:"providerRef,omitempty"`
	RefundedAmount Money         `json:"refundedAmount"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// RefundRequest asks the backend to refund a payment. A nil Amount means a full refund.
type RefundRequest struct {
	PaymentID string `json:"paymentId"`
	InvoiceID string `json:"invoiceId,omitempty"`
	Amount    *Money `json:"amount,omitempty"`
	Reason    string `json:"reason"`
}

// Partial reports whether the refund is for a specific amount.
func (r *RefundRequest) Partial() bool { return r.Amount != nil }

// Validate checks the request shape; the amount ceiling is checked against the invoice by the service.
func (r *RefundRequest) Validate() error {
	if strings.TrimSpace(r.PaymentID) == "" {
		return errors.New("payment id is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("reason is required")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return errors.New("refund amount must be greater than zero")
	}
	return nil
}
