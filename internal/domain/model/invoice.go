package model

import "time"

// InvoiceStatus is derived from the paid and due timestamps; the backend does not store it.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoicePending InvoiceStatus = "pending"
)

// Valid returns true if the InvoiceStatus is known.
func (s InvoiceStatus) Valid() bool {
	return s == InvoicePaid || s == InvoiceOverdue || s == InvoicePending
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
}

// Amount is quantity times unit price.
func (i InvoiceItem) Amount() Money {
	return Money(int64(i.Quantity) * int64(i.UnitPrice))
}

// Invoice is a commission or subscription invoice issued to a contractor.
type Invoice struct {
	ID           string        `json:"id"`
	Number       string        `json:"invoiceNumber"`
	ContractorID string        `json:"contractorId"`
	JobID        string        `json:"jobId,omitempty"`
	PaymentID    string        `json:"paymentId,omitempty"`
	Items        []InvoiceItem `json:"items"`
	Subtotal     Money         `json:"subtotal"`
	VATRate      float64       `json:"vatRate"`
	VATAmount    Money         `json:"vatAmount"`
	Total        Money         `json:"total"`
	Currency     string        `json:"currency"`
	IssuedAt     time.Time     `json:"issuedAt"`
	DueAt        time.Time     `json:"dueAt"`
	PaidAt       *time.Time    `json:"paidAt,omitempty"`
}

// Status derives paid / overdue / pending at the given instant.
func (inv *Invoice) Status(now time.Time) InvoiceStatus {
	switch {
	case inv.PaidAt != nil:
		return InvoicePaid
	case !inv.DueAt.IsZero() && now.After(inv.DueAt):
		return InvoiceOverdue
	default:
		return InvoicePending
	}
}

// ComputeTotals recomputes subtotal, VAT and total from the line items.
// VAT is rounded half up to the penny.
func (inv *Invoice) ComputeTotals() {
	var subtotal Money
	for _, it := range inv.Items {
		subtotal += it.Amount()
	}
	inv.Subtotal = subtotal
	// basis points avoid float rounding on the product
	bp := int64(inv.VATRate*10000 + 0.5)
	inv.VATAmount = Money((int64(subtotal)*bp + 5000) / 10000)
	inv.Total = inv.Subtotal + inv.VATAmount
}
