package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoice_Status(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	paid := now.Add(-time.Hour)

	tests := []struct {
		name string
		inv  Invoice
		want InvoiceStatus
	}{
		{name: "paid wins over overdue", inv: Invoice{PaidAt: &paid, DueAt: now.Add(-48 * time.Hour)}, want: InvoicePaid},
		{name: "past due date", inv: Invoice{DueAt: now.Add(-time.Minute)}, want: InvoiceOverdue},
		{name: "due in future", inv: Invoice{DueAt: now.Add(24 * time.Hour)}, want: InvoicePending},
		{name: "no due date", inv: Invoice{}, want: InvoicePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.Status(now))
		})
	}
}

func TestInvoice_ComputeTotals(t *testing.T) {
	inv := Invoice{
		VATRate: 0.2,
		Items: []InvoiceItem{
			{Description: "Commission, kitchen refit", Quantity: 1, UnitPrice: Pounds(80)},
			{Description: "Lead unlock", Quantity: 2, UnitPrice: Pounds(10)},
		},
	}

	inv.ComputeTotals()

	assert.Equal(t, Pounds(100), inv.Subtotal)
	assert.Equal(t, Pounds(20), inv.VATAmount)
	assert.Equal(t, Pounds(120), inv.Total)
}

func TestInvoice_ComputeTotalsRoundsVAT(t *testing.T) {
	inv := Invoice{VATRate: 0.2, Items: []InvoiceItem{{Quantity: 1, UnitPrice: 333}}}
	inv.ComputeTotals()
	assert.Equal(t, Money(67), inv.VATAmount)
	assert.Equal(t, Money(400), inv.Total)
}
