package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/mocks"
	"github.com/target/marketplace-console/internal/observability/notify"
	"github.com/target/marketplace-console/internal/testutil"
)

// recordingSink collects money events.
type recordingSink struct {
	mu     sync.Mutex
	events []notify.MoneyEvent
	err    error
}

func (r *recordingSink) SendMoneyEvent(_ context.Context, ev notify.MoneyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingSink) Events() []notify.MoneyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.MoneyEvent(nil), r.events...)
}

func paidInvoice() *model.Invoice {
	paid := testutil.TestTime()
	return &model.Invoice{
		ID:        "inv-1",
		Number:    "INV-0001",
		PaymentID: "pay-1",
		Total:     model.Pounds(120),
		PaidAt:    &paid,
	}
}

func TestInvoiceService_RefundAboveTotalIsBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	sink := &recordingSink{}
	svc := NewInvoiceService(InvoiceServiceOptions{Backend: billing, Notifier: sink})
	admin := testutil.AdminSession("s-admin")

	billing.EXPECT().GetInvoice(gomock.Any(), "inv-1").Return(paidInvoice(), nil)
	billing.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	amount := model.Pounds(150)
	_, err := svc.Refund(context.Background(), &admin, RefundInput{InvoiceID: "inv-1", Amount: &amount, Reason: "overcharged"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "amount", apperrors.GetField(err))
	assert.Contains(t, apperrors.GetMessage(err, ""), "£120.00")
	assert.Empty(t, sink.Events())
}

func TestInvoiceService_RefundValidation(t *testing.T) {
	zero := model.Money(0)
	negative := model.Money(-500)
	tests := []struct {
		name  string
		inv   *model.Invoice
		in    RefundInput
		field string
	}{
		{"zero amount", paidInvoice(), RefundInput{Amount: &zero, Reason: "x"}, "amount"},
		{"negative amount", paidInvoice(), RefundInput{Amount: &negative, Reason: "x"}, "amount"},
		{"missing reason", paidInvoice(), RefundInput{Reason: "  "}, "reason"},
		{"no payment", &model.Invoice{ID: "inv-2", Total: model.Pounds(10)}, RefundInput{Reason: "x"}, "payment_id"},
		{"foreign payment", paidInvoice(), RefundInput{PaymentID: "pay-9", Reason: "x"}, "payment_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRefund(tt.inv, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}

	exact := model.Pounds(120)
	require.NoError(t, ValidateRefund(paidInvoice(), RefundInput{Amount: &exact, Reason: "full amount as partial"}))
}

func TestInvoiceService_PartialRefund(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	sink := &recordingSink{err: errors.New("slack down")}
	svc := NewInvoiceService(InvoiceServiceOptions{Backend: billing, Notifier: sink})
	admin := testutil.AdminSession("s-admin")
	amount := model.Pounds(50)

	billing.EXPECT().GetInvoice(gomock.Any(), "inv-1").
		DoAndReturn(func(ctx context.Context, _ string) (*model.Invoice, error) {
			sess, ok := marketplace.SessionFromContext(ctx)
			require.True(t, ok)
			assert.Equal(t, "admin-tok", sess.Tokens.AdminToken)
			return paidInvoice(), nil
		})
	billing.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Not("")).
		DoAndReturn(func(_ context.Context, req model.RefundRequest, _ string) (*model.Payment, error) {
			assert.Equal(t, "pay-1", req.PaymentID)
			assert.Equal(t, "inv-1", req.InvoiceID)
			require.NotNil(t, req.Amount)
			assert.Equal(t, amount, *req.Amount)
			return &model.Payment{ID: "pay-1", Status: model.PaymentPartiallyRefunded, RefundedAmount: amount}, nil
		})

	p, err := svc.Refund(context.Background(), &admin, RefundInput{InvoiceID: "inv-1", Amount: &amount, Reason: " goodwill "})
	require.NoError(t, err, "notification failure does not fail the refund")
	assert.Equal(t, model.PaymentPartiallyRefunded, p.Status)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindRefundIssued, events[0].Kind)
	assert.Equal(t, "£50.00", events[0].Amount)
	assert.Equal(t, "goodwill", events[0].Reason)
	assert.Equal(t, "Olu", events[0].Actor)
}

func TestInvoiceService_RefundBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	sink := &recordingSink{}
	svc := NewInvoiceService(InvoiceServiceOptions{Backend: billing, Notifier: sink})

	billing.EXPECT().GetInvoice(gomock.Any(), "inv-1").Return(paidInvoice(), nil)
	billing.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &marketplace.APIError{Status: 409, Message: "Payment already refunded"})

	_, err := svc.Refund(context.Background(), nil, RefundInput{InvoiceID: "inv-1", Reason: "dup"})
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Payment already refunded", apperrors.GetMessage(err, ""))
	assert.Empty(t, sink.Events())
}

func TestInvoiceService_ListFiltersDerivedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	svc := NewInvoiceService(InvoiceServiceOptions{Backend: billing})
	now := testutil.TestTime()
	svc.now = func() time.Time { return now }

	paid := now.Add(-time.Hour)
	page := &model.Page[model.Invoice]{Items: []model.Invoice{
		{ID: "paid", PaidAt: &paid, DueAt: now.Add(-48 * time.Hour)},
		{ID: "overdue", DueAt: now.Add(-24 * time.Hour)},
		{ID: "pending", DueAt: now.Add(24 * time.Hour)},
	}, Total: 3}

	billing.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.InvoiceListOptions) (*model.Page[model.Invoice], error) {
			assert.Empty(t, opts.Status, "status is not a backend filter")
			return page, nil
		})

	got, err := svc.List(context.Background(), nil, model.InvoiceListOptions{Status: model.InvoiceOverdue})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "overdue", got.Items[0].ID)
	assert.Equal(t, 1, got.Total)
	assert.False(t, got.HasNext())

	_, err = svc.List(context.Background(), nil, model.InvoiceListOptions{Status: "lost"})
	assert.Equal(t, "status", apperrors.GetField(err))
}

func TestInvoiceService_ListStatusFilterPagesFilteredRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	svc := NewInvoiceService(InvoiceServiceOptions{Backend: billing})
	now := testutil.TestTime()
	svc.now = func() time.Time { return now }

	// 450 invoices across three backend pages; every third one is overdue.
	all := make([]model.Invoice, 450)
	for i := range all {
		due := now.Add(24 * time.Hour)
		if i%3 == 0 {
			due = now.Add(-24 * time.Hour)
		}
		all[i] = model.Invoice{ID: fmt.Sprintf("inv-%03d", i), DueAt: due}
	}
	billing.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, opts model.InvoiceListOptions) (*model.Page[model.Invoice], error) {
			end := min(opts.Offset+opts.Limit, len(all))
			return &model.Page[model.Invoice]{Items: all[opts.Offset:end], Total: len(all), Limit: opts.Limit, Offset: opts.Offset}, nil
		})

	got, err := svc.List(context.Background(), nil, model.InvoiceListOptions{
		ListOptions: model.ListOptions{Limit: 25, Offset: 125},
		Status:      model.InvoiceOverdue,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, got.Total)
	require.Len(t, got.Items, 25)
	assert.Equal(t, "inv-375", got.Items[0].ID)
	assert.Equal(t, "inv-447", got.Items[24].ID)
	assert.False(t, got.HasNext())
}

func TestPaymentService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	billing := mocks.NewMockBillingBackend(ctrl)
	svc := NewPaymentService(billing)

	billing.EXPECT().ListPayments(gomock.Any(), model.PaymentListOptions{Status: model.PaymentFailed}).
		Return(nil, &marketplace.APIError{Status: 401, Message: "Token expired"})

	_, err := svc.List(context.Background(), nil, model.PaymentListOptions{Status: model.PaymentFailed})
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Token expired", apperrors.GetMessage(err, ""))
}
