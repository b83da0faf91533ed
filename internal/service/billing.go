package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/observability/notify"
)

// InvoiceServiceOptions groups dependencies for InvoiceService.
type InvoiceServiceOptions struct {
	Backend  core.BillingBackend
	Notifier notify.Sink
}

// InvoiceService backs the admin invoice screen and its refund dialog.
type InvoiceService struct {
	backend  core.BillingBackend
	notifier notify.Sink
	logger   *slog.Logger
	now      func() time.Time
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(opts InvoiceServiceOptions) *InvoiceService {
	if opts.Backend == nil {
		panic("billing backend is required")
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Discard
	}
	return &InvoiceService{
		backend:  opts.Backend,
		notifier: n,
		logger:   slog.Default().With("component", "invoice_service"),
		now:      time.Now,
	}
}

const (
	// invoiceScanPageSize is the backend page size used while filtering by derived status.
	invoiceScanPageSize = 200
	// invoiceScanLimit caps how many invoices a status filter reads.
	invoiceScanLimit = 5000

	defaultInvoicePageSize = 25
)

// List returns invoices. The backend has no status column, so a status filter scans the
// backend pages, keeps the invoices whose paid and due dates match, and pages that result.
// Total and HasNext then describe the filtered set.
func (s *InvoiceService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.InvoiceListOptions,
) (*model.Page[model.Invoice], error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, apperrors.ValidationField("status", "Unknown invoice status.")
	}
	ctx = withSession(ctx, sess)
	if opts.Status == "" {
		page, err := s.backend.ListInvoices(ctx, opts)
		if err != nil {
			return nil, marketplace.ToAppError(err)
		}
		return page, nil
	}

	status := opts.Status
	limit, offset := opts.Limit, opts.Offset
	if limit <= 0 {
		limit = defaultInvoicePageSize
	}
	if offset < 0 {
		offset = 0
	}

	scan := opts
	scan.Status = ""
	scan.Limit = invoiceScanPageSize
	scan.Offset = 0
	now := s.now()
	var matched []model.Invoice
	for scanned := 0; ; {
		page, err := s.backend.ListInvoices(ctx, scan)
		if err != nil {
			return nil, marketplace.ToAppError(err)
		}
		for _, inv := range page.Items {
			if inv.Status(now) == status {
				matched = append(matched, inv)
			}
		}
		scanned += len(page.Items)
		scan.Offset += len(page.Items)
		if len(page.Items) == 0 || scanned >= page.Total {
			break
		}
		if scanned >= invoiceScanLimit {
			s.logger.WarnContext(ctx, "invoice status filter truncated", "status", status, "scanned", scanned, "total", page.Total)
			break
		}
	}

	out := &model.Page[model.Invoice]{Items: []model.Invoice{}, Total: len(matched), Limit: limit, Offset: offset}
	if offset < len(matched) {
		out.Items = matched[offset:min(offset+limit, len(matched))]
	}
	return out, nil
}

// Get returns one invoice with its line items.
func (s *InvoiceService) Get(ctx context.Context, sess *domainauth.Session, id string) (*model.Invoice, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "Invoice is required.")
	}
	inv, err := s.backend.GetInvoice(withSession(ctx, sess), id)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return inv, nil
}

// RefundInput is the refund dialog. A nil Amount refunds the payment in full.
type RefundInput struct {
	InvoiceID string
	// PaymentID defaults to the invoice's payment.
	PaymentID string
	Amount    *model.Money
	Reason    string
}

// Refund validates the dialog against the invoice and asks the backend to refund.
// A partial amount must be positive and no more than the invoice total; otherwise nothing is sent.
func (s *InvoiceService) Refund(ctx context.Context, sess *domainauth.Session, in RefundInput) (*model.Payment, error) {
	if strings.TrimSpace(in.InvoiceID) == "" {
		return nil, apperrors.ValidationField("invoice_id", "Invoice is required.")
	}
	ctx = withSession(ctx, sess)

	inv, err := s.backend.GetInvoice(ctx, in.InvoiceID)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}

	req, err := buildRefund(inv, in)
	if err != nil {
		return nil, err
	}

	payment, err := s.backend.RefundPayment(ctx, req, uuid.NewString())
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}

	amount := ""
	if req.Amount != nil {
		amount = req.Amount.String()
	}
	s.logger.InfoContext(ctx, "refund issued",
		"invoice_id", inv.ID, "payment_id", req.PaymentID, "partial", req.Partial(), "amount", amount)
	announce(ctx, s.notifier, s.logger, notify.MoneyEvent{
		Kind:       notify.KindRefundIssued,
		Actor:      actorName(sess),
		InvoiceID:  inv.ID,
		PaymentID:  req.PaymentID,
		Amount:     amount,
		Reason:     req.Reason,
		OccurredAt: s.now(),
	})
	return payment, nil
}

// ValidateRefund runs the refund checks against inv without calling the backend.
func ValidateRefund(inv *model.Invoice, in RefundInput) error {
	_, err := buildRefund(inv, in)
	return err
}

func buildRefund(inv *model.Invoice, in RefundInput) (model.RefundRequest, error) {
	paymentID := strings.TrimSpace(in.PaymentID)
	if paymentID == "" {
		paymentID = inv.PaymentID
	}
	if paymentID == "" {
		return model.RefundRequest{}, apperrors.ValidationField("payment_id", "This invoice has no payment to refund.")
	}
	if paymentID != inv.PaymentID && inv.PaymentID != "" {
		return model.RefundRequest{}, apperrors.ValidationField("payment_id", "Payment does not belong to this invoice.")
	}

	if in.Amount != nil {
		switch {
		case *in.Amount <= 0:
			return model.RefundRequest{}, apperrors.ValidationField("amount",
				"Refund amount must be greater than zero.")
		case *in.Amount > inv.Total:
			return model.RefundRequest{}, apperrors.ValidationField("amount",
				fmt.Sprintf("Refund amount cannot exceed the invoice total of %s.", inv.Total))
		}
	}
	if strings.TrimSpace(in.Reason) == "" {
		return model.RefundRequest{}, apperrors.ValidationField("reason", "Give a reason for the refund.")
	}

	req := model.RefundRequest{
		PaymentID: paymentID,
		InvoiceID: inv.ID,
		Amount:    in.Amount,
		Reason:    strings.TrimSpace(in.Reason),
	}
	if err := req.Validate(); err != nil {
		return model.RefundRequest{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, capitalize(err.Error()))
	}
	return req, nil
}

// PaymentService backs the admin payment table.
type PaymentService struct {
	backend core.BillingBackend
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(backend core.BillingBackend) *PaymentService {
	if backend == nil {
		panic("billing backend is required")
	}
	return &PaymentService{backend: backend}
}

// List returns payments matching opts.
func (s *PaymentService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.PaymentListOptions,
) (*model.Page[model.Payment], error) {
	page, err := s.backend.ListPayments(withSession(ctx, sess), opts)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}
