package service

import (
	"context"
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

// DisputeServiceOptions groups dependencies for DisputeService.
type DisputeServiceOptions struct {
	Backend core.DisputeBackend
	// Notifier announces resolutions that refund or adjust commission. Nil disables announcements.
	Notifier notify.Sink
}

// DisputeService backs the admin dispute screen.
type DisputeService struct {
	backend  core.DisputeBackend
	notifier notify.Sink
	logger   *slog.Logger
	now      func() time.Time
}

// NewDisputeService constructs a DisputeService.
func NewDisputeService(opts DisputeServiceOptions) *DisputeService {
	if opts.Backend == nil {
		panic("dispute backend is required")
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Discard
	}
	return &DisputeService{
		backend:  opts.Backend,
		notifier: n,
		logger:   slog.Default().With("component", "dispute_service"),
		now:      time.Now,
	}
}

// List returns disputes matching opts. Unknown filter values are rejected before any request.
func (s *DisputeService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.DisputeListOptions,
) (*model.Page[model.Dispute], error) {
	switch {
	case opts.Status != "" && !opts.Status.Valid():
		return nil, apperrors.ValidationField("status", "Unknown dispute status.")
	case opts.Type != "" && !opts.Type.Valid():
		return nil, apperrors.ValidationField("type", "Unknown dispute type.")
	case opts.Priority != "" && !opts.Priority.Valid():
		return nil, apperrors.ValidationField("priority", "Unknown dispute priority.")
	}
	page, err := s.backend.ListDisputes(withSession(ctx, sess), opts)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}

// Get returns one dispute.
func (s *DisputeService) Get(ctx context.Context, sess *domainauth.Session, id string) (*model.Dispute, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "Dispute is required.")
	}
	d, err := s.backend.GetDispute(withSession(ctx, sess), id)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return d, nil
}

// Resolve applies the admin dialog to a dispute. A resolution that refunds the customer
// or adjusts commission is announced once the backend accepts it.
func (s *DisputeService) Resolve(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.ResolveDisputeRequest,
) (*model.Dispute, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "Dispute is required.")
	}
	req.Resolution = strings.TrimSpace(req.Resolution)
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, capitalize(err.Error()))
	}

	updated, err := s.backend.UpdateDispute(withSession(ctx, sess), id, req, uuid.NewString())
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	s.logger.InfoContext(ctx, "dispute updated",
		"dispute_id", id, "status", req.Status, "refund", req.RefundIssued, "commission", req.CommissionAdjusted)

	if req.MovesMoney() {
		s.announce(ctx, notify.MoneyEvent{
			Kind:       notify.KindDisputeResolved,
			Actor:      actorName(sess),
			DisputeID:  id,
			Reason:     req.Resolution,
			OccurredAt: s.now(),
			Details: map[string]string{
				"status":              string(req.Status),
				"refund_issued":       boolWord(req.RefundIssued),
				"commission_adjusted": boolWord(req.CommissionAdjusted),
			},
		})
	}
	return updated, nil
}

// announce never fails the admin action; the money has already moved.
func (s *DisputeService) announce(ctx context.Context, ev notify.MoneyEvent) {
	announce(ctx, s.notifier, s.logger, ev)
}

func announce(ctx context.Context, sink notify.Sink, logger *slog.Logger, ev notify.MoneyEvent) {
	if err := sink.SendMoneyEvent(context.WithoutCancel(ctx), ev); err != nil {
		logger.WarnContext(ctx, "money event notification failed", "kind", ev.Kind, "error", err)
	}
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
