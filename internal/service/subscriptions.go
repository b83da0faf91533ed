package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/observability/notify"
)

// SubscriptionServiceOptions groups dependencies for SubscriptionService.
type SubscriptionServiceOptions struct {
	Backend  core.SubscriptionBackend
	Notifier notify.Sink
}

// SubscriptionService covers contractor plan self-service and the admin subscription table.
type SubscriptionService struct {
	backend  core.SubscriptionBackend
	notifier notify.Sink
	logger   *slog.Logger
	now      func() time.Time
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(opts SubscriptionServiceOptions) *SubscriptionService {
	if opts.Backend == nil {
		panic("subscription backend is required")
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Discard
	}
	return &SubscriptionService{
		backend:  opts.Backend,
		notifier: n,
		logger:   slog.Default().With("component", "subscription_service"),
		now:      time.Now,
	}
}

var errContractorsOnly = apperrors.Forbidden("Only contractors have subscriptions.")

// Current returns the contractor's subscription, or nil when they have none.
func (s *SubscriptionService) Current(ctx context.Context, sess *domainauth.Session) (*model.Subscription, error) {
	if sess == nil || sess.Role != domainauth.RoleContractor {
		return nil, errContractorsOnly
	}
	sub, err := s.backend.CurrentSubscription(withSession(ctx, sess))
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return sub, nil
}

// Plans lists purchasable plans.
func (s *SubscriptionService) Plans(ctx context.Context, sess *domainauth.Session) ([]model.PlanOption, error) {
	plans, err := s.backend.Plans(withSession(ctx, sess))
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return plans, nil
}

// Subscribe starts a checkout. The client secret goes to the browser untouched.
func (s *SubscriptionService) Subscribe(
	ctx context.Context,
	sess *domainauth.Session,
	plan model.SubscriptionPlan,
) (*model.Checkout, error) {
	if sess == nil || sess.Role != domainauth.RoleContractor {
		return nil, errContractorsOnly
	}
	if !plan.Valid() {
		return nil, apperrors.ValidationField("plan", "Choose a plan.")
	}
	ctx = withSession(ctx, sess)

	current, err := s.backend.CurrentSubscription(ctx)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	if current != nil && current.Status == model.SubscriptionActive && !current.CancelAtPeriodEnd {
		return nil, apperrors.Conflict("You already have an active subscription.")
	}

	checkout, err := s.backend.Subscribe(ctx, plan, uuid.NewString())
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	s.logger.InfoContext(ctx, "checkout started", "contractor_id", sess.ContractorID, "plan", plan)
	return checkout, nil
}

// Cancel stops renewal at the end of the current period.
func (s *SubscriptionService) Cancel(ctx context.Context, sess *domainauth.Session) (*model.Subscription, error) {
	if sess == nil || sess.Role != domainauth.RoleContractor {
		return nil, errContractorsOnly
	}
	sub, err := s.backend.CancelSubscription(withSession(ctx, sess))
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	announce(ctx, s.notifier, s.logger, notify.MoneyEvent{
		Kind:       notify.KindSubscriptionStop,
		Actor:      actorName(sess),
		OccurredAt: s.now(),
		Details: map[string]string{
			"subscription_id": sub.ID,
			"plan":            string(sub.Plan),
			"ends":            sub.CurrentPeriodEnd.Format(time.DateOnly),
		},
	})
	return sub, nil
}

// List returns subscriptions for the admin table.
func (s *SubscriptionService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.SubscriptionListOptions,
) (*model.Page[model.Subscription], error) {
	if opts.Plan != "" && !opts.Plan.Valid() {
		return nil, apperrors.ValidationField("plan", "Unknown plan.")
	}
	page, err := s.backend.ListSubscriptions(withSession(ctx, sess), opts)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}
