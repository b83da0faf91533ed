package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/observability/metrics"
	"github.com/target/marketplace-console/internal/observability/statsd"
	"github.com/target/marketplace-console/internal/ports"
)

const staleActionMessage = "This action is no longer available. Refresh to see the latest state."

// JobWorkflowServiceOptions groups dependencies for JobWorkflowService.
type JobWorkflowServiceOptions struct {
	Backend core.JobWorkflowBackend
	Ledger  ports.ActionLedger
	Metrics statsd.Sink
	// Lister backs the "my jobs" list. Optional; Mine fails without it.
	Lister core.JobListBackend
}

// JobWorkflowService renders workflow buttons for a job and performs the chosen action.
type JobWorkflowService struct {
	backend core.JobWorkflowBackend
	lister  core.JobListBackend
	ledger  ports.ActionLedger
	metrics statsd.Sink
	logger  *slog.Logger
}

// NewJobWorkflowService constructs a JobWorkflowService. Backend and Ledger are required.
func NewJobWorkflowService(opts JobWorkflowServiceOptions) *JobWorkflowService {
	if opts.Backend == nil {
		panic("job workflow backend is required")
	}
	if opts.Ledger == nil {
		panic("action ledger is required")
	}
	sink := opts.Metrics
	if sink == nil {
		sink = statsd.Discard
	}
	return &JobWorkflowService{
		backend: opts.Backend,
		lister:  opts.Lister,
		ledger:  opts.Ledger,
		metrics: sink,
		logger:  slog.Default().With("component", "job_workflow_service"),
	}
}

// JobView is a job together with the buttons the viewer may press.
type JobView struct {
	Job      *model.Job
	Actions  []workflow.Action
	IsWinner bool
}

// View fetches the job and works out the viewer's next actions.
func (s *JobWorkflowService) View(ctx context.Context, sess *domainauth.Session, jobID string) (*JobView, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.ValidationField("job_id", "Job is required.")
	}
	ctx = marketplace.WithSession(ctx, sess)
	job, err := s.backend.GetJob(ctx, jobID)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return s.view(sess, job), nil
}

func (s *JobWorkflowService) view(sess *domainauth.Session, job *model.Job) *JobView {
	actor := workflow.ActorFromSession(*sess)
	return &JobView{
		Job:      job,
		Actions:  workflow.NextActions(actor, job),
		IsWinner: workflow.IsJobWinner(job, actor),
	}
}

// Mine lists the jobs the viewer won or applied to (contractors) or posted (customers).
func (s *JobWorkflowService) Mine(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.JobListOptions,
) (*model.Page[model.Job], error) {
	if sess == nil {
		return nil, errSessionExpired
	}
	if s.lister == nil {
		return nil, apperrors.Internal("job listing is not configured")
	}
	ctx = marketplace.WithSession(ctx, sess)
	var (
		page *model.Page[model.Job]
		err  error
	)
	switch {
	case sess.Role == domainauth.RoleContractor && sess.ContractorID != "":
		page, err = s.lister.ContractorJobs(ctx, sess.ContractorID, opts)
	case sess.Role == domainauth.RoleCustomer && sess.CustomerID != "":
		page, err = s.lister.CustomerJobs(ctx, sess.CustomerID, opts)
	default:
		return nil, apperrors.Forbidden("Only contractors and customers have jobs.")
	}
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}

// PerformRequest is one workflow button submission.
type PerformRequest struct {
	JobID  string
	Action workflow.Action
	// Amount is required by enter_final_price and suggest_price and ignored otherwise.
	Amount *model.Money
}

// Perform re-checks the action against the job's current state, refuses duplicates through the
// action ledger, sends the transition, and returns the refetched job. The job is never patched locally.
func (s *JobWorkflowService) Perform(
	ctx context.Context,
	sess *domainauth.Session,
	req PerformRequest,
) (view *JobView, err error) {
	if sess == nil {
		return nil, errSessionExpired
	}
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
			if code := apperrors.GetCode(err); code != "" {
				result = string(code)
			}
		}
		metrics.EmitWorkflowAction(s.metrics, metrics.WorkflowAction{
			Action: string(req.Action),
			Role:   string(sess.Role),
			Result: result,
			Err:    err,
		})
	}()

	if strings.TrimSpace(req.JobID) == "" {
		return nil, apperrors.ValidationField("job_id", "Job is required.")
	}
	if !req.Action.Valid() {
		return nil, apperrors.ValidationField("action", "Unknown action.")
	}
	if !req.Action.NeedsAmount() {
		req.Amount = nil
	}

	ctx = marketplace.WithSession(ctx, sess)
	job, err := s.backend.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}

	if err := workflow.Allowed(workflow.ActorFromSession(*sess), job, req.Action); err != nil {
		s.logger.InfoContext(ctx, "stale workflow action refused",
			"job_id", req.JobID, "action", req.Action, "status", job.Status, "reason", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, staleActionMessage)
	}
	if req.Action.NeedsAmount() && (req.Amount == nil || *req.Amount <= 0) {
		return nil, apperrors.ValidationField("amount", "Enter an amount greater than zero.")
	}

	entry, err := s.ledger.Reserve(ctx, workflow.LedgerEntry{
		IdempotencyKey: uuid.NewString(),
		Fingerprint:    workflow.Fingerprint(sess.ID, req.JobID, req.Action, req.Amount),
		SessionID:      sess.ID,
		ActorID:        sess.UserID,
		JobID:          req.JobID,
		Action:         req.Action,
		Amount:         amountPtr(req.Amount),
	})
	if err != nil {
		return nil, err
	}

	sendErr := s.dispatch(ctx, req, entry.IdempotencyKey)
	s.settle(ctx, entry, sendErr)
	if sendErr != nil {
		return nil, marketplace.ToAppError(sendErr)
	}

	s.logger.InfoContext(ctx, "workflow action performed",
		"job_id", req.JobID, "action", req.Action, "user_id", sess.UserID)

	fresh, err := s.backend.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return s.view(sess, fresh), nil
}

func (s *JobWorkflowService) dispatch(ctx context.Context, req PerformRequest, key string) error {
	switch req.Action {
	case workflow.ActionClaimWon:
		return s.backend.ClaimWon(ctx, req.JobID, key)
	case workflow.ActionConfirmWinner:
		return s.backend.ConfirmWinner(ctx, req.JobID, key)
	case workflow.ActionEnterFinalPrice:
		return s.backend.MarkAsCompleted(ctx, req.JobID, *req.Amount, key)
	case workflow.ActionConfirmCompletion:
		return s.backend.ConfirmJobCompletion(ctx, req.JobID, key)
	case workflow.ActionDeclineCompletion:
		return s.backend.DeclineJobCompletion(ctx, req.JobID, key)
	case workflow.ActionSuggestPrice:
		return s.backend.SuggestPriceChange(ctx, req.JobID, *req.Amount, key)
	case workflow.ActionRequestReview:
		return s.backend.RequestReview(ctx, req.JobID, key)
	default:
		return errors.New("unhandled workflow action " + string(req.Action))
	}
}

// settle records the outcome even when the request context has been cancelled.
func (s *JobWorkflowService) settle(ctx context.Context, entry *workflow.LedgerEntry, sendErr error) {
	status, msg := workflow.LedgerSucceeded, ""
	if sendErr != nil {
		status, msg = workflow.LedgerFailed, sendErr.Error()
	}
	if err := s.ledger.Complete(context.WithoutCancel(ctx), entry.ID, status, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to settle ledger entry", "entry_id", entry.ID, "error", err)
	}
}

// History lists recent workflow submissions, newest first.
func (s *JobWorkflowService) History(
	ctx context.Context,
	filter workflow.LedgerFilter,
) ([]*workflow.LedgerEntry, error) {
	return s.ledger.ListRecent(ctx, filter)
}

func amountPtr(m *model.Money) *int64 {
	if m == nil {
		return nil
	}
	v := int64(*m)
	return &v
}
