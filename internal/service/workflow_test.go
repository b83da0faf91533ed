package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/marketplace-console/internal/data"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
	"github.com/target/marketplace-console/internal/mocks"
	"github.com/target/marketplace-console/internal/testutil"
	"github.com/target/marketplace-console/internal/testutil/workflowtest"
)

type workflowFixture struct {
	backend *workflowtest.Backend
	ledger  *data.MemoryLedger
	svc     *JobWorkflowService
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	backend := workflowtest.NewBackend(t)
	client, err := marketplace.New(marketplace.Options{BaseURL: backend.URL()})
	require.NoError(t, err)
	ledger := data.NewMemoryLedger(data.LedgerOptions{})
	return &workflowFixture{
		backend: backend,
		ledger:  ledger,
		svc:     NewJobWorkflowService(JobWorkflowServiceOptions{Backend: client, Ledger: ledger}),
	}
}

func TestJobWorkflowService_View(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").WithApplication("c-1").Build())

	contractor := testutil.ContractorSession("s-1", "c-1")
	view, err := f.svc.View(context.Background(), &contractor, "job-1")
	require.NoError(t, err)
	assert.Equal(t, []workflow.Action{workflow.ActionClaimWon}, view.Actions)
	assert.False(t, view.IsWinner)

	customer := testutil.CustomerSession("s-2", "cust-1")
	view, err = f.svc.View(context.Background(), &customer, "job-1")
	require.NoError(t, err)
	assert.Empty(t, view.Actions, "nobody has claimed the job yet")

	_, err = f.svc.View(context.Background(), &customer, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobWorkflowService_HappyPath(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	f.backend.PutJob(testutil.NewJob("job-1").WithApplication("c-1").Build())

	contractor := testutil.ContractorSession("s-c", "c-1")
	customer := testutil.CustomerSession("s-cust", "cust-1")

	view, err := f.svc.Perform(ctx, &contractor, PerformRequest{JobID: "job-1", Action: workflow.ActionClaimWon})
	require.NoError(t, err)
	assert.Empty(t, view.Actions, "claim cannot be repeated")

	view, err = f.svc.Perform(ctx, &customer, PerformRequest{JobID: "job-1", Action: workflow.ActionConfirmWinner})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusInProgress, view.Job.Status)

	price := model.Pounds(120)
	view, err = f.svc.Perform(ctx, &contractor, PerformRequest{
		JobID:  "job-1",
		Action: workflow.ActionEnterFinalPrice,
		Amount: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusAwaitingFinalPriceConfirmation, view.Job.Status)
	assert.True(t, view.IsWinner)

	view, err = f.svc.Perform(ctx, &customer, PerformRequest{JobID: "job-1", Action: workflow.ActionConfirmCompletion})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, view.Job.Status)

	view, err = f.svc.View(ctx, &contractor, "job-1")
	require.NoError(t, err)
	assert.Equal(t, []workflow.Action{workflow.ActionRequestReview}, view.Actions)

	for _, c := range f.backend.Calls() {
		if c.Method == http.MethodPost {
			assert.NotEmpty(t, c.IdempotencyKey, "%s carries an idempotency key", c.Path)
		}
	}

	history, err := f.svc.History(ctx, workflow.LedgerFilter{JobID: "job-1"})
	require.NoError(t, err)
	require.Len(t, history, 4)
	for _, e := range history {
		assert.Equal(t, workflow.LedgerSucceeded, e.Status)
	}
}

func TestJobWorkflowService_StaleActionSendsNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").WithApplication("c-1").Build())
	contractor := testutil.ContractorSession("s-c", "c-1")

	price := model.Pounds(80)
	_, err := f.svc.Perform(context.Background(), &contractor, PerformRequest{
		JobID:  "job-1",
		Action: workflow.ActionEnterFinalPrice,
		Amount: &price,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, staleActionMessage, apperrors.GetMessage(err, ""))
	assert.ErrorIs(t, err, workflow.ErrActionNotAvailable)
	assert.Zero(t, f.backend.CountVerb("complete"))
}

func TestJobWorkflowService_AmountValidation(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").
		WithApplication("c-1").
		WonBy("c-1").
		WithStatus(model.JobStatusInProgress).
		Build())
	contractor := testutil.ContractorSession("s-c", "c-1")

	zero := model.Money(0)
	for name, amount := range map[string]*model.Money{"missing": nil, "zero": &zero} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Perform(context.Background(), &contractor, PerformRequest{
				JobID:  "job-1",
				Action: workflow.ActionEnterFinalPrice,
				Amount: amount,
			})
			assert.Equal(t, "amount", apperrors.GetField(err))
		})
	}
	assert.Zero(t, f.backend.CountVerb("complete"))

	_, err := f.svc.Perform(context.Background(), &contractor, PerformRequest{JobID: "job-1", Action: "teleport"})
	assert.Equal(t, "action", apperrors.GetField(err))
}

func TestJobWorkflowService_DuplicateSubmitRefused(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").
		WithApplication("c-1").
		WonBy("c-1").
		WithFinalAmount(model.Pounds(120)).
		WithStatus(model.JobStatusAwaitingFinalPriceConfirmation).
		Build())
	customer := testutil.CustomerSession("s-cust", "cust-1")
	suggest := model.Pounds(100)
	req := PerformRequest{JobID: "job-1", Action: workflow.ActionSuggestPrice, Amount: &suggest}

	_, err := f.svc.Perform(context.Background(), &customer, req)
	require.NoError(t, err)

	_, err = f.svc.Perform(context.Background(), &customer, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, 1, f.backend.CountVerb("suggest-price"))

	other := model.Pounds(95)
	_, err = f.svc.Perform(context.Background(), &customer, PerformRequest{
		JobID:  "job-1",
		Action: workflow.ActionSuggestPrice,
		Amount: &other,
	})
	require.NoError(t, err, "a different amount is a different submission")
	assert.Equal(t, 2, f.backend.CountVerb("suggest-price"))
}

func TestJobWorkflowService_BackendFailure(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").WithApplication("c-1").WithClaim("c-1").Build())
	customer := testutil.CustomerSession("s-cust", "cust-1")
	req := PerformRequest{JobID: "job-1", Action: workflow.ActionConfirmWinner}

	f.backend.FailNext("confirm-winner", http.StatusConflict, "Contractor has no credits left")
	_, err := f.svc.Perform(context.Background(), &customer, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Contractor has no credits left", apperrors.GetMessage(err, ""))
	assert.Equal(t, model.JobStatusPosted, f.backend.Job("job-1").Status, "job untouched")

	history, err := f.svc.History(context.Background(), workflow.LedgerFilter{JobID: "job-1"})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, workflow.LedgerFailed, history[0].Status)

	view, err := f.svc.Perform(context.Background(), &customer, req)
	require.NoError(t, err, "a failed attempt does not block a retry")
	assert.Equal(t, model.JobStatusInProgress, view.Job.Status)
}

func TestJobWorkflowService_MissingTokenIsUnauthorized(t *testing.T) {
	f := newWorkflowFixture(t)
	f.backend.PutJob(testutil.NewJob("job-1").WithApplication("c-1").Build())
	contractor := testutil.ContractorSession("s-c", "c-1")
	contractor.Tokens = domainauth.Tokens{}

	_, err := f.svc.Perform(context.Background(), &contractor, PerformRequest{JobID: "job-1", Action: workflow.ActionClaimWon})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestJobWorkflowService_LedgerConflictSkipsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockJobWorkflowBackend(ctrl)
	ledger := mocks.NewMockActionLedger(ctrl)
	svc := NewJobWorkflowService(JobWorkflowServiceOptions{Backend: backend, Ledger: ledger})

	job := testutil.NewJob("job-1").WithApplication("c-1").Build()
	contractor := testutil.ContractorSession("s-c", "c-1")

	backend.EXPECT().GetJob(gomock.Any(), "job-1").Return(&job, nil)
	ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e workflow.LedgerEntry) (*workflow.LedgerEntry, error) {
			assert.Equal(t, workflow.Fingerprint("s-c", "job-1", workflow.ActionClaimWon, nil), e.Fingerprint)
			assert.Equal(t, "u-c-1", e.ActorID)
			return nil, apperrors.Conflict("This action was already submitted.")
		})
	backend.EXPECT().ClaimWon(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	ledger.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Perform(context.Background(), &contractor, PerformRequest{JobID: "job-1", Action: workflow.ActionClaimWon})
	assert.True(t, apperrors.IsConflict(err))
}

func TestJobWorkflowService_SettlesAfterCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockJobWorkflowBackend(ctrl)
	ledger := mocks.NewMockActionLedger(ctrl)
	svc := NewJobWorkflowService(JobWorkflowServiceOptions{Backend: backend, Ledger: ledger})

	job := testutil.NewJob("job-1").WithApplication("c-1").Build()
	contractor := testutil.ContractorSession("s-c", "c-1")
	ctx, cancel := context.WithCancel(context.Background())

	backend.EXPECT().GetJob(gomock.Any(), "job-1").Return(&job, nil)
	ledger.EXPECT().Reserve(gomock.Any(), gomock.Any()).
		Return(&workflow.LedgerEntry{ID: "entry-1", IdempotencyKey: "key-1"}, nil)
	backend.EXPECT().ClaimWon(gomock.Any(), "job-1", "key-1").
		DoAndReturn(func(ctx context.Context, _, _ string) error {
			cancel()
			return ctx.Err()
		})
	ledger.EXPECT().Complete(gomock.Any(), "entry-1", workflow.LedgerFailed, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ workflow.LedgerStatus, _ string) error {
			assert.NoError(t, ctx.Err(), "ledger write outlives the request")
			return nil
		})

	_, err := svc.Perform(ctx, &contractor, PerformRequest{JobID: "job-1", Action: workflow.ActionClaimWon})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCanceled, apperrors.GetCode(err))
}

func TestJobWorkflowService_Mine(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockJobListBackend(ctrl)
	svc := NewJobWorkflowService(JobWorkflowServiceOptions{
		Backend: mocks.NewMockJobWorkflowBackend(ctrl),
		Ledger:  data.NewMemoryLedger(data.LedgerOptions{}),
		Lister:  lister,
	})
	ctx := context.Background()
	opts := model.JobListOptions{ListOptions: model.ListOptions{Limit: 10}}
	page := &model.Page[model.Job]{Items: []model.Job{testutil.NewJob("job-1").Build()}, Total: 1}

	lister.EXPECT().ContractorJobs(gomock.Any(), "c-1", opts).Return(page, nil)
	contractor := testutil.ContractorSession("s-1", "c-1")
	got, err := svc.Mine(ctx, &contractor, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)

	lister.EXPECT().CustomerJobs(gomock.Any(), "cust-1", opts).Return(page, nil)
	customer := testutil.CustomerSession("s-2", "cust-1")
	_, err = svc.Mine(ctx, &customer, opts)
	require.NoError(t, err)

	admin := testutil.AdminSession("s-3")
	_, err = svc.Mine(ctx, &admin, opts)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = svc.Mine(ctx, nil, opts)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestJobWorkflowService_MineBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockJobListBackend(ctrl)
	svc := NewJobWorkflowService(JobWorkflowServiceOptions{
		Backend: mocks.NewMockJobWorkflowBackend(ctrl),
		Ledger:  data.NewMemoryLedger(data.LedgerOptions{}),
		Lister:  lister,
	})
	lister.EXPECT().ContractorJobs(gomock.Any(), "c-1", gomock.Any()).
		Return(nil, &marketplace.APIError{Status: http.StatusUnauthorized, Message: "Token expired"})

	contractor := testutil.ContractorSession("s-1", "c-1")
	_, err := svc.Mine(context.Background(), &contractor, model.JobListOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Token expired", apperrors.GetMessage(err, ""))
}
