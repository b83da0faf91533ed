package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
)

func strPtr(s string) *string { return &s }

var (
	alice    = Actor{Role: domainauth.RoleContractor, UserID: "u-alice", ContractorID: "c-alice"}
	bob      = Actor{Role: domainauth.RoleContractor, UserID: "u-bob", ContractorID: "c-bob"}
	customer = Actor{Role: domainauth.RoleCustomer, UserID: "u-cust", CustomerID: "cust-1"}
	admin    = Actor{Role: domainauth.RoleAdmin, UserID: "u-admin"}
)

func jobWith(status model.JobStatus, opts ...func(*model.Job)) *model.Job {
	j := &model.Job{
		ID:         "job-1",
		Title:      "Rewire kitchen",
		Status:     status,
		CustomerID: "cust-1",
		Applications: []model.JobApplication{
			{ID: "app-1", ContractorID: "c-alice", ContractorUserID: "u-alice", Status: model.ApplicationPending},
		},
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

func wonBy(id string) func(*model.Job) {
	return func(j *model.Job) { j.WonByContractorID = strPtr(id) }
}

func claimedBy(id string) func(*model.Job) {
	return func(j *model.Job) {
		j.JobAccess = append(j.JobAccess, model.JobAccess{ContractorID: id, ClaimedWon: true, CreditUsed: true})
	}
}

func TestIsJobWinner(t *testing.T) {
	tests := []struct {
		name  string
		job   *model.Job
		actor Actor
		want  bool
	}{
		{name: "nil job", job: nil, actor: alice, want: false},
		{name: "no winner yet", job: jobWith(model.JobStatusPosted), actor: alice, want: false},
		{name: "direct match", job: jobWith(model.JobStatusInProgress, wonBy("c-alice")), actor: alice, want: true},
		{
			name:  "fallback through own application",
			job:   jobWith(model.JobStatusInProgress, wonBy("c-alice")),
			actor: Actor{Role: domainauth.RoleContractor, UserID: "u-alice"},
			want:  true,
		},
		{name: "someone else won", job: jobWith(model.JobStatusInProgress, wonBy("c-bob")), actor: alice, want: false},
		{
			name:  "fallback does not match other application",
			job:   jobWith(model.JobStatusInProgress, wonBy("c-alice")),
			actor: Actor{Role: domainauth.RoleContractor, UserID: "u-bob"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJobWinner(tt.job, tt.actor))
		})
	}
}

func TestNextActions(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		job   *model.Job
		want  []Action
	}{
		{
			name:  "applicant can claim a posted job",
			actor: alice,
			job:   jobWith(model.JobStatusPosted),
			want:  []Action{ActionClaimWon},
		},
		{
			name:  "claim hidden once claimed",
			actor: alice,
			job:   jobWith(model.JobStatusPosted, claimedBy("c-alice")),
			want:  nil,
		},
		{
			name:  "non-applicant cannot claim",
			actor: bob,
			job:   jobWith(model.JobStatusPosted),
			want:  nil,
		},
		{
			name:  "customer confirms winner after a claim",
			actor: customer,
			job:   jobWith(model.JobStatusPosted, claimedBy("c-alice")),
			want:  []Action{ActionConfirmWinner},
		},
		{
			name:  "customer waits for a claim",
			actor: customer,
			job:   jobWith(model.JobStatusPosted),
			want:  nil,
		},
		{
			name:  "winner enters final price",
			actor: alice,
			job:   jobWith(model.JobStatusInProgress, wonBy("c-alice")),
			want:  []Action{ActionEnterFinalPrice},
		},
		{
			name:  "loser sees nothing in progress",
			actor: bob,
			job:   jobWith(model.JobStatusInProgress, wonBy("c-alice")),
			want:  nil,
		},
		{
			name:  "customer reviews the final price",
			actor: customer,
			job:   jobWith(model.JobStatusAwaitingFinalPriceConfirmation, wonBy("c-alice")),
			want:  []Action{ActionConfirmCompletion, ActionDeclineCompletion, ActionSuggestPrice},
		},
		{
			name:  "other customer sees nothing",
			actor: Actor{Role: domainauth.RoleCustomer, CustomerID: "cust-2"},
			job:   jobWith(model.JobStatusAwaitingFinalPriceConfirmation, wonBy("c-alice")),
			want:  nil,
		},
		{
			name:  "winner requests review on completion",
			actor: alice,
			job:   jobWith(model.JobStatusCompleted, wonBy("c-alice")),
			want:  []Action{ActionRequestReview},
		},
		{
			name:  "winner via application fallback",
			actor: Actor{Role: domainauth.RoleContractor, UserID: "u-alice"},
			job:   jobWith(model.JobStatusCompleted, wonBy("c-alice")),
			want:  []Action{ActionRequestReview},
		},
		{
			name:  "disputed job has no actions",
			actor: customer,
			job:   jobWith(model.JobStatusDisputed, wonBy("c-alice")),
			want:  nil,
		},
		{
			name:  "cancelled job has no actions",
			actor: alice,
			job:   jobWith(model.JobStatusCancelled, wonBy("c-alice")),
			want:  nil,
		},
		{
			name:  "admin gets no workflow buttons",
			actor: admin,
			job:   jobWith(model.JobStatusAwaitingFinalPriceConfirmation),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextActions(tt.actor, tt.job))
		})
	}
}

func TestAllowed(t *testing.T) {
	job := jobWith(model.JobStatusInProgress, wonBy("c-alice"))

	require.NoError(t, Allowed(alice, job, ActionEnterFinalPrice))

	err := Allowed(customer, job, ActionConfirmCompletion)
	require.ErrorIs(t, err, ErrActionNotAvailable)
	assert.Contains(t, err.Error(), "In progress")

	err = Allowed(alice, job, Action("teleport"))
	require.ErrorIs(t, err, ErrActionNotAvailable)
}

func TestAction_Properties(t *testing.T) {
	assert.True(t, ActionSuggestPrice.NeedsAmount())
	assert.True(t, ActionEnterFinalPrice.NeedsAmount())
	assert.False(t, ActionConfirmCompletion.NeedsAmount())
	assert.Equal(t, model.JobStatusDisputed, ActionDeclineCompletion.ResultingStatus())
	assert.Equal(t, model.JobStatusInProgress, ActionConfirmWinner.ResultingStatus())

	var a Action
	require.NoError(t, a.UnmarshalText([]byte("claim_won")))
	assert.Equal(t, ActionClaimWon, a)
	require.Error(t, a.UnmarshalText([]byte("claim")))
}

func TestFingerprint(t *testing.T) {
	amt := model.Pounds(120)
	other := model.Pounds(121)

	a := Fingerprint("s1", "job-1", ActionSuggestPrice, &amt)
	assert.Equal(t, a, Fingerprint("s1", "job-1", ActionSuggestPrice, &amt))
	assert.NotEqual(t, a, Fingerprint("s1", "job-1", ActionSuggestPrice, &other))
	assert.NotEqual(t, a, Fingerprint("s2", "job-1", ActionSuggestPrice, &amt))
	assert.NotEqual(t, a, Fingerprint("s1", "job-1", ActionSuggestPrice, nil))
}
