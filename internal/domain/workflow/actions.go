// Package workflow holds the job workflow rules: which buttons a contractor or customer
// sees for a job, and whether a submitted action is still allowed.
package workflow

import (
	"errors"
	"fmt"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
)

// Action is a workflow button.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type Action string

const (
	ActionClaimWon          Action = "claim_won"
	ActionConfirmWinner     Action = "confirm_winner"
	ActionEnterFinalPrice   Action = "enter_final_price"
	ActionConfirmCompletion Action = "confirm_completion"
	ActionDeclineCompletion Action = "decline_completion"
	ActionSuggestPrice      Action = "suggest_price"
	ActionRequestReview     Action = "request_review"
)

// ErrActionNotAvailable is returned when an action is not offered for the job's current state.
var ErrActionNotAvailable = errors.New("action not available")

var actionLabels = map[Action]string{
	ActionClaimWon:          "I won the job",
	ActionConfirmWinner:     "Confirm winner",
	ActionEnterFinalPrice:   "Enter final price",
	ActionConfirmCompletion: "Confirm completion",
	ActionDeclineCompletion: "Decline",
	ActionSuggestPrice:      "Suggest a different price",
	ActionRequestReview:     "Request review",
}

// Valid returns true if the Action is known.
func (a Action) Valid() bool {
	_, ok := actionLabels[a]
	return ok
}

// UnmarshalText parses an action name from a form or JSON body.
func (a *Action) UnmarshalText(text []byte) error {
	v := Action(text)
	if !v.Valid() {
		return fmt.Errorf("invalid workflow action: %q", string(text))
	}
	*a = v
	return nil
}

// Label is the button text.
func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

// NeedsAmount reports whether the action submits a price.
func (a Action) NeedsAmount() bool {
	return a == ActionEnterFinalPrice || a == ActionSuggestPrice
}

// ResultingStatus is the job status the backend is expected to report after the action succeeds.
func (a Action) ResultingStatus() model.JobStatus {
	switch a {
	case ActionClaimWon:
		return model.JobStatusPosted
	case ActionConfirmWinner:
		return model.JobStatusInProgress
	case ActionEnterFinalPrice, ActionSuggestPrice:
		return model.JobStatusAwaitingFinalPriceConfirmation
	case ActionConfirmCompletion, ActionRequestReview:
		return model.JobStatusCompleted
	case ActionDeclineCompletion:
		return model.JobStatusDisputed
	default:
		return ""
	}
}

// Actor is who is looking at the job.
type Actor struct {
	Role         domainauth.Role
	UserID       string
	ContractorID string
	CustomerID   string
}

// ActorFromSession builds an Actor from a console session.
func ActorFromSession(s domainauth.Session) Actor {
	return Actor{
		Role:         s.Role,
		UserID:       s.UserID,
		ContractorID: s.ContractorID,
		CustomerID:   s.CustomerID,
	}
}

// ownApplication finds the actor's application, by contractor id or by the contractor's user id.
func ownApplication(job *model.Job, actor Actor) (*model.JobApplication, bool) {
	if job == nil {
		return nil, false
	}
	for i := range job.Applications {
		app := &job.Applications[i]
		if actor.ContractorID != "" && app.ContractorID == actor.ContractorID {
			return app, true
		}
		if actor.UserID != "" && app.ContractorUserID == actor.UserID {
			return app, true
		}
	}
	return nil, false
}

// IsJobWinner reports whether the actor is the contractor who won the job. The direct path compares
// the winner id with the actor's contractor id; the fallback compares it with the contractor id on
// the actor's own application, which covers sessions that only know the user id.
func IsJobWinner(job *model.Job, actor Actor) bool {
	if job == nil || job.WonByContractorID == nil || *job.WonByContractorID == "" {
		return false
	}
	won := *job.WonByContractorID
	if actor.ContractorID != "" && won == actor.ContractorID {
		return true
	}
	app, ok := ownApplication(job, actor)
	return ok && app.ContractorID == won
}

func hasClaimedWon(job *model.Job, actor Actor) bool {
	ids := []string{actor.ContractorID}
	if app, ok := ownApplication(job, actor); ok {
		ids = append(ids, app.ContractorID)
	}
	for _, id := range ids {
		if acc, ok := job.AccessFor(id); ok && acc.ClaimedWon {
			return true
		}
	}
	return false
}

// ownsJob is lenient when either id is unknown; the backend has the final say.
func ownsJob(job *model.Job, actor Actor) bool {
	return actor.CustomerID == "" || job.CustomerID == "" || job.CustomerID == actor.CustomerID
}

// NextActions returns the buttons to render for the actor, in display order.
// Jobs outside POSTED, IN_PROGRESS, AWAITING_FINAL_PRICE_CONFIRMATION and COMPLETED get none.
func NextActions(actor Actor, job *model.Job) []Action {
	if job == nil {
		return nil
	}

	switch actor.Role {
	case domainauth.RoleContractor:
		return contractorActions(actor, job)
	case domainauth.RoleCustomer:
		if !ownsJob(job, actor) {
			return nil
		}
		return customerActions(job)
	default:
		return nil
	}
}

func contractorActions(actor Actor, job *model.Job) []Action {
	winner := IsJobWinner(job, actor)

	switch job.Status {
	case model.JobStatusPosted:
		if _, applied := ownApplication(job, actor); applied && !winner && !hasClaimedWon(job, actor) {
			return []Action{ActionClaimWon}
		}
	case model.JobStatusInProgress:
		if winner {
			return []Action{ActionEnterFinalPrice}
		}
	case model.JobStatusCompleted:
		if winner {
			return []Action{ActionRequestReview}
		}
	}
	return nil
}

func customerActions(job *model.Job) []Action {
	switch job.Status {
	case model.JobStatusPosted:
		if len(job.ClaimedWonBy()) > 0 {
			return []Action{ActionConfirmWinner}
		}
	case model.JobStatusAwaitingFinalPriceConfirmation:
		return []Action{ActionConfirmCompletion, ActionDeclineCompletion, ActionSuggestPrice}
	}
	return nil
}

// Allowed returns nil when the action is among NextActions, otherwise an error wrapping
// ErrActionNotAvailable that names the job's current status.
func Allowed(actor Actor, job *model.Job, action Action) error {
	if !action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrActionNotAvailable, string(action))
	}
	for _, a := range NextActions(actor, job) {
		if a == action {
			return nil
		}
	}
	status := model.JobStatus("")
	if job != nil {
		status = job.Status
	}
	return fmt.Errorf("%w: %q cannot be used while the job is %s", ErrActionNotAvailable, action.Label(), status.Label())
}
