package data

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
)

const (
	// DefaultDuplicateWindow is how long after a success the same submission is still refused.
	DefaultDuplicateWindow = 10 * time.Second
	// DefaultPendingTimeout is how long a pending entry may block its fingerprint before it is
	// treated as abandoned. It must exceed the backend request timeout.
	DefaultPendingTimeout = 2 * time.Minute

	defaultLedgerLimit = 50
	maxLedgerLimit     = 500

	abandonedMessage = "abandoned: no result recorded"
)

// LedgerOptions tunes both ledger implementations.
type LedgerOptions struct {
	DuplicateWindow time.Duration
	PendingTimeout  time.Duration
	TimeProvider    TimeProvider
}

func (o LedgerOptions) withDefaults() LedgerOptions {
	if o.DuplicateWindow <= 0 {
		o.DuplicateWindow = DefaultDuplicateWindow
	}
	if o.PendingTimeout <= 0 {
		o.PendingTimeout = DefaultPendingTimeout
	}
	if o.TimeProvider == nil {
		o.TimeProvider = RealTimeProvider{}
	}
	return o
}

func errInFlight() error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeConflict,
		Message: "This action was already submitted. Refresh to see the latest state.",
		Field:   "fingerprint",
	}
}

func errRecentSuccess() error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeConflict,
		Message: "This action just went through. Refresh to see the latest state.",
		Field:   "fingerprint",
	}
}

// prepareEntry validates a reservation and fills server-side fields.
func prepareEntry(e *workflow.LedgerEntry, now time.Time) error {
	e.JobID = strings.TrimSpace(e.JobID)
	switch {
	case e.JobID == "":
		return apperrors.ValidationField("job_id", "job_id is required")
	case e.SessionID == "":
		return apperrors.ValidationField("session_id", "session_id is required")
	case !e.Action.Valid():
		return apperrors.ValidationField("action", "unknown workflow action")
	case e.Fingerprint == "":
		return apperrors.ValidationField("fingerprint", "fingerprint is required")
	case e.Amount != nil && *e.Amount <= 0:
		return apperrors.ValidationField("amount", "amount must be greater than zero")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.IdempotencyKey == "" {
		e.IdempotencyKey = uuid.NewString()
	}
	e.Status = workflow.LedgerPending
	e.Error = nil
	e.CreatedAt = now
	e.CompletedAt = nil
	return nil
}

func validateCompletion(id string, status workflow.LedgerStatus) error {
	if id == "" {
		return apperrors.ValidationField("id", "ledger entry id is required")
	}
	if status != workflow.LedgerSucceeded && status != workflow.LedgerFailed {
		return apperrors.ValidationField("status", "status must be succeeded or failed")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLedgerLimit
	}
	return min(limit, maxLedgerLimit)
}

func errEntryNotPending(id string) error {
	return apperrors.NotFoundf("pending ledger entry %s not found", id)
}
