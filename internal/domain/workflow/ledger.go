package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/domain/model"
)

// LedgerStatus is the outcome of a recorded workflow submission.
type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "pending"
	LedgerSucceeded LedgerStatus = "succeeded"
	LedgerFailed    LedgerStatus = "failed"
)

// LedgerEntry is one workflow submission.
type LedgerEntry struct {
	ID             string       `json:"id"                     db:"id"`
	IdempotencyKey string       `json:"idempotency_key"        db:"idempotency_key"`
	Fingerprint    string       `json:"fingerprint"            db:"fingerprint"`
	SessionID      string       `json:"session_id"             db:"session_id"`
	ActorID        string       `json:"actor_id"               db:"actor_id"`
	JobID          string       `json:"job_id"                 db:"job_id"`
	Action         Action       `json:"action"                 db:"action"`
	Amount         *int64       `json:"amount,omitempty"       db:"amount"`
	Status         LedgerStatus `json:"status"                 db:"status"`
	Error          *string      `json:"error,omitempty"        db:"error"`
	CreatedAt      time.Time    `json:"created_at"             db:"created_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
}

// Fingerprint identifies "the same click": same session, job, action and amount.
func Fingerprint(sessionID, jobID string, action Action, amount *model.Money) string {
	parts := []string{sessionID, jobID, string(action), ""}
	if amount != nil {
		parts[3] = amount.Decimal()
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// LedgerFilter narrows ledger listings. Zero Limit means the store default.
type LedgerFilter struct {
	JobID string
	Limit int
}
