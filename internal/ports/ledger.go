package ports

import (
	"context"
	"time"

	"github.com/target/marketplace-console/internal/domain/workflow"
)

// ActionLedger records workflow submissions so a repeated submit is refused before it reaches the backend.
type ActionLedger interface {
	// Reserve records a pending entry. A pending entry with the same fingerprint, or one that succeeded
	// within the duplicate window, yields a conflict error.
	Reserve(ctx context.Context, entry workflow.LedgerEntry) (*workflow.LedgerEntry, error)
	// Complete marks an entry succeeded or failed.
	Complete(ctx context.Context, id string, status workflow.LedgerStatus, errMsg string) error
	// ListRecent returns the newest entries first.
	ListRecent(ctx context.Context, filter workflow.LedgerFilter) ([]*workflow.LedgerEntry, error)
	// PurgeOlderThan deletes entries created before the cutoff and returns how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
