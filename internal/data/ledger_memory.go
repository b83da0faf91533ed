package data

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/target/marketplace-console/internal/domain/workflow"
	"github.com/target/marketplace-console/internal/ports"
)

// MemoryLedger is the in-process ledger used when Postgres is not configured.
// It enforces the same rules as LedgerRepo within a single console instance.
type MemoryLedger struct {
	mu      sync.Mutex
	opts    LedgerOptions
	entries []*workflow.LedgerEntry // oldest first
}

var _ ports.ActionLedger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger(opts LedgerOptions) *MemoryLedger {
	return &MemoryLedger{opts: opts.withDefaults()}
}

// Reserve implements ports.ActionLedger.
func (m *MemoryLedger) Reserve(_ context.Context, entry workflow.LedgerEntry) (*workflow.LedgerEntry, error) {
	now := m.opts.TimeProvider.Now().UTC()
	if err := prepareEntry(&entry, now); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staleBefore := now.Add(-m.opts.PendingTimeout)
	recentAfter := now.Add(-m.opts.DuplicateWindow)
	for _, e := range m.entries {
		if e.Fingerprint == entry.Fingerprint {
			switch {
			case e.Status == workflow.LedgerPending && e.CreatedAt.Before(staleBefore):
				settle(e, workflow.LedgerFailed, abandonedMessage, now)
			case e.Status == workflow.LedgerPending:
				return nil, errInFlight()
			case e.Status == workflow.LedgerSucceeded && e.CompletedAt != nil && !e.CompletedAt.Before(recentAfter):
				return nil, errRecentSuccess()
			}
		}
		if e.IdempotencyKey == entry.IdempotencyKey && e.Status != workflow.LedgerFailed {
			return nil, errInFlight()
		}
	}

	stored := entry
	m.entries = append(m.entries, &stored)
	out := stored
	return &out, nil
}

// Complete implements ports.ActionLedger.
func (m *MemoryLedger) Complete(_ context.Context, id string, status workflow.LedgerStatus, errMsg string) error {
	if err := validateCompletion(id, status); err != nil {
		return err
	}
	now := m.opts.TimeProvider.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id && e.Status == workflow.LedgerPending {
			settle(e, status, errMsg, now)
			return nil
		}
	}
	return errEntryNotPending(id)
}

// ListRecent implements ports.ActionLedger.
func (m *MemoryLedger) ListRecent(_ context.Context, filter workflow.LedgerFilter) ([]*workflow.LedgerEntry, error) {
	limit := clampLimit(filter.Limit)

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*workflow.LedgerEntry, 0, min(limit, len(m.entries)))
	for _, e := range slices.Backward(m.entries) {
		if len(out) == limit {
			break
		}
		if filter.JobID != "" && e.JobID != filter.JobID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// PurgeOlderThan implements ports.ActionLedger.
func (m *MemoryLedger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errors.New("purge cutoff is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.entries)
	m.entries = slices.DeleteFunc(m.entries, func(e *workflow.LedgerEntry) bool {
		return e.CreatedAt.Before(cutoff)
	})
	return int64(before - len(m.entries)), nil
}

func settle(e *workflow.LedgerEntry, status workflow.LedgerStatus, errMsg string, at time.Time) {
	e.Status = status
	e.CompletedAt = &at
	e.Error = nil
	if errMsg != "" {
		msg := errMsg
		e.Error = &msg
	}
}
