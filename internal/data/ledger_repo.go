package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/target/marketplace-console/internal/data/pgxutil"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/ports"
)

const ledgerColumns = `id, idempotency_key, fingerprint, session_id, actor_id, job_id, action, amount,
	status, error, created_at, completed_at`

const (
	ledgerAbandonQuery = `
		UPDATE workflow_actions
		SET status = 'failed', error = $3, completed_at = $2
		WHERE fingerprint = $1 AND status = 'pending' AND created_at < $4`

	ledgerRecentSuccessQuery = `
		SELECT EXISTS (
			SELECT 1 FROM workflow_actions
			WHERE fingerprint = $1 AND status = 'succeeded' AND completed_at >= $2
		)`

	ledgerInsertQuery = `
		INSERT INTO workflow_actions (
			id, idempotency_key, fingerprint, session_id, actor_id, job_id, action, amount, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9)
		RETURNING ` + ledgerColumns

	ledgerCompleteQuery = `
		UPDATE workflow_actions
		SET status = $2, error = NULLIF($3, ''), completed_at = $4
		WHERE id = $1 AND status = 'pending'`

	ledgerListQuery = `
		SELECT ` + ledgerColumns + `
		FROM workflow_actions
		WHERE ($1 = '' OR job_id = $1)
		ORDER BY created_at DESC, id
		LIMIT $2`

	ledgerPurgeQuery = `DELETE FROM workflow_actions WHERE created_at < $1`
)

// LedgerRepo is the Postgres-backed workflow action ledger.
type LedgerRepo struct {
	DB   *sql.DB
	opts LedgerOptions
}

var _ ports.ActionLedger = (*LedgerRepo)(nil)

// NewLedgerRepo creates a LedgerRepo. Zero options take the package defaults.
func NewLedgerRepo(db *sql.DB, opts LedgerOptions) *LedgerRepo {
	return &LedgerRepo{DB: db, opts: opts.withDefaults()}
}

// Reserve records a pending submission. Abandoned pending rows for the same fingerprint are
// failed first; a recent success or a live pending row is a conflict.
func (r *LedgerRepo) Reserve(ctx context.Context, entry workflow.LedgerEntry) (*workflow.LedgerEntry, error) {
	now := r.opts.TimeProvider.Now().UTC()
	if err := prepareEntry(&entry, now); err != nil {
		return nil, err
	}

	var out workflow.LedgerEntry
	err := pgxutil.WithPgxTx(ctx, r.DB, nil, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ledgerAbandonQuery,
			entry.Fingerprint, now, abandonedMessage, now.Add(-r.opts.PendingTimeout),
		); err != nil {
			return err
		}

		var recent bool
		if err := tx.QueryRow(ctx, ledgerRecentSuccessQuery,
			entry.Fingerprint, now.Add(-r.opts.DuplicateWindow),
		).Scan(&recent); err != nil {
			return err
		}
		if recent {
			return errRecentSuccess()
		}

		rows, err := tx.Query(ctx, ledgerInsertQuery,
			entry.ID, entry.IdempotencyKey, entry.Fingerprint, entry.SessionID, entry.ActorID,
			entry.JobID, string(entry.Action), entry.Amount, now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[workflow.LedgerEntry])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Complete settles a pending entry.
func (r *LedgerRepo) Complete(ctx context.Context, id string, status workflow.LedgerStatus, errMsg string) error {
	if err := validateCompletion(id, status); err != nil {
		return err
	}
	now := r.opts.TimeProvider.Now().UTC()

	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, ledgerCompleteQuery, id, string(status), errMsg, now)
		affected = tag.RowsAffected()
		return err
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return errEntryNotPending(id)
	}
	return nil
}

// ListRecent returns entries newest first.
func (r *LedgerRepo) ListRecent(ctx context.Context, filter workflow.LedgerFilter) ([]*workflow.LedgerEntry, error) {
	var rowsOut []workflow.LedgerEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, ledgerListQuery, filter.JobID, clampLimit(filter.Limit))
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[workflow.LedgerEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", apperrors.MapDBError(err))
	}

	res := make([]*workflow.LedgerEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// PurgeOlderThan deletes every entry created before cutoff.
func (r *LedgerRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errors.New("purge cutoff is required")
	}
	var n int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, ledgerPurgeQuery, cutoff.UTC())
		n = tag.RowsAffected()
		return err
	}); err != nil {
		return 0, fmt.Errorf("purge ledger entries: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
