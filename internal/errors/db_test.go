package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		wantField string
	}{
		{name: "deadline", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "wrapped cancel", err: fmt.Errorf("query: %w", context.Canceled), wantCode: ErrCodeCanceled},
		{name: "no rows", err: pgx.ErrNoRows, wantCode: ErrCodeNotFound},
		{
			name:      "check violation",
			err:       &pgconn.PgError{Code: pgerrcode.CheckViolation, ColumnName: "amount"},
			wantCode:  ErrCodeValidation,
			wantField: "amount",
		},
		{
			name:     "bad text representation",
			err:      &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation},
			wantCode: ErrCodeValidation,
		},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, wantCode: ErrCodeConflict},
		{
			name:     "connection lost",
			err:      &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			wantCode: ErrCodeUpstream,
		},
		{name: "syntax error", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, wantCode: ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(tt.err)
			assert.Equal(t, tt.wantCode, GetCode(got))
			assert.Equal(t, tt.wantField, GetField(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestMapDBError_PassThrough(t *testing.T) {
	require.NoError(t, MapDBError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, MapDBError(plain))
}

func TestMapDBError_DuplicateSubmission(t *testing.T) {
	tests := []struct {
		name  string
		pgErr *pgconn.PgError
	}{
		{
			name: "from detail",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: "Key (idempotency_key)=(abc) already exists.",
			},
		},
		{
			name: "from constraint name",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				TableName:      "workflow_actions",
				ConstraintName: "workflow_actions_idempotency_key_key",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(fmt.Errorf("insert: %w", tt.pgErr))
			require.True(t, IsConflict(err))
			assert.Equal(t, "idempotency_key", GetField(err))
			assert.Equal(t, msgDuplicateAction, GetMessage(err, ""))

			var target *pgconn.PgError
			assert.ErrorAs(t, err, &target, "pg error stays in the chain")
		})
	}
}
