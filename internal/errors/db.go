package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// detailKey pulls the column out of "Key (idempotency_key)=(abc) already exists.".
var detailKey = regexp.MustCompile(`Key \(([^)]+)\)=`)

const msgDuplicateAction = "This action was already submitted. Refresh to see the latest state."

// MapDBError turns ledger database failures into *AppError. Errors that are not from the
// database or the context pass through untouched.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	appErr := Wrap(pgErr, ErrCodeInternal, "A database error occurred. Please try again.")
	code := pgErr.Code

	switch {
	case code == pgerrcode.UniqueViolation:
		appErr.Code = ErrCodeConflict
		appErr.Field = violatedColumn(pgErr)
		appErr.Message = "This value already exists."
		if appErr.Field == "idempotency_key" || appErr.Field == "fingerprint" {
			appErr.Message = msgDuplicateAction
		}
	case code == pgerrcode.SerializationFailure || code == pgerrcode.DeadlockDetected:
		appErr.Code = ErrCodeConflict
		appErr.Message = "Another request changed this at the same time. Please try again."
	case pgerrcode.IsIntegrityConstraintViolation(code) || pgerrcode.IsDataException(code):
		appErr.Code = ErrCodeValidation
		appErr.Field = pgErr.ColumnName
		appErr.Message = "Invalid data. Please check your input."
	case pgerrcode.IsConnectionException(code) || pgerrcode.IsInsufficientResources(code):
		appErr.Code = ErrCodeUpstream
		appErr.Message = "The ledger database is unavailable. Please try again shortly."
	}
	return appErr
}

// violatedColumn prefers the reported column, then the detail text, then the constraint suffix.
func violatedColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := detailKey.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	name := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if table := pgErr.TableName; table != "" {
		return strings.TrimPrefix(name, table+"_")
	}
	return ""
}
