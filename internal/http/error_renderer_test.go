package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/marketplace-console/internal/errors"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperrors.ErrorCode
		msg    string
	}{
		{
			name:   "backend unauthorized keeps message",
			err:    apperrors.Unauthorized("Token expired"),
			status: http.StatusUnauthorized,
			code:   apperrors.ErrCodeUnauthorized,
			msg:    "Token expired",
		},
		{
			name:   "wrapped app error",
			err:    fmt.Errorf("perform: %w", apperrors.Conflict("Job already completed")),
			status: http.StatusConflict,
			code:   apperrors.ErrCodeConflict,
			msg:    "Job already completed",
		},
		{
			name:   "plain error is hidden",
			err:    errors.New("dial tcp 10.0.0.1:5432: connection refused"),
			status: http.StatusInternalServerError,
			code:   apperrors.ErrCodeInternal,
			msg:    errMsgUnexpected,
		},
		{
			name:   "empty message",
			err:    apperrors.Forbidden(""),
			status: http.StatusForbidden,
			code:   apperrors.ErrCodeForbidden,
			msg:    errMsgUnexpected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := describeError(tt.err)
			assert.Equal(t, tt.status, f.Status)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.msg, f.Message)
		})
	}
}

func TestRenderError_HTMXToast(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/jobs/j-1/actions/claim_won", nil)
	r.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()

	RenderError(ErrorOpts{W: rec, R: r, Err: apperrors.Unauthorized("Token expired"), Logger: quietLogger})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("Hx-Reswap"))
	assert.JSONEq(t, `{"showToast":{"message":"Token expired","type":"error"}}`, rec.Header().Get("Hx-Trigger"))
	assert.Equal(t, "Token expired", decodeErrorBody(t, rec).Message)
}

func TestRenderError_BrowserPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/invoices/missing", nil)
	r.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	var got failure
	RenderError(ErrorOpts{
		W:      rec,
		R:      r,
		Err:    apperrors.NotFound("Invoice not found."),
		Logger: quietLogger,
		Page: func(w http.ResponseWriter, _ *http.Request, f failure) {
			got = f
			w.WriteHeader(f.Status)
		},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invoice not found.", got.Message)
}

func TestRenderError_BrowserWithoutPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	RenderError(ErrorOpts{W: rec, R: r, Err: apperrors.Forbidden("Admins only."), Logger: quietLogger})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admins only.")
}

func TestRenderError_APIJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/admin/invoices/i-1/refund", nil)
	rec := httptest.NewRecorder()

	RenderError(ErrorOpts{
		W:      rec,
		R:      r,
		Err:    apperrors.ValidationField("amount", "Refund cannot exceed £50.00."),
		Logger: quietLogger,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Hx-Trigger"))
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "validation", body.Error)
	assert.Equal(t, "amount", body.Field)
	assert.Equal(t, "Refund cannot exceed £50.00.", body.Message)
}
