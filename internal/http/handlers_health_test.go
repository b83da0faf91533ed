package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			healthHandler(rec, httptest.NewRequest(method, "/healthz", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if method == http.MethodHead {
				assert.Zero(t, rec.Body.Len())
				return
			}
			assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		})
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	decode := func(t *testing.T, body []byte) (status string, checks map[string]string) {
		t.Helper()
		var out struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(body, &out))
		return out.Status, out.Checks
	}

	rec := env.do(t, req{method: http.MethodGet, target: "/readyz"})
	require.Equal(t, http.StatusOK, rec.Code)
	status, checks := decode(t, rec.Body.Bytes())
	assert.Equal(t, "ok", status)
	assert.Equal(t, "ok", checks["redis"])

	env.readinessErrs["redis"] = errors.New("dial tcp: connection refused")
	rec = env.do(t, req{method: http.MethodGet, target: "/readyz"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	status, checks = decode(t, rec.Body.Bytes())
	assert.Equal(t, "unavailable", status)
	assert.Contains(t, checks["redis"], "connection refused")
}
