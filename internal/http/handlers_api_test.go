package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/service"
)

func TestAPI_GetJob(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/api/jobs/j-1", sess: customerSession})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[jobViewResponse](t, rec)
	assert.Equal(t, "Fix leaking tap", got.Job.Title)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, actionJSON{Action: workflow.ActionClaimWon, Label: "I won the job"}, got.Actions[0])
}

func TestAPI_ListMyJobs_BadStatus(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/api/jobs?status=floating", sess: contractorSession})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON[errorBody](t, rec)
	assert.Equal(t, "status", body.Field)
	assert.Equal(t, "Unknown job status.", body.Message)
	assert.Empty(t, env.jobs.listed)
}

func TestAPI_ListMyJobs_EmptyItemsIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.jobs = map[string]*service.JobView{}
	rec := env.do(t, req{method: http.MethodGet, target: "/api/jobs?limit=5&offset=10", sess: contractorSession})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"limit":5,"offset":10}`, rec.Body.String())
}

func TestAPI_PerformJobAction(t *testing.T) {
	t.Run("requires json", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, req{method: http.MethodPost, target: "/api/jobs/j-1/actions", sess: contractorSession})

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Empty(t, env.jobs.performed)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, req{
			method: http.MethodPost,
			target: "/api/jobs/j-1/actions",
			sess:   contractorSession,
			json:   `{"action":"claim_won","bogus":1}`,
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_json", decodeJSON[errorBody](t, rec).Error)
	})

	t.Run("normalises action and passes amount", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, req{
			method: http.MethodPost,
			target: "/api/jobs/j-1/actions",
			sess:   contractorSession,
			json:   `{"action":" ENTER_FINAL_PRICE ","amount":24050}`,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, env.jobs.performed, 1)
		got := env.jobs.performed[0]
		assert.Equal(t, workflow.ActionEnterFinalPrice, got.Action)
		require.NotNil(t, got.Amount)
		assert.Equal(t, model.Money(24050), *got.Amount)
	})

	t.Run("backend rejection", func(t *testing.T) {
		env := newTestEnv(t)
		env.jobs.perform = func(service.PerformRequest) (*service.JobView, error) {
			return nil, apperrors.Conflict("Job is no longer open.")
		}
		rec := env.do(t, req{
			method: http.MethodPost,
			target: "/api/jobs/j-1/actions",
			sess:   customerSession,
			json:   `{"action":"confirm_winner"}`,
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Job is no longer open.", decodeJSON[errorBody](t, rec).Message)
		assert.Empty(t, rec.Header().Get("Hx-Trigger"))
	})
}

func TestAPI_LedgerHistory(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.history = []*workflow.LedgerEntry{{
		ID:        "l-1",
		JobID:     "j-1",
		Action:    workflow.ActionClaimWon,
		Status:    workflow.LedgerSucceeded,
		CreatedAt: fixedNow,
	}}

	rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/ledger?job_id=j-1", sess: adminSession})
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Items []workflow.LedgerEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, workflow.LedgerSucceeded, got.Items[0].Status)

	rec = env.do(t, req{method: http.MethodGet, target: "/api/admin/ledger", sess: contractorSession})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_ExportCSV(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/export/users.csv?preset=contact", sess: adminSession})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	want := `attachment; filename="users-` + time.Now().UTC().Format("20060102") + `.csv"`
	assert.Equal(t, want, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "id,email\nu-1,sam@example.com\n", rec.Body.String())
}

func TestAPI_ExportCSV_Failures(t *testing.T) {
	t.Run("unknown dataset", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/export/secrets.csv", sess: adminSession})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeJSON[errorBody](t, rec).Message, "secrets.csv")
	})

	t.Run("error before first row", func(t *testing.T) {
		env := newTestEnv(t)
		env.export.err = apperrors.ValidationField("preset", "Unknown preset.")
		rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/export/users.csv?preset=nope", sess: adminSession})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})

	t.Run("admins only", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/export/users.csv", sess: customerSession})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAPI_ExportPresets(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/api/admin/export/presets?dataset=Users", sess: adminSession})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dataset":"users","presets":["default","contact"]}`, rec.Body.String())

	rec = env.do(t, req{method: http.MethodGet, target: "/api/admin/export/presets?dataset=jobs", sess: adminSession})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Search(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		want      int
		wantQuery string
	}{
		{name: "contractors by default", target: "/api/search?q=plumb", want: http.StatusOK, wantQuery: "contractors:plumb"},
		{name: "users need admin", target: "/api/search?field=users&q=ann", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(t, req{method: http.MethodGet, target: tt.target, sess: contractorSession})

			assert.Equal(t, tt.want, rec.Code)
			if tt.wantQuery == "" {
				assert.Empty(t, env.search.queries)
				return
			}
			assert.Equal(t, []string{tt.wantQuery}, env.search.queries)
		})
	}
}

func TestAPI_SearchUsersAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/api/search?field=users&q=ann", sess: adminSession})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[service.SearchHits](t, rec)
	assert.Equal(t, "ann", got.Query)
	require.Len(t, got.Users, 1)
	assert.Equal(t, "ann@example.com", got.Users[0].Email)
}

func TestUISearchHits(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, req{method: http.MethodGet, target: "/search?field=users&q=ann", sess: adminSession, htmx: true})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="search-hits"`)
	assert.Contains(t, body, "ann@example.com")
}

func TestAPI_Subscriptions(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, req{method: http.MethodGet, target: "/api/subscriptions/current", sess: contractorSession})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subscription":null}`, rec.Body.String())

	rec = env.do(t, req{method: http.MethodPost, target: "/api/subscriptions", sess: contractorSession, json: `{"plan":"monthly"}`})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sub-monthly", decodeJSON[model.Checkout](t, rec).SubscriptionID)

	rec = env.do(t, req{method: http.MethodPost, target: "/api/subscriptions", sess: customerSession, json: `{"plan":"monthly"}`})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_Me(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, req{method: http.MethodGet, target: "/api/auth/me", sess: contractorSession})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, strings.ToLower(body), "token")
	var got struct {
		Authenticated bool        `json:"authenticated"`
		User          sessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Authenticated)
	assert.Equal(t, "c-1", got.User.ContractorID)
	assert.Equal(t, "Sam", got.User.FirstName)

	rec = env.do(t, req{method: http.MethodGet, target: "/api/auth/me"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}
