package httpx

import (
	"net/http"
	"strings"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/service"
)

type actionJSON struct {
	Action      workflow.Action `json:"action"`
	Label       string          `json:"label"`
	NeedsAmount bool            `json:"needs_amount"`
}

type jobViewResponse struct {
	Job      *model.Job   `json:"job"`
	Actions  []actionJSON `json:"actions"`
	IsWinner bool         `json:"is_winner"`
}

func jobViewJSON(v *service.JobView) jobViewResponse {
	actions := make([]actionJSON, 0, len(v.Actions))
	for _, a := range v.Actions {
		actions = append(actions, actionJSON{Action: a, Label: a.Label(), NeedsAmount: a.NeedsAmount()})
	}
	return jobViewResponse{Job: v.Job, Actions: actions, IsWinner: v.IsWinner}
}

// ListMyJobs lists the caller's jobs.
// GET /api/jobs?status=&limit=&offset=.
func (h *APIHandlers) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	opts, err := jobListOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.Jobs.Mine(r.Context(), requestSession(r), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listJSON(page))
}

func jobListOptions(r *http.Request) (model.JobListOptions, error) {
	opts := model.JobListOptions{ListOptions: listOptions(r)}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if err := opts.Status.UnmarshalText([]byte(raw)); err != nil {
			return opts, apperrors.ValidationField("status", "Unknown job status.")
		}
	}
	return opts, nil
}

// GetJob returns a job with the caller's available workflow actions.
// GET /api/jobs/{id}.
func (h *APIHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	view, err := h.Jobs.View(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobViewJSON(view))
}

type performActionRequest struct {
	Action string       `json:"action"`
	Amount *model.Money `json:"amount,omitempty"`
}

// PerformJobAction submits one workflow button and returns the refreshed job.
// POST /api/jobs/{id}/actions.
func (h *APIHandlers) PerformJobAction(w http.ResponseWriter, r *http.Request) {
	var req performActionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	view, err := h.Jobs.Perform(r.Context(), requestSession(r), service.PerformRequest{
		JobID:  r.PathValue("id"),
		Action: workflow.Action(strings.ToLower(strings.TrimSpace(req.Action))),
		Amount: req.Amount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobViewJSON(view))
}

// LedgerHistory lists recent workflow submissions for support.
// GET /api/admin/ledger?job_id=&limit=.
func (h *APIHandlers) LedgerHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	entries, err := h.Jobs.History(r.Context(), workflow.LedgerFilter{
		JobID: strings.TrimSpace(r.URL.Query().Get("job_id")),
		Limit: limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []*workflow.LedgerEntry{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": entries})
}
