// Package workflowtest runs an in-memory marketplace backend for job workflow tests.
//
// Bearer tokens follow the testutil session builders: "tok-<id>" identifies contractor or customer <id>.
package workflowtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/target/marketplace-console/internal/domain/model"
)

// Call records one request the backend received.
type Call struct {
	Method         string
	Path           string
	IdempotencyKey string
	Token          string
}

type failure struct {
	status  int
	message string
}

// Backend is a fake marketplace API holding jobs in memory.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	jobs     map[string]*model.Job
	calls    []Call
	seenKeys map[string]bool
	failures map[string]failure
}

// TestingT is the subset of *testing.T the backend needs.
type TestingT interface {
	Helper()
	Cleanup(func())
}

// NewBackend starts the fake backend; it is closed when the test ends.
func NewBackend(t TestingT) *Backend {
	t.Helper()
	b := &Backend{
		jobs:     map[string]*model.Job{},
		seenKeys: map[string]bool{},
		failures: map[string]failure{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/jobs/{id}", b.getJob)
	mux.HandleFunc("POST /api/jobs/{id}/{verb}", b.mutateJob)
	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the API base URL to configure the client with.
func (b *Backend) URL() string { return b.Server.URL + "/api" }

// PutJob stores (or replaces) a job.
func (b *Backend) PutJob(job model.Job) {
	b.mu.Lock()
	defer b.mu.Unlock()
	j := job
	b.jobs[job.ID] = &j
}

// Job returns the current state of a job.
func (b *Backend) Job(id string) model.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	if j, ok := b.jobs[id]; ok {
		return *j
	}
	return model.Job{}
}

// Calls returns every request received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CountVerb counts POSTs to /jobs/{id}/{verb}.
func (b *Backend) CountVerb(verb string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == http.MethodPost && strings.HasSuffix(c.Path, "/"+verb) {
			n++
		}
	}
	return n
}

// FailNext makes the next request to verb fail with status and message.
func (b *Backend) FailNext(verb string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[verb] = failure{status: status, message: message}
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method:         r.Method,
			Path:           r.URL.Path,
			IdempotencyKey: r.Header.Get("Idempotency-Key"),
			Token:          strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) getJob(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	job, ok := b.jobs[r.PathValue("id")]
	var snapshot model.Job
	if ok {
		snapshot = *job
	}
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	writeData(w, snapshot)
}

type amountBody struct {
	FinalAmount     *model.Money `json:"finalAmount"`
	SuggestedAmount *model.Money `json:"suggestedAmount"`
	Approved        *bool        `json:"approved"`
}

func (b *Backend) mutateJob(w http.ResponseWriter, r *http.Request) {
	id, verb := r.PathValue("id"), r.PathValue("verb")
	caller := strings.TrimPrefix(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "), "tok-")

	var body amountBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid body")
			return
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if f, ok := b.failures[verb]; ok {
		delete(b.failures, verb)
		writeError(w, f.status, f.message)
		return
	}
	if caller == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	job, ok := b.jobs[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		if b.seenKeys[key] {
			writeData(w, nil)
			return
		}
		b.seenKeys[key] = true
	}

	if msg := apply(job, verb, caller, body); msg != "" {
		writeError(w, http.StatusConflict, msg)
		return
	}
	writeData(w, nil)
}

// apply mutates job for verb and returns an error message when the transition is refused.
func apply(job *model.Job, verb, caller string, body amountBody) string {
	switch verb {
	case "claim-won":
		if job.Status != model.JobStatusPosted {
			return "Job is no longer open"
		}
		job.JobAccess = append(job.JobAccess, model.JobAccess{ContractorID: caller, ClaimedWon: true, CreditUsed: true})
	case "confirm-winner":
		claimed := job.ClaimedWonBy()
		if job.Status != model.JobStatusPosted || len(claimed) == 0 {
			return "No contractor has claimed this job"
		}
		winner := claimed[0]
		job.WonByContractorID = &winner
		job.Status = model.JobStatusInProgress
		for i := range job.Applications {
			if job.Applications[i].ContractorID == winner {
				job.Applications[i].Status = model.ApplicationAccepted
			}
		}
	case "complete":
		if job.Status != model.JobStatusInProgress || body.FinalAmount == nil {
			return "Job cannot be completed"
		}
		job.FinalAmount = body.FinalAmount
		job.Status = model.JobStatusAwaitingFinalPriceConfirmation
	case "confirm-completion":
		if job.Status != model.JobStatusAwaitingFinalPriceConfirmation || body.Approved == nil {
			return "Nothing to confirm"
		}
		if *body.Approved {
			job.Status = model.JobStatusCompleted
			job.CustomerConfirmed = true
		} else {
			job.Status = model.JobStatusDisputed
		}
	case "suggest-price":
		if body.SuggestedAmount == nil {
			return "Suggested amount required"
		}
		job.ContractorProposedAmount = body.SuggestedAmount
	case "request-review":
		if job.Status != model.JobStatusCompleted {
			return "Job is not completed"
		}
	default:
		return fmt.Sprintf("unknown action %q", verb)
	}
	return ""
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data, "message": ""})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "data": nil, "message": message})
}
