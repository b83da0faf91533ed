package httpx

import (
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/http/ui/viewmodel"
	"github.com/target/marketplace-console/internal/http/validation"
	"github.com/target/marketplace-console/internal/service"
)

var actionDoneMessages = map[workflow.Action]string{
	workflow.ActionClaimWon:          "We've let the customer know you won this job.",
	workflow.ActionConfirmWinner:     "Winner confirmed.",
	workflow.ActionEnterFinalPrice:   "Final price sent to the customer.",
	workflow.ActionConfirmCompletion: "Job marked as completed.",
	workflow.ActionDeclineCompletion: "Final price declined.",
	workflow.ActionSuggestPrice:      "Price suggestion sent.",
	workflow.ActionRequestReview:     "Review requested.",
}

// paginationFor builds the pager for a fetched page.
func paginationFor[T any](r *http.Request, page *model.Page[T], opts model.ListOptions) viewmodel.Pagination {
	return viewmodel.NewPagination(page.Total, opts.Limit, opts.Offset, len(page.Items), func(offset int) string {
		return pageURL(r, offset)
	})
}

// Home sends admins to the dashboard and lists everyone else's jobs.
// GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	if sess.Role == domainauth.RoleAdmin {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	opts, err := jobListOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.Jobs.Mine(r.Context(), sess, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "My jobs", CurrentPage: PageHome}).
		With("Jobs", page.Items).
		With("Status", string(opts.Status)).
		With("Statuses", []model.JobStatus{
			model.JobStatusPosted,
			model.JobStatusInProgress,
			model.JobStatusAwaitingFinalPriceConfirmation,
			model.JobStatusCompleted,
		}).
		WithPagination(paginationFor(r, page, opts.ListOptions)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// JobPage shows a job with the viewer's workflow buttons.
// GET /jobs/{id}.
func (h *UIHandlers) JobPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.Jobs.View(r.Context(), requestSession(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: view.Job.Title, CurrentPage: PageJob}).
		With("View", view).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// JobAction handles one workflow button. htmx gets the refreshed workflow panel and a toast;
// failures leave the panel untouched and raise an error toast instead.
// POST /jobs/{id}/actions/{action}.
func (h *UIHandlers) JobAction(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	action := workflow.Action(strings.ToLower(r.PathValue("action")))
	if !action.Valid() {
		h.fail(w, r, apperrors.NotFound("Unknown action."))
		return
	}

	var amount *model.Money
	if action.NeedsAmount() {
		raw := r.PostFormValue("amount")
		fv := validation.New().Validate("amount", raw,
			validation.Required("Amount", 32),
			validation.Amount("Amount", 0),
		)
		if err := fv.Err(); err != nil {
			h.fail(w, r, err)
			return
		}
		m, _ := model.ParseMoney(raw)
		amount = &m
	}

	view, err := h.Jobs.Perform(r.Context(), requestSession(r), service.PerformRequest{
		JobID:  jobID,
		Action: action,
		Amount: amount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	msg := actionDoneMessages[action]
	if !IsHTMX(r) {
		target := url.URL{Path: "/jobs/" + url.PathEscape(jobID), RawQuery: url.Values{"flash": {msg}}.Encode()}
		http.Redirect(w, r, target.String(), http.StatusSeeOther)
		return
	}
	HTMX(w).Toast(ToastSuccess, msg)
	h.fragment(w, FragmentJobWorkflow, NewTemplateData(r, PageMeta{}).With("View", view).Build())
}
