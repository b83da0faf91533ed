package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/service"
)

var errUserSearchAdminOnly = apperrors.Forbidden("Only admins can search users.")

// searchField reads ?field=, defaulting to contractors. User search is for admins.
func searchField(r *http.Request, sess *domainauth.Session) (service.SearchField, error) {
	field := service.SearchField(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("field"))))
	if field == "" {
		field = service.SearchContractors
	}
	if field == service.SearchUsers && (sess == nil || sess.Role != domainauth.RoleAdmin) {
		return "", errUserSearchAdminOnly
	}
	return field, nil
}

// SearchDirectory answers one search-as-you-type keystroke. Rapid keystrokes from the same session
// collapse into one backend call; every waiting request receives the final query's hits.
// GET /api/search?field=contractors|users&q=.
func (h *APIHandlers) SearchDirectory(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	field, err := searchField(r, sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	hits, err := h.Search.Search(r.Context(), sess, field, r.URL.Query().Get("q"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, hits)
}
