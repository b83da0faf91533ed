package httpx

import (
	"net/http"
)

// SearchHits renders the results list under a search-as-you-type box.
// GET /search?field=contractors|users&q=.
func (h *UIHandlers) SearchHits(w http.ResponseWriter, r *http.Request) {
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
	h.fragment(w, FragmentSearchHits, NewTemplateData(r, PageMeta{}).
		With("Field", string(field)).
		With("Hits", hits).
		Build())
}
