package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/target/marketplace-console/internal/domain/model"
)

// parseIntQuery returns the integer value of a query param, or def when missing or invalid.
func parseIntQuery(q url.Values, key string, def int) int {
	if v := q.Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses limit and offset, clamping limit to [1, maxLimit] and offset to >= 0.
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}
	q := r.URL.Query()
	lim := min(max(parseIntQuery(q, "limit", defLimit), 1), maxLimit)
	off := max(parseIntQuery(q, "offset", 0), 0)
	return lim, off
}

// listOptions reads the paging, search and sort params every list screen shares.
func listOptions(r *http.Request) model.ListOptions {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	q := r.URL.Query()
	sort, dir := parseSort(q)
	return model.ListOptions{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  limit,
		Offset: offset,
		Sort:   sort,
		Dir:    dir,
	}
}

// upper normalises an enum filter the way the backend spells it.
func upper(q url.Values, key string) string {
	return strings.ToUpper(strings.TrimSpace(q.Get(key)))
}

// pageURL rebuilds the current list URL at a different offset.
func pageURL(r *http.Request, offset int) string {
	q := r.URL.Query()
	if offset <= 0 {
		q.Del("offset")
	} else {
		q.Set("offset", strconv.Itoa(offset))
	}
	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
