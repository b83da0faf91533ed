package httpx

import (
	"net/url"
	"strings"
)

const (
	sortDirAsc  = "asc"
	sortDirDesc = "desc"
)

// parseSort reads the list sort from either ?sort=createdAt:desc or ?sort=createdAt&dir=desc.
// The combined form wins. An unknown direction is dropped so the backend default applies.
func parseSort(q url.Values) (string, string) {
	field := strings.TrimSpace(q.Get("sort"))
	dir := q.Get("dir")
	if f, d, ok := strings.Cut(field, ":"); ok {
		field, dir = strings.TrimSpace(f), d
	}
	dir = strings.ToLower(strings.TrimSpace(dir))
	if dir != sortDirAsc && dir != sortDirDesc {
		dir = ""
	}
	return field, dir
}
