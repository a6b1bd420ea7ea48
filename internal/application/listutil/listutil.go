// Package listutil parses roster list windows from query strings.
package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxLimit caps a single list response.
const MaxLimit = 500

// Window selects a slice of a searchable list. Limit 0 means no limit.
type Window struct {
	Search string
	Limit  int
	Offset int
}

// Parse reads search, limit and offset from q. page/per_page is accepted as an
// alternative to offset/limit and wins when page is present.
// PRE: none
// POST: Limit in [0, MaxLimit]; Offset >= 0; Search trimmed
func Parse(q url.Values) Window {
	w := Window{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  atoiNonNegative(q.Get("limit")),
		Offset: atoiNonNegative(q.Get("offset")),
	}
	if page := atoiNonNegative(q.Get("page")); page > 0 {
		perPage := atoiNonNegative(q.Get("per_page"))
		if perPage == 0 {
			perPage = DefaultPerPage
		}
		w.Limit = perPage
		w.Offset = (page - 1) * min(perPage, MaxLimit)
	}
	w.Limit = min(w.Limit, MaxLimit)
	return w
}

// DefaultPerPage applies when page is given without per_page.
const DefaultPerPage = 50

func atoiNonNegative(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
