// Package pagination computes fixed-size pages over an ordered result set.
//
// Requested page numbers never fail: anything that is not a number selects the
// first page and out-of-range numbers clamp to the nearest valid page.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the page size used by contact listings and searches.
const DefaultPerPage = 10

type Page struct {
	Number   int // 1-indexed
	NumPages int // always >= 1, an empty result set has one empty page
	Total    int
	PerPage  int
}

// New resolves the raw page parameter against total records split perPage at a time.
func New(total, perPage int, raw string) Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		number = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Total:    total,
		PerPage:  perPage,
	}
}

// Offset is the index of the first record on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit is the maximum number of records on the page.
func (p Page) Limit() int {
	return p.PerPage
}
