package other

import (
	"net/url"
	"strconv"
)

const pageWindowSize = 5

// Pagination renders the pager under a table. Query holds the filters that
// every page link keeps.
type Pagination struct {
	Page       int
	TotalPages int
	Total      int
	BasePath   string
	Query      url.Values
}

func (p Pagination) URL(page int) string {
	q := url.Values{}
	for k, v := range p.Query {
		if k != "page" {
			q[k] = v
		}
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return p.BasePath
	}
	return p.BasePath + "?" + q.Encode()
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }

func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

func (p Pagination) Prev() int { return p.Page - 1 }

func (p Pagination) Next() int { return p.Page + 1 }

// Visible reports whether a pager is worth showing at all.
func (p Pagination) Visible() bool { return p.TotalPages > 1 }

func (p Pagination) Pages() []int { return PageWindow(p.Page, p.TotalPages, pageWindowSize) }

// PageWindow returns at most size page numbers centred on current.
func PageWindow(current, total, size int) []int {
	if total < 1 {
		return nil
	}
	if size < 1 || size > total {
		size = total
	}
	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > total {
		start = total - size + 1
	}
	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
