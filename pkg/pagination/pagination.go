// Package pagination turns an already filtered, ordered list of records into a page envelope.
package pagination

import (
	"errors"
	"strconv"
)

// ErrInvalidPageParams is returned for page or per_page values that are not positive integers.
var ErrInvalidPageParams = errors.New("page and per_page must be positive integers")

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Pages int `json:"pages"`
	Page  int `json:"page"`
}

// Paginate slices records[(page-1)*perPage : page*perPage] and projects each record of the slice.
// Total counts every record passed in. A page past the end yields an empty Items slice.
// perPage must be positive.
func Paginate[R any, T any](records []R, page, perPage int, project func(R) T) Page[T] {
	total := len(records)

	// Bounds are checked by division first so large page or perPage values cannot overflow.
	start, end := total, total
	if page >= 1 && page-1 <= total/perPage {
		start = (page - 1) * perPage
		if perPage < total-start {
			end = start + perPage
		}
	}

	items := make([]T, 0, end-start)
	for _, r := range records[start:end] {
		items = append(items, project(r))
	}

	return Page[T]{
		Items: items,
		Total: total,
		Pages: TotalPages(total, perPage),
		Page:  page,
	}
}

// TotalPages is ceil(total / perPage), or 0 when perPage is not positive.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

// ParseParams reads the raw page and per_page query values.
// Empty values fall back to DefaultPage and DefaultPerPage.
func ParseParams(pageStr, perPageStr string) (page, perPage int, err error) {
	page, perPage = DefaultPage, DefaultPerPage

	if pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil || page < 1 {
			return 0, 0, ErrInvalidPageParams
		}
	}
	if perPageStr != "" {
		if perPage, err = strconv.Atoi(perPageStr); err != nil || perPage < 1 {
			return 0, 0, ErrInvalidPageParams
		}
	}
	return page, perPage, nil
}
