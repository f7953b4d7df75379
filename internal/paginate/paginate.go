// Package paginate slices ordered sequences into fixed-size pages.
package paginate

import (
	"github.com/first-storm/henkaiki/internal/errors"
)

// PageCount returns ceil(total/size). A size or total of zero (or less)
// yields zero pages.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice returns page number page (zero-based) of items.
//
// A size of zero or less yields an empty page with no error. When the
// collection is empty every page index yields an empty page. Otherwise a
// page index at or beyond the page count fails with PageOutOfRange.
//
// The returned slice aliases items; callers must not mutate it.
func Slice[T any](items []T, size, page int) ([]T, error) {
	if size <= 0 {
		return nil, nil
	}

	totalPages := PageCount(len(items), size)
	if totalPages == 0 {
		return nil, nil
	}
	if page < 0 || page >= totalPages {
		return nil, errors.PageOutOfRange(page, totalPages)
	}

	start := page * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}
