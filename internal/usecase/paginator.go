package usecase

// DefaultPageSize is the number of repositories shown per page.
const DefaultPageSize = 5

// Page is a fixed-size window into an in-memory list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"number"`
	TotalPages int `json:"total_pages"`
	Size       int `json:"size"`
}

// HasPrev reports whether a page exists before this one.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a page exists after this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// TotalPages returns ceil(n/size). A non-positive size falls back to DefaultPageSize.
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage limits page to [1, totalPages]. It returns 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the 1-based page of items. Out-of-range pages are clamped
// rather than rejected.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		TotalPages: total,
		Size:       size,
	}
}
