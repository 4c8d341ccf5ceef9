package core

// Page returns the pageIndex-th slice of items (pageIndex is 0-based),
// clamped to the list bounds; out-of-range pages yield an empty slice.
// Callers whose underlying list shrinks must reset to page 0 themselves.
func Page[T any](items []T, pageIndex, pageSize int) []T {
	if pageIndex < 0 || pageSize <= 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(count/pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
