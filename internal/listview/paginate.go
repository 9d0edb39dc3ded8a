package listview

// Page is one bounded window over a filtered view, together with the
// button state a renderer needs to draw pagination controls.
type Page[T Record] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// Paginate slices the view for the requested page number. The number is
// assumed to be within [1, TotalPages]; an empty view yields an empty
// page 1 with zero total pages rather than an error.
func Paginate[T Record](view []T, number, size int) Page[T] {
	total := totalPages(len(view), size)
	page := Page[T]{
		Number:     number,
		Size:       size,
		TotalItems: len(view),
		TotalPages: total,
	}
	if number < 1 || size < 1 {
		return page
	}

	start := (number - 1) * size
	if start >= len(view) {
		return page
	}
	end := start + size
	if end > len(view) {
		end = len(view)
	}
	page.Items = append(page.Items, view[start:end]...)
	return page
}

// Empty reports whether there is nothing to show ("no results").
func (p Page[T]) Empty() bool {
	return p.TotalItems == 0
}

// HasPrev reports whether the prev/first buttons are enabled.
func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether the next/last buttons are enabled.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// Numbers lists every page number for rendering. All numbers are
// rendered with no truncation, a known scaling limit acceptable at the
// bounded collection sizes this console handles.
func (p Page[T]) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

func totalPages(n, size int) int {
	if n == 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
