package views

// PageSize is the number of projects on one page of the manager's list.
const PageSize = 8

// Page returns the 1-indexed page of items. Pages outside the range yield an
// empty slice.
func Page[T any](items []T, page int) []T {
	// (page-1)*PageSize overflows for huge pages, so check the page count first.
	if page < 1 || page-1 >= (len(items)+PageSize-1)/PageSize {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// NumPages is floor(n/PageSize)+1. It reports one page too many when n is an
// exact multiple of PageSize; the last page is then empty.
func NumPages(n int) int {
	return n/PageSize + 1
}

// PageNumbers lists 1..NumPages(n) for pager links.
func PageNumbers(n int) []int {
	pages := make([]int, NumPages(n))
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
