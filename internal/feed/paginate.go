package feed

import (
	"errors"

	"lenta/internal/core"
)

// PageSize is fixed; the UI has no page-size selector.
const PageSize = 25

// ErrInvalidPage is returned when a requested page lies outside
// [1, totalPages]. The UI recovers by reverting the pending input, it is
// never surfaced as an error banner.
var ErrInvalidPage = errors.New("page out of range")

// PageState is the pagination cursor over a filtered result set.
type PageState struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

// Paginator keeps the current page over a filtered list. Policy: the page
// resets only on an explicit filter change, never automatically when the
// item count changes. A shrunken set can leave the cursor on an empty
// page, which is a valid state.
type Paginator struct {
	page     int
	pageSize int
	total    int
}

func NewPaginator() *Paginator {
	return &Paginator{page: 1, pageSize: PageSize}
}

// SetTotal records the filtered item count. The current page is left
// alone even if it no longer exists.
func (p *Paginator) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
}

// Reset moves back to the first page. Called on filter changes.
func (p *Paginator) Reset() {
	p.page = 1
}

func (p *Paginator) Page() int { return p.page }

// TotalPages is ceil(total/pageSize), at least 1 so the clamp range is
// never empty.
func (p *Paginator) TotalPages() int {
	pages := (p.total + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// GoTo jumps to the given page if it exists, otherwise returns
// ErrInvalidPage and leaves the state unchanged. GoTo(current) is a
// valid no-op.
func (p *Paginator) GoTo(page int) error {
	if page < 1 || page > p.TotalPages() {
		return ErrInvalidPage
	}
	p.page = page
	return nil
}

// Next advances one page; no-op on the last page.
func (p *Paginator) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// Prev goes back one page; no-op on the first page.
func (p *Paginator) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Slice returns the current page's portion of records. A start index past
// the end yields an empty slice, not an error.
func (p *Paginator) Slice(records []core.Transaction) []core.Transaction {
	start := (p.page - 1) * p.pageSize
	if start >= len(records) {
		return nil
	}
	end := start + p.pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// State snapshots the cursor for rendering.
func (p *Paginator) State() PageState {
	return PageState{
		CurrentPage: p.page,
		PageSize:    p.pageSize,
		TotalItems:  p.total,
		TotalPages:  p.TotalPages(),
	}
}

// Gap marks an ellipsis slot in a windowed page-number sequence.
const Gap = -1

// WindowPages produces the ellipsis-windowed page numbers for the
// numbered pagination control:
//
//	total <= 5:            all pages
//	current <= 3:          1 2 3 4 … total
//	current >= total-2:    1 … total-3 total-2 total-1 total
//	otherwise:             1 … current-1 current current+1 … total
func WindowPages(current, total int) []int {
	if total <= 5 {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, Gap, total}
	case current >= total-2:
		return []int{1, Gap, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Gap, current - 1, current, current + 1, Gap, total}
	}
}
