// Package pagination holds the page cursor behind a pager control. Pages are
// 0-based; every move is clamped to the valid range.
package pagination

import "fmt"

// DefaultSizes are the page sizes offered when none are configured.
var DefaultSizes = []int{10, 20, 50}

// Pager tracks the current page of a list with a known number of items.
type Pager struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int   `json:"total"`
	Sizes []int `json:"sizes"`
}

// New returns a pager on the first page. A non-positive size takes the first
// offered size.
func New(total, size int, sizes ...int) Pager {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	p := Pager{Total: max(total, 0), Sizes: append([]int(nil), sizes...)}
	p.Size = size
	if p.Size <= 0 {
		p.Size = p.Sizes[0]
	}
	return p
}

// TotalPagesFor returns how many pages total items span at size. An empty
// list still has one page.
func TotalPagesFor(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// TotalPages is the page count of the pager.
func (p Pager) TotalPages() int {
	return TotalPagesFor(p.Total, p.Size)
}

// Go moves to page, clamped into range.
func (p Pager) Go(page int) Pager {
	last := p.TotalPages() - 1
	switch {
	case page < 0:
		page = 0
	case page > last:
		page = last
	}
	p.Page = page
	return p
}

func (p Pager) First() Pager { return p.Go(0) }
func (p Pager) Prev() Pager  { return p.Go(p.Page - 1) }
func (p Pager) Next() Pager  { return p.Go(p.Page + 1) }
func (p Pager) Last() Pager  { return p.Go(p.TotalPages() - 1) }

// CanPrev reports whether Prev and First would move.
func (p Pager) CanPrev() bool {
	return p.Page > 0
}

// CanNext reports whether Next and Last would move.
func (p Pager) CanNext() bool {
	return p.Page < p.TotalPages()-1
}

// WithSize changes the page size and returns to the first page.
func (p Pager) WithSize(size int) (Pager, error) {
	if size <= 0 {
		return p, fmt.Errorf("pagination: invalid page size %d", size)
	}
	p.Size = size
	p.Page = 0
	return p, nil
}

// Offset is the index of the first item on the current page.
func (p Pager) Offset() int {
	return p.Page * p.Size
}

// Bounds returns the half-open item range [start, end) of the current page.
func (p Pager) Bounds() (int, int) {
	start := min(p.Offset(), p.Total)
	end := min(start+p.Size, p.Total)
	return start, end
}
