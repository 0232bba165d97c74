package repository

import "github.com/maxviazov/paginater/internal/pagination"

// Page is the limit/offset window a listing operation returns.
// Limit may be pagination.Unbounded for "everything from Offset on". A negative Offset selects
// nothing but still reports the total, matching how a padded-back window behaves in memory.
type Page struct {
	Limit  int
	Offset int
}

// PageOf lifts the storage window out of a computed pagination window.
func PageOf(w pagination.Window) Page {
	return Page{Limit: w.Limit(), Offset: w.Offset()}
}

// Unbounded reports whether the page has no limit.
func (p Page) Unbounded() bool { return p.Limit == pagination.Unbounded }

// Empty reports whether the page can never hold rows; only the total needs computing.
func (p Page) Empty() bool { return p.Offset < 0 }

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}
