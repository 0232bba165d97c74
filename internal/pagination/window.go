package pagination

// Unbounded is the limit of a window that spans the whole collection.
const Unbounded = -1

// Window is the limit/offset arithmetic behind a page. The zero value is not useful; use NewWindow.
type Window struct {
	limit      int
	offset     int
	total      int
	maxPerPage int
	maxPages   int
}

// NewWindow builds a window over total items. A limit of Unbounded spans everything; any other
// non-positive limit falls back to the config's default per page. cfg may be nil.
func NewWindow(limit, offset, total int, cfg *Config) Window {
	if limit != Unbounded && limit <= 0 {
		limit = cfg.DefaultPerPage()
	}
	if total < 0 {
		total = 0
	}
	return Window{
		limit:      limit,
		offset:     offset,
		total:      total,
		maxPerPage: cfg.MaxPerPage(),
		maxPages:   cfg.MaxPages(),
	}
}

// Limit returns the page size, or Unbounded.
func (w Window) Limit() int { return w.limit }

func (w Window) Offset() int { return w.offset }

func (w Window) TotalCount() int { return w.total }

// Bounded reports whether the window has a finite limit.
func (w Window) Bounded() bool { return w.limit != Unbounded }

func (w Window) MaxPerPage() int { return w.maxPerPage }

func (w Window) MaxPages() int { return w.maxPages }

// WithTotal returns the same window over a different item count.
func (w Window) WithTotal(total int) Window {
	if total < 0 {
		total = 0
	}
	w.total = total
	return w
}

// WithLimit replaces the limit as is, without clamping or offset rescaling.
func (w Window) WithLimit(limit int) Window {
	if limit != Unbounded && limit <= 0 {
		return w
	}
	w.limit = limit
	return w
}

// WithOffset replaces the offset as is.
func (w Window) WithOffset(offset int) Window {
	w.offset = offset
	return w
}

// Per changes the page size while keeping the current page index. Values above the configured
// max per page are clamped, and non-positive values leave the window unchanged.
func (w Window) Per(n int) Window {
	if n <= 0 {
		return w
	}
	if w.maxPerPage > 0 && n > w.maxPerPage {
		n = w.maxPerPage
	}
	offset := 0
	if w.Bounded() {
		offset = floorDiv(w.offset, w.limit) * n
	}
	w.limit = n
	w.offset = offset
	return w
}

// floorDiv rounds toward negative infinity, so a padded negative offset keeps its page index.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// PerAll drops the limit: one page holding every item.
func (w Window) PerAll() Window {
	w.limit = Unbounded
	w.offset = 0
	return w
}

// Padding shifts the offset by n. The result may be negative; slicing treats that as empty.
func (w Window) Padding(n int) Window {
	w.offset += n
	return w
}

// Page moves to the 1-based page n. Pages below 1 mean page 1.
func (w Window) Page(n int) Window {
	if n < 1 {
		n = 1
	}
	if !w.Bounded() {
		w.offset = 0
		return w
	}
	w.offset = w.limit * (n - 1)
	return w
}

// TotalPages is ceil(total/limit), capped at the configured max pages.
func (w Window) TotalPages() int {
	if !w.Bounded() {
		return 1
	}
	pages := (w.total + w.limit - 1) / w.limit
	if w.maxPages > 0 && w.maxPages < pages {
		return w.maxPages
	}
	return pages
}

// CurrentPage is offset/limit + 1 with truncating division.
func (w Window) CurrentPage() int {
	if !w.Bounded() {
		return 1
	}
	return w.offset/w.limit + 1
}

func (w Window) FirstPage() bool { return w.CurrentPage() == 1 }

func (w Window) LastPage() bool { return w.CurrentPage() >= w.TotalPages() }

// OutOfRange reports a current page past the last one.
func (w Window) OutOfRange() bool { return w.CurrentPage() > w.TotalPages() }

// NextPage returns the following page number, or 0 when there is none.
func (w Window) NextPage() int {
	if w.LastPage() || w.OutOfRange() {
		return 0
	}
	return w.CurrentPage() + 1
}

// PrevPage returns the preceding page number, or 0 when there is none.
func (w Window) PrevPage() int {
	if w.FirstPage() || w.OutOfRange() || w.CurrentPage() < 1 {
		return 0
	}
	return w.CurrentPage() - 1
}

// Bounds clips the window to a sequence of length n and returns the [lo, hi) range to slice.
// A negative or past-the-end offset yields an empty range.
func (w Window) Bounds(n int) (lo, hi int) {
	if w.offset < 0 || w.offset >= n {
		return 0, 0
	}
	lo = w.offset
	hi = n
	if w.Bounded() && lo+w.limit < n {
		hi = lo + w.limit
	}
	return lo, hi
}
