package pagination

import "encoding/json"

// Option configures New.
type Option func(*options)

type options struct {
	limit     int
	offset    int
	total     int
	hasLimit  bool
	hasOffset bool
	hasTotal  bool
	cfg       *Config
}

// WithLimit sets the page size. Pass Unbounded for a single page holding everything.
func WithLimit(n int) Option {
	return func(o *options) { o.limit, o.hasLimit = n, true }
}

func WithOffset(n int) Option {
	return func(o *options) { o.offset, o.hasOffset = n, true }
}

// WithTotalCount marks the items as an already sliced page out of total items.
// The items are then used as given instead of being windowed again.
func WithTotalCount(n int) Option {
	return func(o *options) { o.total, o.hasTotal = n, true }
}

// WithConfig selects the per-type defaults and caps. Without it the package constants apply.
func WithConfig(cfg *Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// Collection is an immutable paged view over a backing slice.
// Windowing methods return a new Collection built from the original backing slice.
type Collection[T any] struct {
	original []T
	items    []T
	window   Window
	cfg      *Config
	scoped   bool
	hasTotal bool
}

// New pages items. When both a limit and an offset are given the collection is page scoped and
// Per, Page and Padding re-window it; otherwise they return it unchanged.
func New[T any](items []T, opts ...Option) Collection[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return build(items, o)
}

func build[T any](original []T, o options) Collection[T] {
	limit := o.limit
	if !o.hasLimit {
		limit = o.cfg.DefaultPerPage()
	}
	total := len(original)
	if o.hasTotal {
		total = o.total
	}
	w := NewWindow(limit, o.offset, total, o.cfg)

	c := Collection[T]{
		original: original,
		window:   w,
		cfg:      o.cfg,
		scoped:   o.hasLimit && o.hasOffset,
		hasTotal: o.hasTotal,
	}
	if o.hasTotal {
		c.items = original[:len(original):len(original)]
	} else {
		lo, hi := w.Bounds(len(original))
		c.items = original[lo:hi:hi]
	}
	return c
}

func (c Collection[T]) rebuild(limit, offset int) Collection[T] {
	return build(c.original, options{
		limit:     limit,
		offset:    offset,
		total:     c.window.TotalCount(),
		hasLimit:  true,
		hasOffset: true,
		hasTotal:  c.hasTotal,
		cfg:       c.cfg,
	})
}

// Limit returns a collection over the same backing slice with a different page size.
func (c Collection[T]) Limit(n int) Collection[T] {
	return c.rebuild(n, c.window.Offset())
}

// Offset returns a collection over the same backing slice starting at n.
func (c Collection[T]) Offset(n int) Collection[T] {
	return c.rebuild(c.window.Limit(), n)
}

// Per changes the page size, keeping the page index. See Window.Per.
func (c Collection[T]) Per(n int) Collection[T] {
	if !c.scoped {
		return c
	}
	return c.rewindow(c.window.Per(n))
}

// PerAll drops the page size so the collection holds every item.
func (c Collection[T]) PerAll() Collection[T] {
	if !c.scoped {
		return c
	}
	return c.rewindow(c.window.PerAll())
}

// Page moves to the 1-based page n.
func (c Collection[T]) Page(n int) Collection[T] {
	if !c.scoped {
		return c
	}
	return c.rewindow(c.window.Page(n))
}

// Padding shifts the window by n items.
func (c Collection[T]) Padding(n int) Collection[T] {
	if !c.scoped {
		return c
	}
	return c.rewindow(c.window.Padding(n))
}

func (c Collection[T]) rewindow(w Window) Collection[T] {
	return c.rebuild(w.Limit(), w.Offset())
}

// Items returns the current window. The slice has no spare capacity, so appending to it
// never writes into the backing slice.
func (c Collection[T]) Items() []T { return c.items }

func (c Collection[T]) Len() int { return len(c.items) }

// Elements returns the window as an untyped sequence.
func (c Collection[T]) Elements() []any {
	out := make([]any, len(c.items))
	for i, it := range c.items {
		out[i] = it
	}
	return out
}

func (c Collection[T]) Window() Window { return c.window }

// PageScoped reports whether Per, Page and Padding are available.
func (c Collection[T]) PageScoped() bool { return c.scoped }

func (c Collection[T]) LimitValue() int { return c.window.Limit() }

func (c Collection[T]) OffsetValue() int { return c.window.Offset() }

// TotalCount is the explicit total when one was given, else the length of the backing slice.
func (c Collection[T]) TotalCount() int { return c.window.TotalCount() }

func (c Collection[T]) TotalPages() int { return c.window.TotalPages() }

func (c Collection[T]) CurrentPage() int { return c.window.CurrentPage() }

func (c Collection[T]) FirstPage() bool { return c.window.FirstPage() }

func (c Collection[T]) LastPage() bool { return c.window.LastPage() }

func (c Collection[T]) OutOfRange() bool { return c.window.OutOfRange() }

func (c Collection[T]) NextPage() int { return c.window.NextPage() }

func (c Collection[T]) PrevPage() int { return c.window.PrevPage() }

// Meta snapshots the page metadata.
func (c Collection[T]) Meta() Meta { return MetaOf(c.window) }

// MarshalJSON encodes the current window as an array.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.page())
}

// MarshalYAML encodes the current window as a sequence.
func (c Collection[T]) MarshalYAML() (any, error) {
	return c.page(), nil
}

func (c Collection[T]) page() []T {
	if c.items == nil {
		return []T{}
	}
	return c.items
}
