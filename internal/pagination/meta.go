package pagination

// Meta is a read-only snapshot of page metadata for response envelopes and headers.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page" xml:"current_page"`
	TotalPages  int  `json:"total_pages" yaml:"total_pages" xml:"total_pages"`
	TotalCount  int  `json:"total_count" yaml:"total_count" xml:"total_count"`
	Limit       *int `json:"limit" yaml:"limit" xml:"limit,omitempty"` // nil when unbounded
	Offset      int  `json:"offset" yaml:"offset" xml:"offset"`
	FirstPage   bool `json:"first_page" yaml:"first_page" xml:"first_page"`
	LastPage    bool `json:"last_page" yaml:"last_page" xml:"last_page"`
	NextPage    int  `json:"next_page,omitempty" yaml:"next_page,omitempty" xml:"next_page,omitempty"`
	PrevPage    int  `json:"prev_page,omitempty" yaml:"prev_page,omitempty" xml:"prev_page,omitempty"`
}

// MetaOf snapshots a window.
func MetaOf(w Window) Meta {
	m := Meta{
		CurrentPage: w.CurrentPage(),
		TotalPages:  w.TotalPages(),
		TotalCount:  w.TotalCount(),
		Offset:      w.Offset(),
		FirstPage:   w.FirstPage(),
		LastPage:    w.LastPage(),
		NextPage:    w.NextPage(),
		PrevPage:    w.PrevPage(),
	}
	if w.Bounded() {
		limit := w.Limit()
		m.Limit = &limit
	}
	return m
}
