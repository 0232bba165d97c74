package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_CurrentPage(t *testing.T) {
	cases := []struct {
		limit, offset, want int
	}{
		{10, 0, 1},
		{10, 9, 1},
		{10, 10, 2},
		{10, 25, 3},
		{1, 7, 8},
		{3, 100, 34},
	}
	for _, tc := range cases {
		w := NewWindow(tc.limit, tc.offset, 1000, nil)
		assert.Equal(t, tc.want, w.CurrentPage(), "limit=%d offset=%d", tc.limit, tc.offset)
	}
}

func TestWindow_PerAllIsSinglePage(t *testing.T) {
	windows := []Window{
		NewWindow(10, 0, 0, nil),
		NewWindow(10, 45, 300, nil),
		NewWindow(3, 9, 10, nil).Padding(-20),
		NewWindow(Unbounded, 0, 5, nil),
	}
	for _, w := range windows {
		all := w.PerAll()
		assert.False(t, all.Bounded())
		assert.Equal(t, Unbounded, all.Limit())
		assert.Equal(t, 0, all.Offset())
		assert.Equal(t, 1, all.TotalPages())
		assert.Equal(t, 1, all.CurrentPage())
		assert.True(t, all.FirstPage())
		assert.True(t, all.LastPage())
	}
}

func TestWindow_PerClampsAndKeepsPageIndex(t *testing.T) {
	cfg := NewConfig(nil, Settings{MaxPerPage: 5})
	w := NewWindow(10, 25, 100, cfg).Per(100)

	assert.Equal(t, 5, w.Limit())
	assert.Equal(t, 10, w.Offset())
	assert.Equal(t, 3, w.CurrentPage())
}

func TestWindow_PerRescalesOffsetWithoutClamp(t *testing.T) {
	w := NewWindow(10, 25, 100, nil).Per(20)

	assert.Equal(t, 20, w.Limit())
	assert.Equal(t, 40, w.Offset())
	assert.Equal(t, 3, w.CurrentPage())
}

func TestWindow_PerRescalesNegativeOffsetWithFloor(t *testing.T) {
	cases := []struct {
		name       string
		w          Window
		per        int
		wantOffset int
	}{
		{"part of a page before the start", NewWindow(10, 0, 100, nil).Padding(-5), 5, -5},
		{"exactly one page before", NewWindow(10, 0, 100, nil).Padding(-10), 5, -5},
		{"just over one page before", NewWindow(10, 0, 100, nil).Padding(-11), 5, -10},
		{"positive offset truncates", NewWindow(10, 0, 100, nil).Padding(19), 5, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantOffset, tc.w.Per(tc.per).Offset())
		})
	}
}

func TestWindow_PerIgnoresNonPositive(t *testing.T) {
	w := NewWindow(10, 30, 100, nil)
	assert.Equal(t, w, w.Per(0))
	assert.Equal(t, w, w.Per(-4))
}

func TestWindow_PerFromUnboundedStartsAtFirstPage(t *testing.T) {
	w := NewWindow(Unbounded, 0, 50, nil).Padding(7).Per(10)
	assert.Equal(t, 10, w.Limit())
	assert.Equal(t, 0, w.Offset())
}

func TestWindow_TotalPages(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		total    int
		maxPages int
		want     int
	}{
		{"exact", 10, 30, 0, 3},
		{"remainder", 10, 25, 0, 3},
		{"empty", 10, 0, 0, 0},
		{"capped", 10, 1000, 5, 5},
		{"cap above computed", 10, 30, 50, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWindow(tc.limit, 0, tc.total, NewConfig(nil, Settings{MaxPages: tc.maxPages}))
			assert.Equal(t, tc.want, w.TotalPages())
		})
	}
}

func TestWindow_Page(t *testing.T) {
	w := NewWindow(10, 0, 100, nil)

	assert.Equal(t, 20, w.Page(3).Offset())
	assert.Equal(t, 0, w.Page(1).Offset())
	assert.Equal(t, 0, w.Page(0).Offset())
	assert.Equal(t, 0, w.Page(-2).Offset())
	assert.Equal(t, 0, NewWindow(Unbounded, 0, 100, nil).Page(4).Offset())
}

func TestWindow_Padding(t *testing.T) {
	w := NewWindow(10, 20, 100, nil)

	assert.Equal(t, 23, w.Padding(3).Offset())
	assert.Equal(t, -5, w.Padding(-25).Offset())
	// the receiver is a value and stays put
	assert.Equal(t, 20, w.Offset())
}

func TestWindow_FirstLastNextPrev(t *testing.T) {
	w := NewWindow(10, 0, 25, nil)
	assert.True(t, w.FirstPage())
	assert.False(t, w.LastPage())
	assert.Equal(t, 2, w.NextPage())
	assert.Equal(t, 0, w.PrevPage())

	mid := w.Page(2)
	assert.False(t, mid.FirstPage())
	assert.False(t, mid.LastPage())
	assert.Equal(t, 3, mid.NextPage())
	assert.Equal(t, 1, mid.PrevPage())

	last := w.Page(3)
	assert.True(t, last.LastPage())
	assert.Equal(t, 0, last.NextPage())
	assert.Equal(t, 2, last.PrevPage())

	beyond := w.Page(9)
	assert.True(t, beyond.OutOfRange())
	assert.True(t, beyond.LastPage())
	assert.Equal(t, 0, beyond.NextPage())
	assert.Equal(t, 0, beyond.PrevPage())
}

func TestWindow_Bounds(t *testing.T) {
	cases := []struct {
		name           string
		w              Window
		n              int
		wantLo, wantHi int
	}{
		{"first page", NewWindow(10, 0, 25, nil), 25, 0, 10},
		{"short last page", NewWindow(10, 20, 25, nil), 25, 20, 25},
		{"past the end", NewWindow(10, 30, 25, nil), 25, 0, 0},
		{"negative offset", NewWindow(10, 0, 25, nil).Padding(-3), 25, 0, 0},
		{"unbounded", NewWindow(Unbounded, 0, 25, nil), 25, 0, 25},
		{"unaligned offset", NewWindow(10, 7, 25, nil), 25, 7, 17},
		{"empty", NewWindow(10, 0, 0, nil), 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.w.Bounds(tc.n)
			assert.Equal(t, tc.wantLo, lo)
			assert.Equal(t, tc.wantHi, hi)
		})
	}
}

func TestNewWindow_NonPositiveLimitUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultPerPage, NewWindow(0, 0, 10, nil).Limit())
	assert.Equal(t, 8, NewWindow(-3, 0, 10, NewConfig(nil, Settings{DefaultPerPage: 8})).Limit())
}

func TestMetaOf(t *testing.T) {
	m := MetaOf(NewWindow(10, 10, 25, nil))
	if assert.NotNil(t, m.Limit) {
		assert.Equal(t, 10, *m.Limit)
	}
	assert.Equal(t, Meta{
		CurrentPage: 2,
		TotalPages:  3,
		TotalCount:  25,
		Limit:       m.Limit,
		Offset:      10,
		NextPage:    3,
		PrevPage:    1,
	}, m)

	assert.Nil(t, MetaOf(NewWindow(Unbounded, 0, 25, nil)).Limit)
}
