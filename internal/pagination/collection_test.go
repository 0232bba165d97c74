package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestCollection_EndToEnd(t *testing.T) {
	c := New(seq(25), WithLimit(10), WithOffset(0))

	require.True(t, c.PageScoped())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 3, c.TotalPages())
	assert.True(t, c.FirstPage())
	assert.False(t, c.LastPage())
	assert.Equal(t, seq(10), c.Items())

	third := c.Page(3)
	assert.Equal(t, 20, third.OffsetValue())
	assert.Equal(t, []int{21, 22, 23, 24, 25}, third.Items())
	assert.True(t, third.LastPage())

	// the original collection is untouched
	assert.Equal(t, 0, c.OffsetValue())
	assert.Equal(t, 10, c.Len())
}

func TestCollection_LimitIsIdempotent(t *testing.T) {
	c := New(seq(40), WithLimit(10), WithOffset(5))

	once := c.Limit(7)
	twice := c.Limit(7).Limit(7)

	assert.Equal(t, once, twice)
	assert.Equal(t, once.Window(), twice.Window())
	assert.Equal(t, once.Items(), twice.Items())
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11, 12}, once.Items())
}

func TestCollection_OffsetKeepsLimit(t *testing.T) {
	c := New(seq(40), WithLimit(4), WithOffset(0)).Offset(10)
	assert.Equal(t, 4, c.LimitValue())
	assert.Equal(t, []int{11, 12, 13, 14}, c.Items())
}

func TestCollection_NotPageScoped(t *testing.T) {
	c := New(seq(25), WithLimit(10))

	assert.False(t, c.PageScoped())
	assert.Equal(t, c, c.Page(2))
	assert.Equal(t, c, c.Per(5))
	assert.Equal(t, c, c.Padding(3))
	assert.Equal(t, c, c.PerAll())
	// metadata still works
	assert.Equal(t, 3, c.TotalPages())
	assert.Equal(t, 1, c.CurrentPage())

	// Limit and Offset always build a page scoped collection
	assert.True(t, c.Offset(10).PageScoped())
}

func TestCollection_DefaultLimitFromConfig(t *testing.T) {
	assert.Equal(t, DefaultPerPage, New(seq(100)).LimitValue())

	root := NewConfig(nil, Settings{DefaultPerPage: 7})
	child := NewConfig(root, Settings{MaxPages: 2})
	c := New(seq(100), WithConfig(child))
	assert.Equal(t, 7, c.LimitValue())
	assert.Equal(t, 2, c.TotalPages())
}

func TestCollection_PreSlicedWithTotalCount(t *testing.T) {
	page := []int{31, 32, 33, 34, 35, 36, 37, 38, 39, 40}
	c := New(page, WithLimit(10), WithOffset(30), WithTotalCount(95))

	assert.Equal(t, page, c.Items())
	assert.Equal(t, 95, c.TotalCount())
	assert.Equal(t, 10, c.TotalPages())
	assert.Equal(t, 4, c.CurrentPage())

	// re-windowing keeps the items as given and only moves the arithmetic
	next := c.Page(5)
	assert.Equal(t, page, next.Items())
	assert.Equal(t, 5, next.CurrentPage())
	assert.Equal(t, 95, next.TotalCount())
}

func TestCollection_OutOfRangeIsEmpty(t *testing.T) {
	c := New(seq(25), WithLimit(10), WithOffset(0))

	assert.Empty(t, c.Offset(100).Items())
	assert.Empty(t, c.Page(4).Items())
	assert.Empty(t, c.Padding(-30).Items())
	assert.Equal(t, -30, c.Padding(-30).OffsetValue())
	assert.Empty(t, New([]int(nil), WithLimit(10), WithOffset(0)).Items())
}

func TestCollection_PerAll(t *testing.T) {
	c := New(seq(25), WithLimit(10), WithOffset(20)).PerAll()
	assert.Equal(t, seq(25), c.Items())
	assert.Equal(t, 1, c.TotalPages())
	assert.Nil(t, c.Meta().Limit)
}

func TestCollection_PerClampsToConfig(t *testing.T) {
	cfg := NewConfig(nil, Settings{MaxPerPage: 5})
	c := New(seq(100), WithLimit(10), WithOffset(25), WithConfig(cfg)).Per(100)

	assert.Equal(t, 5, c.LimitValue())
	assert.Equal(t, 10, c.OffsetValue())
	assert.Equal(t, []int{11, 12, 13, 14, 15}, c.Items())
}

func TestCollection_ItemsDoNotAliasBacking(t *testing.T) {
	backing := seq(10)
	c := New(backing, WithLimit(3), WithOffset(0))

	items := c.Items()
	_ = append(items, 99)
	assert.Equal(t, 4, backing[3])
}

func TestCollection_Elements(t *testing.T) {
	c := New([]string{"a", "b", "c"}, WithLimit(2), WithOffset(1))
	assert.Equal(t, []any{"b", "c"}, c.Elements())
	assert.Equal(t, []any{}, New([]string{}, WithLimit(2), WithOffset(0)).Elements())
}
