package grid

import (
	"image"
	"math"
	"testing"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixed = style.FixedTrack
	fr    = style.FrTrack
	pct   = style.PercentTrack
	auto  = style.AutoTrack
)

func tracks(t ...style.TrackSize) []style.TrackSize { return t }

func TestCalculateTracks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	for i, c := range []struct {
		available, gap int
		tracks         []style.TrackSize
		want           []int
	}{
		{100, 0, tracks(fixed(10), fr(1), fr(1)), []int{10, 45, 45}},
		{10, 0, tracks(fr(1), fr(1), fr(1)), []int{3, 3, 3}},
		{10, 2, tracks(fr(1), fr(1), fr(1)), []int{2, 2, 2}},
		{80, 0, tracks(pct(50), fr(1)), []int{40, 40}},
		{90, 0, tracks(auto(), fr(2)), []int{30, 60}},
		{90, 0, tracks(style.TrackSize{Kind: style.TrackMinContent}, style.TrackSize{Kind: style.TrackMaxContent}), []int{45, 45}},
		{30, 0, tracks(style.MinMaxTrack(fixed(20), fr(1)), fr(1)), []int{20, 15}},
		{30, 0, tracks(style.MinMaxTrack(fixed(5), fixed(10)), fr(1)), []int{10, 20}},
		{100, 0, tracks(fixed(80), fixed(50), fr(1)), []int{80, 50, 0}},
		{100, 0, tracks(fixed(150)), []int{100}},
		{0, 3, tracks(fr(1), fixed(4)), []int{0, 0}},
		{40, 3, nil, []int{40}},
	} {
		assert.Equal(t, c.want, CalculateTracks(c.available, c.tracks, auto(), c.gap), "case %d", i)
	}
}

func TestFrDistributionSumsUp(t *testing.T) {
	sizes := CalculateTracks(100, tracks(fixed(10), fr(1), fr(1)), auto(), 0)
	require.Len(t, sizes, 3)
	assert.Equal(t, 90, sizes[1]+sizes[2])
	assert.LessOrEqual(t, sizes[1]-sizes[2], 1)
	assert.LessOrEqual(t, sizes[2]-sizes[1], 1)
}

func TestTrackSizesStayInRange(t *testing.T) {
	lists := [][]style.TrackSize{
		tracks(fixed(7), fr(0.5), pct(33), auto()),
		tracks(fr(3), fr(1), fixed(200)),
		tracks(pct(150), fr(1)),
		tracks(style.MinMaxTrack(fixed(50), fr(1)), style.MinMaxTrack(pct(10), pct(90))),
		style.ParseGridTemplate("repeat(4, 1fr 2fr) 5 10%"),
	}
	for _, available := range []int{0, 1, 17, 80, 1000} {
		for _, gap := range []int{0, 1, 5} {
			for _, l := range lists {
				sizes := CalculateTracks(available, l, auto(), gap)
				require.Len(t, sizes, len(l))
				for _, sz := range sizes {
					assert.GreaterOrEqual(t, sz, 0)
					assert.LessOrEqual(t, sz, available)
				}
			}
		}
	}
}

func TestTrackPositions(t *testing.T) {
	assert.Equal(t, []int{0, 12, 34, 64}, TrackPositions([]int{10, 20, 30}, 2))
	assert.Equal(t, []int{0, 5}, TrackPositions([]int{5}, 3))
	assert.Equal(t, []int{0}, TrackPositions(nil, 3))
}

// --- Placement -------------------------------------------------------------

func autoItems(n int) *Grid {
	g := &Grid{}
	for i := 0; i < n; i++ {
		g.Add(i, style.GridPlacement{})
	}
	return g
}

func at(index, col, colEnd, row, rowEnd int) Placement {
	return Placement{Index: index, GridPlacement: style.GridPlacement{
		ColStart: col, ColEnd: colEnd, RowStart: row, RowEnd: rowEnd,
	}}
}

func TestAutoPlaceRowFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	assert.Equal(t, []Placement{
		at(0, 1, 2, 1, 2), at(1, 2, 3, 1, 2), at(2, 3, 4, 1, 2),
		at(3, 1, 2, 2, 3), at(4, 2, 3, 2, 3),
	}, autoItems(5).AutoPlaceItems(3, 1))
}

func TestAutoPlaceColumnFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	g := autoItems(3)
	g.Flow = style.AutoFlow{Column: true}
	assert.Equal(t, []Placement{
		at(0, 1, 2, 1, 2), at(1, 1, 2, 2, 3), at(2, 2, 3, 1, 2),
	}, g.AutoPlaceItems(1, 2))
}

func TestAutoPlaceSparseAndDense(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	items := func(dense bool) *Grid {
		g := &Grid{Flow: style.AutoFlow{Dense: dense}}
		g.Add(0, style.GridPlacement{ColEnd: -2})
		g.Add(1, style.GridPlacement{ColEnd: -2})
		g.Add(2, style.GridPlacement{})
		return g
	}
	assert.Equal(t, []Placement{
		at(0, 1, 3, 1, 2), at(1, 1, 3, 2, 3), at(2, 3, 4, 2, 3),
	}, items(false).AutoPlaceItems(3, 1))
	assert.Equal(t, []Placement{
		at(0, 1, 3, 1, 2), at(1, 1, 3, 2, 3), at(2, 3, 4, 1, 2),
	}, items(true).AutoPlaceItems(3, 1))
}

func TestExplicitItemsFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	g := &Grid{}
	g.Add(0, style.GridPlacement{})
	g.Add(1, style.GridPlacement{ColStart: 1, RowStart: 1, RowEnd: -2})
	g.Add(2, style.GridPlacement{ColStart: 2, RowStart: 2})
	g.Add(3, style.GridPlacement{})
	assert.Equal(t, []Placement{
		at(0, 2, 3, 1, 2), at(1, 1, 2, 1, 3), at(2, 2, 3, 2, 3), at(3, 1, 2, 3, 4),
	}, g.AutoPlaceItems(2, 2))
}

func TestPartiallyFixedItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	g := &Grid{}
	g.Add(0, style.GridPlacement{ColStart: 2})
	g.Add(1, style.GridPlacement{ColStart: 2})
	g.Add(2, style.GridPlacement{RowStart: 3})
	g.Add(3, style.GridPlacement{ColStart: 7, ColEnd: -2})
	assert.Equal(t, []Placement{
		at(0, 2, 3, 1, 2), at(1, 2, 3, 2, 3), at(2, 1, 2, 3, 4), at(3, 2, 4, 3, 4),
	}, g.AutoPlaceItems(3, 1))
}

func TestAutoPlacementDoesNotOverlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	for _, flow := range []style.AutoFlow{{}, {Dense: true}, {Column: true}, {Column: true, Dense: true}} {
		g := &Grid{Flow: flow}
		for i := 0; i < 40; i++ {
			g.Add(i, style.GridPlacement{ColEnd: -(1 + i%3), RowEnd: -(1 + (i/3)%2)})
		}
		placed := g.AutoPlaceItems(4, 4)
		require.Len(t, placed, 40, "flow %s", flow)
		for i, p := range placed {
			assert.Equal(t, i, p.Index)
			for _, q := range placed[i+1:] {
				assert.False(t, p.Overlaps(q.GridPlacement), "flow %s: %v overlaps %v", flow, p, q)
			}
		}
	}
}

func TestAutoPlacementIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	g := autoItems(3)
	g.Add(3, style.GridPlacement{ColStart: 5000, ColEnd: 9000, RowStart: 1 << 20})
	g.Add(4, style.GridPlacement{ColEnd: -5000})
	placed, occ := g.place(1_000_000, 1_000_000)
	rows, cols := occ.size()
	assert.LessOrEqual(t, rows, MaxGridSize)
	assert.LessOrEqual(t, cols, MaxGridSize)
	require.Len(t, placed, 5)
	assert.Equal(t, at(3, MaxGridSize, MaxGridSize+1, MaxGridSize, MaxGridSize+1), placed[3])
	assert.Equal(t, at(4, 1, MaxGridSize+1, 2, 3), placed[4])
	for _, p := range placed {
		assert.LessOrEqual(t, p.ColEnd, MaxGridSize+1)
		assert.LessOrEqual(t, p.RowEnd, MaxGridSize+1)
	}
}

func TestHugeSpansKeepRangesOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	var skipped []int
	g := autoItems(3)
	g.OnSkip = func(item Item) { skipped = append(skipped, item.Index) }
	g.Add(3, style.GridPlacement{RowEnd: -math.MaxInt})
	g.Add(4, style.GridPlacement{RowEnd: math.MinInt, ColEnd: -math.MaxInt})
	g.Add(5, style.GridPlacement{ColStart: math.MaxInt, ColEnd: -math.MaxInt,
		RowStart: math.MaxInt - 1, RowEnd: math.MaxInt})
	placed := g.AutoPlaceItems(1, 1)
	assert.Equal(t, []int{3}, skipped)
	require.Len(t, placed, 5)
	assert.Equal(t, at(4, 1, 2, 4, 5), placed[3])
	assert.Equal(t, at(5, MaxGridSize, MaxGridSize+1, MaxGridSize, MaxGridSize+1), placed[4])
	for _, p := range placed {
		assert.Greater(t, p.ColEnd, p.ColStart, "item #%d", p.Index)
		assert.Greater(t, p.RowEnd, p.RowStart, "item #%d", p.Index)
	}
}

func TestUnplaceableItemsAreSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	var skipped []int
	g := &Grid{OnSkip: func(item Item) { skipped = append(skipped, item.Index) }}
	g.Add(0, style.GridPlacement{})
	g.Add(1, style.GridPlacement{RowEnd: -(MaxGridSize + 1)})
	g.Add(2, style.GridPlacement{ColStart: 1, RowStart: 1})
	g.Add(3, style.GridPlacement{RowStart: 1})
	g.Add(4, style.GridPlacement{})
	placed := g.AutoPlaceItems(2, 1)
	assert.Equal(t, []int{1, 3}, skipped)
	assert.Equal(t, []Placement{
		at(0, 2, 3, 1, 2), at(2, 1, 2, 1, 2), at(4, 1, 2, 2, 3),
	}, placed)
}

// --- Container layout ------------------------------------------------------

func TestGridLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	l := style.Default().Layout
	l.GridTemplateColumns = tracks(fixed(10), fr(1))
	l.GridAutoRows = fixed(3)
	l.ColumnGap, l.RowGap = 2, 1
	g := New(&l)
	for i := 0; i < 3; i++ {
		g.Add(i, style.GridPlacement{})
	}
	g.Add(3, style.GridPlacement{ColEnd: -2})
	r := g.Layout(image.Rect(5, 2, 45, 20))
	assert.Equal(t, []int{10, 28}, r.Columns)
	assert.Equal(t, []int{3, 3, 3}, r.Rows)
	assert.Equal(t, []int{0, 12, 40}, r.ColumnPos)
	assert.Equal(t, []int{0, 4, 8, 11}, r.RowPos)
	boxes := make([]image.Rectangle, len(r.Items))
	for i, item := range r.Items {
		assert.Equal(t, i, item.Index)
		boxes[i] = item.Box
	}
	assert.Equal(t, []image.Rectangle{
		image.Rect(5, 2, 15, 5),
		image.Rect(17, 2, 45, 5),
		image.Rect(5, 6, 15, 9),
		image.Rect(5, 10, 45, 13),
	}, boxes)
}

func TestGridLayoutWithoutTemplates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.grid")
	defer teardown()
	//
	l := style.Default().Layout
	l.GridTemplateColumns = style.ParseGridTemplate("repeat(x, 1fr)")
	require.Empty(t, l.GridTemplateColumns)
	g := New(&l)
	g.Add(0, style.GridPlacement{})
	g.Add(1, style.GridPlacement{})
	r := g.Layout(image.Rect(0, 0, 20, 10))
	assert.Equal(t, []int{20}, r.Columns)
	assert.Equal(t, []int{5, 5}, r.Rows)
	require.Len(t, r.Items, 2)
	assert.Equal(t, image.Rect(0, 5, 20, 10), r.Items[1].Box)
}
