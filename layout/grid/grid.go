package grid

import (
	"image"

	"github.com/npillmayer/cellstyle/dom/style"
)

// Result is the outcome of laying out a grid.
type Result struct {
	Columns   []int // column sizes
	Rows      []int // row sizes
	ColumnPos []int // column offsets, see TrackPositions
	RowPos    []int // row offsets, see TrackPositions
	Items     []ItemBox
}

// ItemBox is a placed item together with its box.
type ItemBox struct {
	Placement
	Box image.Rectangle
}

// Layout places the items of g and sizes the tracks to fit into area.
// Tracks beyond the explicit templates are implicit and sized by
// AutoColumns and AutoRows.
func (g *Grid) Layout(area image.Rectangle) Result {
	placements := g.AutoPlaceItems(len(g.Columns), len(g.Rows))
	ncols, nrows := len(g.Columns), len(g.Rows)
	for _, p := range placements {
		ncols = max(ncols, p.ColEnd-1)
		nrows = max(nrows, p.RowEnd-1)
	}
	r := Result{
		Columns: CalculateTracks(area.Dx(), implicitTracks(g.Columns, ncols, g.AutoColumns), g.AutoColumns, g.ColumnGap),
		Rows:    CalculateTracks(area.Dy(), implicitTracks(g.Rows, nrows, g.AutoRows), g.AutoRows, g.RowGap),
	}
	r.ColumnPos = TrackPositions(r.Columns, g.ColumnGap)
	r.RowPos = TrackPositions(r.Rows, g.RowGap)
	r.Items = make([]ItemBox, len(placements))
	for i, p := range placements {
		x0, x1 := span(r.ColumnPos, r.Columns, p.ColStart, p.ColEnd)
		y0, y1 := span(r.RowPos, r.Rows, p.RowStart, p.RowEnd)
		r.Items[i] = ItemBox{
			Placement: p,
			Box:       image.Rect(area.Min.X+x0, area.Min.Y+y0, area.Min.X+x1, area.Min.Y+y1),
		}
	}
	tracer().Debugf("grid %d×%d in %v: columns %v, rows %v", len(r.Columns), len(r.Rows), area, r.Columns, r.Rows)
	return r
}

// implicitTracks extends explicit to n tracks with auto.
func implicitTracks(explicit []style.TrackSize, n int, auto style.TrackSize) []style.TrackSize {
	if n <= len(explicit) {
		return explicit
	}
	tracks := make([]style.TrackSize, n)
	copy(tracks, explicit)
	for i := len(explicit); i < n; i++ {
		tracks[i] = auto
	}
	return tracks
}

// span returns the offsets covered by the tracks from line start up to,
// but not including, line end. Inner gaps are part of the span.
func span(pos, sizes []int, start, end int) (from, to int) {
	first, last := start-1, end-2
	if first < 0 || first >= len(sizes) || last < first {
		return 0, 0
	}
	if last >= len(sizes) {
		last = len(sizes) - 1
	}
	return pos[first], pos[last] + sizes[last]
}
