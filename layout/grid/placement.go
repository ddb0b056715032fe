package grid

import "github.com/npillmayer/cellstyle/dom/style"

// MaxGridSize is the maximum number of rows or columns of a grid,
// explicit and implicit tracks combined.
const MaxGridSize = style.MaxGridTracks

// placementBudget bounds the number of candidate positions tested for a
// single item.
const placementBudget = MaxGridSize * MaxGridSize

// Item is a grid item waiting for placement. Index identifies the item for
// the caller, usually the position of a widget among its siblings.
type Item struct {
	Index     int
	Placement style.GridPlacement
}

// Placement is the resolved position of an item: start lines are set and
// end lines are positive and exclusive.
type Placement struct {
	Index int
	style.GridPlacement
}

// Grid is a grid container together with its items.
type Grid struct {
	Columns     []style.TrackSize // grid-template-columns
	Rows        []style.TrackSize // grid-template-rows
	AutoColumns style.TrackSize   // size of implicit columns
	AutoRows    style.TrackSize   // size of implicit rows
	ColumnGap   int
	RowGap      int
	Flow        style.AutoFlow
	Items       []Item
	// OnSkip, if set, is called for every item which could not be placed.
	OnSkip func(item Item)
}

// New creates a grid from the layout properties of a grid container.
func New(l *style.Layout) *Grid {
	return &Grid{
		Columns:     l.GridTemplateColumns,
		Rows:        l.GridTemplateRows,
		AutoColumns: l.GridAutoColumns,
		AutoRows:    l.GridAutoRows,
		ColumnGap:   l.ColumnGap,
		RowGap:      l.RowGap,
		Flow:        l.GridAutoFlow,
	}
}

// Add appends an item to the grid.
func (g *Grid) Add(index int, placement style.GridPlacement) {
	g.Items = append(g.Items, Item{Index: index, Placement: placement})
}

// AutoPlaceItems places all items of g in a grid of cols × rows explicit
// tracks. Both are clamped to [1, MaxGridSize].
//
// Items with a column and a row start line are placed first, at their
// position, clamped to MaxGridSize. They may overlap each other. The other
// items are placed in source order at the first free area found by
// scanning in flow order. With sparse flow, the scan continues after the
// previously placed item, with dense flow it restarts at the first cell.
// A span along the flow axis is clamped to the number of explicit tracks
// of that axis; items which are still too large, or for which no free
// area is found, are skipped.
//
// Placements are returned in item order.
func (g *Grid) AutoPlaceItems(cols, rows int) []Placement {
	placements, _ := g.place(cols, rows)
	return placements
}

func (g *Grid) place(cols, rows int) ([]Placement, *occupancy) {
	cols = clamp(cols, 1, MaxGridSize)
	rows = clamp(rows, 1, MaxGridSize)
	occ := &occupancy{}
	resolved := make([]*Placement, len(g.Items))
	for i, item := range g.Items {
		if !item.Placement.IsExplicit() {
			continue
		}
		p := clampExplicit(item.Placement)
		occ.mark(p.RowStart-1, p.ColStart-1, p.RowSpan(), p.ColSpan())
		resolved[i] = &Placement{Index: item.Index, GridPlacement: p}
	}
	f := flow{AutoFlow: g.Flow, width: cols}
	if g.Flow.Column {
		f.width = rows
	}
	for i, item := range g.Items {
		if item.Placement.IsExplicit() {
			continue
		}
		p, ok := f.next(occ, item.Placement)
		if !ok {
			tracer().Infof("grid item #%d (%v) could not be placed", item.Index, item.Placement)
			if g.OnSkip != nil {
				g.OnSkip(item)
			}
			continue
		}
		resolved[i] = &Placement{Index: item.Index, GridPlacement: p}
	}
	placements := make([]Placement, 0, len(g.Items))
	for _, p := range resolved {
		if p != nil {
			placements = append(placements, *p)
		}
	}
	return placements, occ
}

func clampExplicit(p style.GridPlacement) style.GridPlacement {
	col := clamp(p.ColStart, 1, MaxGridSize)
	row := clamp(p.RowStart, 1, MaxGridSize)
	cs := clamp(p.ColSpan(), 1, MaxGridSize+1-col)
	rs := clamp(p.RowSpan(), 1, MaxGridSize+1-row)
	return style.GridPlacement{
		ColStart: col, ColEnd: col + cs,
		RowStart: row, RowEnd: row + rs,
	}
}

// --- Auto flow -------------------------------------------------------------

// flow scans a grid in flow order. Coordinates are 0-based and expressed
// as (line, pos): for row flow a line is a row and pos a column, for column
// flow the other way round. Every line holds width positions.
type flow struct {
	style.AutoFlow
	width     int
	line, pos int // cursor for sparse flow
}

func (f *flow) cell(line, pos int) (row, col int) {
	if f.Column {
		return pos, line
	}
	return line, pos
}

func (f *flow) next(occ *occupancy, want style.GridPlacement) (style.GridPlacement, bool) {
	lineSpan := clamp(want.RowSpan(), 1, MaxGridSize)
	posSpan := clamp(want.ColSpan(), 1, MaxGridSize)
	fixedLine, fixedPos := want.RowStart-1, want.ColStart-1
	if f.Column {
		lineSpan, posSpan = posSpan, lineSpan
		fixedLine, fixedPos = fixedPos, fixedLine
	}
	if posSpan > f.width {
		posSpan = f.width
	}
	if fixedPos >= 0 && fixedPos > f.width-posSpan {
		fixedPos = f.width - posSpan
	}
	line, pos := 0, 0
	if !f.Dense {
		line, pos = f.line, f.pos
	}
	if fixedLine >= 0 {
		line, pos = fixedLine, 0
	}
	if fixedPos >= 0 && pos > fixedPos {
		line++
	}
	for budget := placementBudget; budget > 0; budget-- {
		if fixedPos >= 0 {
			pos = fixedPos
		}
		if pos > f.width-posSpan {
			if fixedLine >= 0 {
				return want, false
			}
			line, pos = line+1, 0
			continue
		}
		if line < 0 || lineSpan > MaxGridSize-line {
			return want, false
		}
		row, col := f.cell(line, pos)
		rs, cs := lineSpan, posSpan
		if f.Column {
			rs, cs = posSpan, lineSpan
		}
		if occ.free(row, col, rs, cs) {
			occ.mark(row, col, rs, cs)
			if !f.Dense && fixedLine < 0 {
				f.line, f.pos = line, pos+posSpan
			}
			return style.GridPlacement{
				ColStart: col + 1, ColEnd: col + 1 + cs,
				RowStart: row + 1, RowEnd: row + 1 + rs,
			}, true
		}
		if fixedPos >= 0 {
			line++
		} else {
			pos++
		}
	}
	return want, false
}

// --- Occupancy -------------------------------------------------------------

// occupancy records taken cells. It grows as cells are marked; cells outside
// the allocated area are free. Callers guarantee coordinates stay below
// MaxGridSize.
type occupancy struct {
	cells [][]bool // [row][col], 0-based
	cols  int      // widest row
}

func (o *occupancy) free(row, col, rs, cs int) bool {
	for r := row; r < row+rs && r < len(o.cells); r++ {
		cells := o.cells[r]
		for c := col; c < col+cs && c < len(cells); c++ {
			if cells[c] {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) mark(row, col, rs, cs int) {
	for len(o.cells) < row+rs {
		o.cells = append(o.cells, nil)
	}
	for r := row; r < row+rs; r++ {
		if n := len(o.cells[r]); n < col+cs {
			o.cells[r] = append(o.cells[r], make([]bool, col+cs-n)...)
		}
		for c := col; c < col+cs; c++ {
			o.cells[r][c] = true
		}
	}
	if col+cs > o.cols {
		o.cols = col + cs
	}
}

// size returns the extent of the allocated area.
func (o *occupancy) size() (rows, cols int) {
	return len(o.cells), o.cols
}
