package layout

import (
	"image"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/styledtree"
)

// measure returns the natural border-box size of n, before any
// distribution of space. Percentages cannot be resolved here and count as
// auto.
func (l *layouter) measure(n *styledtree.StyNode) image.Point {
	st := styleOf(n)
	frame := frameOf(st)
	c := l.contentSize(n, st)
	w := cellsOr(st.Sizing.Width, c.X+frame.Horizontal())
	h := cellsOr(st.Sizing.Height, c.Y+frame.Vertical())
	return image.Pt(clampCells(w, st.Sizing.MinWidth, st.Sizing.MaxWidth),
		clampCells(h, st.Sizing.MinHeight, st.Sizing.MaxHeight))
}

// contentSize returns the natural size of the content of n: its text for
// leaves, the arrangement of its in-flow children otherwise.
func (l *layouter) contentSize(n *styledtree.StyNode, st *style.Style) image.Point {
	children := inFlow(n)
	if len(children) == 0 {
		return textSize(n.Text())
	}
	outer := make([]image.Point, len(children))
	for i, ch := range children {
		m := styleOf(ch).Spacing.Margin
		outer[i] = l.measure(ch).Add(image.Pt(m.Horizontal(), m.Vertical()))
	}
	switch st.Layout.Display {
	case style.DisplayFlex:
		if st.Layout.FlexDirection.IsColumn() {
			return stack(outer, st.Layout.RowGap)
		}
		return row(outer, st.Layout.ColumnGap)
	case style.DisplayGrid:
		return gridContentSize(outer, st)
	}
	return stack(outer, 0)
}

// stack arranges sizes vertically.
func stack(sizes []image.Point, gap int) image.Point {
	var p image.Point
	for i, sz := range sizes {
		p.X = max(p.X, sz.X)
		p.Y += sz.Y
		if i > 0 {
			p.Y += gap
		}
	}
	return p
}

// row arranges sizes horizontally.
func row(sizes []image.Point, gap int) image.Point {
	var p image.Point
	for i, sz := range sizes {
		p.X += sz.X
		p.Y = max(p.Y, sz.Y)
		if i > 0 {
			p.X += gap
		}
	}
	return p
}

// gridContentSize approximates a grid as uniform cells large enough for
// every item, ignoring spans and explicit placement.
func gridContentSize(sizes []image.Point, st *style.Style) image.Point {
	cols := max(1, len(st.Layout.GridTemplateColumns))
	rows := (len(sizes) + cols - 1) / cols
	var cell image.Point
	for _, sz := range sizes {
		cell.X = max(cell.X, sz.X)
		cell.Y = max(cell.Y, sz.Y)
	}
	return image.Pt(cols*cell.X+(cols-1)*st.Layout.ColumnGap, rows*cell.Y+(rows-1)*st.Layout.RowGap)
}

// textSize returns the width of the widest line and the number of lines
// of text, in terminal cells.
func textSize(text string) image.Point {
	if text == "" {
		return image.Point{}
	}
	lines := strings.Split(text, "\n")
	w := 0
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return image.Pt(w, len(lines))
}

func cellsOr(sz style.Size, v int) int {
	if sz.Kind == style.SizeCells {
		return sz.Cells
	}
	return v
}

func clampCells(v int, lo, hi style.Size) int {
	if hi.Kind == style.SizeCells {
		v = min(v, hi.Cells)
	}
	if lo.Kind == style.SizeCells {
		v = max(v, lo.Cells)
	}
	return max(v, 0)
}
