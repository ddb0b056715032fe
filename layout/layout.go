package layout

import (
	"image"
	"sort"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	"github.com/npillmayer/cellstyle/layout/grid"
	"github.com/npillmayer/cellstyle/maybe"
	"github.com/npillmayer/cellstyle/tree"
)

// auto marks a border-box size the parent leaves to the child.
const auto = -1

type layouter struct {
	boxes Boxes
	order map[*styledtree.StyNode]int
}

// Layout lays out the styled tree starting at root into viewport. Nodes
// which have not been styled are laid out with the initial style.
//
// The root fills the viewport, unless it has a width or height of its own.
func Layout(root *styledtree.StyNode, viewport image.Rectangle) Boxes {
	l := &layouter{order: make(map[*styledtree.StyNode]int)}
	if root == nil {
		return l.boxes
	}
	root.TopDown(func(n, _ *tree.Node[*styledtree.StyNode], _ int) error {
		l.order[styledtree.Node(n)] = len(l.order)
		return nil
	})
	st := styleOf(root)
	fh := auto
	if st.Sizing.Height.IsAuto() {
		fh = max(0, viewport.Dy()-st.Spacing.Margin.Vertical())
	}
	l.layoutBox(root, viewport, auto, fh, 0)
	sort.SliceStable(l.boxes.list, func(i, j int) bool {
		return l.boxes.list[i].Order < l.boxes.list[j].Order
	})
	tracer().Debugf("layout of %s in %v: %d boxes", root, viewport, l.boxes.Len())
	return l.boxes
}

// layoutBox lays out n into area, which is the space for n's margin box.
// fw and fh force the border-box size, if not auto. An auto width fills
// area, an auto height is the height of the content.
// z is the effective z-index of the parent.
func (l *layouter) layoutBox(n *styledtree.StyNode, area image.Rectangle, fw, fh, z int) *Box {
	st := styleOf(n)
	if st.Layout.Display == style.DisplayNone {
		return nil
	}
	if st.IsDeclared("z-index") {
		z = st.Visual.ZIndex
	}
	b := &Box{Node: n, Style: st, Z: z, Order: l.order[n]}
	l.boxes.add(b)
	m, frame := st.Spacing.Margin, frameOf(st)
	w := fw
	if w == auto {
		w = st.Sizing.Width.Resolve(area.Dx(), area.Dx()-m.Horizontal())
		w = clampSize(w, st.Sizing.MinWidth, st.Sizing.MaxWidth, area.Dx())
	}
	h := fh
	if h == auto && !st.Sizing.Height.IsAuto() {
		h = st.Sizing.Height.Resolve(area.Dy(), 0)
		h = clampSize(h, st.Sizing.MinHeight, st.Sizing.MaxHeight, area.Dy())
	}
	definite := h != auto
	x0, y0 := area.Min.X+m.Left, area.Min.Y+m.Top
	avail := h
	if !definite {
		avail = max(0, area.Dy()-m.Vertical())
	}
	used := l.layoutChildren(n, st, contentBox(x0, y0, w, avail, frame), definite, z)
	if !definite {
		h = clampSize(used+frame.Vertical(), st.Sizing.MinHeight, st.Sizing.MaxHeight, area.Dy())
	}
	b.Border = image.Rect(x0, y0, x0+max(0, w), y0+max(0, h))
	b.Content = contentBox(x0, y0, w, h, frame)
	l.layoutAbsolute(n, b)
	return b
}

// layoutChildren arranges the in-flow children of n in content and returns
// the height they use.
func (l *layouter) layoutChildren(n *styledtree.StyNode, st *style.Style, content image.Rectangle,
	definite bool, z int) int {
	//
	children := inFlow(n)
	if len(children) == 0 {
		return textSize(n.Text()).Y
	}
	switch st.Layout.Display {
	case style.DisplayFlex:
		return l.flex(st, children, content, definite, z)
	case style.DisplayGrid:
		return l.grid(n, st, children, content, definite, z)
	}
	return l.block(children, content, z)
}

// block stacks children vertically.
func (l *layouter) block(children []*styledtree.StyNode, content image.Rectangle, z int) int {
	y := content.Min.Y
	for _, ch := range children {
		area := image.Rect(content.Min.X, y, content.Max.X, max(y, content.Max.Y))
		if b := l.layoutBox(ch, area, auto, auto, z); b != nil {
			y = b.Border.Max.Y + styleOf(ch).Spacing.Margin.Bottom
		}
	}
	return y - content.Min.Y
}

// grid delegates track sizing and placement to package grid. Items fill
// their cells unless they have a size of their own. With an indefinite
// height, rows are sized for the measured content.
func (l *layouter) grid(n *styledtree.StyNode, st *style.Style, children []*styledtree.StyNode,
	content image.Rectangle, definite bool, z int) int {
	//
	g := grid.New(&st.Layout)
	for i, ch := range children {
		g.Add(i, styleOf(ch).Layout.Placement())
	}
	g.OnSkip = func(item grid.Item) {
		tracer().Infof("grid item %s could not be placed", children[item.Index])
	}
	area := content
	if !definite {
		area.Max.Y = area.Min.Y + l.contentSize(n, st).Y
	}
	r := g.Layout(area)
	for _, item := range r.Items {
		ch := children[item.Index]
		cst := styleOf(ch)
		m := cst.Spacing.Margin
		fw, fh := auto, auto
		if cst.Sizing.Width.IsAuto() {
			fw = max(0, item.Box.Dx()-m.Horizontal())
		}
		if cst.Sizing.Height.IsAuto() {
			fh = max(0, item.Box.Dy()-m.Vertical())
		}
		l.layoutBox(ch, item.Box, fw, fh, z)
	}
	return r.RowPos[len(r.RowPos)-1]
}

// layoutAbsolute places the absolutely positioned children of n relative
// to the content box of n. A size is stretched between opposite offsets if
// both are set, otherwise the measured size is used.
func (l *layouter) layoutAbsolute(n *styledtree.StyNode, parent *Box) {
	cb := parent.Content
	for _, ch := range n.ChildNodes() {
		st := styleOf(ch)
		if st.Layout.Display == style.DisplayNone || isInFlow(st) {
			continue
		}
		sp := st.Spacing
		mh, mv := sp.Margin.Horizontal(), sp.Margin.Vertical()
		size := l.measure(ch)
		w := absoluteSize(st.Sizing.Width, sp.Left, sp.Right, cb.Dx(), mh, size.X)
		w = clampSize(w, st.Sizing.MinWidth, st.Sizing.MaxWidth, cb.Dx())
		h := absoluteSize(st.Sizing.Height, sp.Top, sp.Bottom, cb.Dy(), mv, size.Y)
		h = clampSize(h, st.Sizing.MinHeight, st.Sizing.MaxHeight, cb.Dy())
		x := absoluteOffset(sp.Left, sp.Right, cb.Min.X, cb.Max.X, w+mh)
		y := absoluteOffset(sp.Top, sp.Bottom, cb.Min.Y, cb.Max.Y, h+mv)
		l.layoutBox(ch, image.Rect(x, y, x+w+mh, y+h+mv), w, h, parent.Z)
	}
}

func absoluteSize(sz style.Size, start, end maybe.Maybe[int], container, margins, measured int) int {
	if !sz.IsAuto() {
		return sz.Resolve(container, measured)
	}
	s, okStart := start.Get()
	e, okEnd := end.Get()
	if okStart && okEnd {
		return max(0, container-s-e-margins)
	}
	return measured
}

func absoluteOffset(start, end maybe.Maybe[int], lo, hi, extent int) int {
	var v int
	switch m := start.Match(); m {
	case m.Just(&v):
		return lo + v
	}
	switch m := end.Match(); m {
	case m.Just(&v):
		return hi - v - extent
	}
	return lo
}

// --- Helpers ---------------------------------------------------------------

var initialStyle = style.Default()

func styleOf(n *styledtree.StyNode) *style.Style {
	if st := n.Styles(); st != nil {
		return st
	}
	return &initialStyle
}

func isInFlow(st *style.Style) bool {
	return style.PositionPattern[bool](st.Layout.Position).OneOf(style.PositionPatterns[bool]{
		Relative: true,
		Absolute: false,
	})
}

// inFlow returns the children of n which take part in n's layout.
func inFlow(n *styledtree.StyNode) []*styledtree.StyNode {
	var children []*styledtree.StyNode
	for _, ch := range n.ChildNodes() {
		st := styleOf(ch)
		if st.Layout.Display != style.DisplayNone && isInFlow(st) {
			children = append(children, ch)
		}
	}
	return children
}

// frameOf returns the cells taken by border and padding per side.
func frameOf(st *style.Style) style.Edges {
	bw := st.Visual.Border.Width()
	p := st.Spacing.Padding
	return style.Edges{Top: p.Top + bw, Right: p.Right + bw, Bottom: p.Bottom + bw, Left: p.Left + bw}
}

func contentBox(x, y, w, h int, frame style.Edges) image.Rectangle {
	x0, y0 := x+frame.Left, y+frame.Top
	return image.Rect(x0, y0, max(x0, x+w-frame.Right), max(y0, y+h-frame.Bottom))
}

// clampSize applies min and max constraints. Max is applied first, so min
// wins on conflict.
func clampSize(v int, lo, hi style.Size, container int) int {
	if !hi.IsAuto() {
		v = min(v, hi.Resolve(container, v))
	}
	if !lo.IsAuto() {
		v = max(v, lo.Resolve(container, v))
	}
	return max(v, 0)
}
