package layout

import (
	"image"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/styledtree"
)

// flexItem holds the sizes of one flex item. Main and cross sizes are
// border-box sizes, margins are kept separately.
type flexItem struct {
	node        *styledtree.StyNode
	style       *style.Style
	basis, size int // hypothetical and final main size
	mainMargin  int
	cross       int // cross size if not stretched
	crossMargin int
	crossAuto   bool
}

// flex lays out children along a row or a column. Free space on the main
// axis is handed to growing items, missing space is taken from shrinking
// items in proportion to shrink factor × basis. Remaining free space is
// distributed according to justify-content.
func (l *layouter) flex(st *style.Style, children []*styledtree.StyNode, content image.Rectangle,
	definite bool, z int) int {
	//
	dir := st.Layout.FlexDirection
	column := dir.IsColumn()
	gap := st.Layout.ColumnGap
	mainAvail, crossAvail := content.Dx(), content.Dy()
	if column {
		gap = st.Layout.RowGap
		mainAvail, crossAvail = content.Dy(), content.Dx()
	}
	items := make([]flexItem, len(children))
	used := gap * (len(children) - 1)
	for i, ch := range children {
		items[i] = l.flexItem(ch, column, mainAvail, crossAvail)
		used += items[i].basis + items[i].mainMargin
	}
	if column && !definite {
		mainAvail = max(0, used) // shrink-wrap, nothing to distribute
	}
	if !column && !definite {
		crossAvail = 0
		for _, it := range items {
			crossAvail = max(crossAvail, it.cross+it.crossMargin)
		}
	}
	free := distribute(items, mainAvail-used)
	offset, extra := justify(st.Layout.JustifyContent, free, len(items))
	align := st.Layout.AlignItems
	pos, usedCross := offset, 0
	for _, it := range items {
		outer := it.size + it.mainMargin
		start := pos
		if dir.IsReverse() {
			start = mainAvail - pos - outer
		}
		cross := it.cross
		if align == style.AlignStretch && it.crossAuto {
			cross = max(0, crossAvail-it.crossMargin)
		}
		crossPos := 0
		switch align {
		case style.AlignEnd:
			crossPos = max(0, crossAvail-cross-it.crossMargin)
		case style.AlignCenter:
			crossPos = max(0, (crossAvail-cross-it.crossMargin)/2)
		}
		var b *Box
		if column {
			area := image.Rect(0, 0, cross+it.crossMargin, outer).Add(content.Min.Add(image.Pt(crossPos, start)))
			b = l.layoutBox(it.node, area, cross, it.size, z)
		} else {
			area := image.Rect(0, 0, outer, cross+it.crossMargin).Add(content.Min.Add(image.Pt(start, crossPos)))
			b = l.layoutBox(it.node, area, it.size, cross, z)
		}
		if b != nil && !column {
			usedCross = max(usedCross, b.Border.Dy()+it.crossMargin)
		}
		pos += outer + gap + extra
	}
	if column {
		return max(0, pos-gap-extra)
	}
	return usedCross
}

func (l *layouter) flexItem(n *styledtree.StyNode, column bool, mainAvail, crossAvail int) flexItem {
	st := styleOf(n)
	m := st.Spacing.Margin
	natural := l.measure(n)
	it := flexItem{node: n, style: st}
	mainSize, crossSize := st.Sizing.Width, st.Sizing.Height
	minMain, maxMain := st.Sizing.MinWidth, st.Sizing.MaxWidth
	minCross, maxCross := st.Sizing.MinHeight, st.Sizing.MaxHeight
	mainNatural, crossNatural := natural.X, natural.Y
	it.mainMargin, it.crossMargin = m.Horizontal(), m.Vertical()
	if column {
		mainSize, crossSize = crossSize, mainSize
		minMain, maxMain, minCross, maxCross = minCross, maxCross, minMain, maxMain
		mainNatural, crossNatural = crossNatural, mainNatural
		it.mainMargin, it.crossMargin = it.crossMargin, it.mainMargin
	}
	basis := st.Layout.FlexBasis
	switch {
	case !basis.IsAuto():
		it.basis = basis.Resolve(mainAvail, mainNatural)
	case !mainSize.IsAuto():
		it.basis = mainSize.Resolve(mainAvail, mainNatural)
	default:
		it.basis = mainNatural
	}
	it.basis = clampSize(it.basis, minMain, maxMain, mainAvail)
	it.size = it.basis
	it.crossAuto = crossSize.IsAuto()
	it.cross = crossNatural
	if !it.crossAuto {
		it.cross = clampSize(crossSize.Resolve(crossAvail, crossNatural), minCross, maxCross, crossAvail)
	}
	return it
}

// distribute grows or shrinks items by free cells and returns the free
// space left. Cells lost to truncation go to the first flexible items, one
// each.
func distribute(items []flexItem, free int) int {
	weight := func(it *flexItem) int {
		if free > 0 {
			return it.style.Layout.FlexGrow
		}
		return it.style.Layout.FlexShrink * it.basis
	}
	total := 0
	for i := range items {
		total += weight(&items[i])
	}
	if free == 0 || total == 0 {
		return free
	}
	amount := free
	if free < 0 {
		amount = -free
	}
	remaining := amount
	for i := range items {
		share := amount * weight(&items[i]) / total
		remaining -= share
		if free < 0 {
			share = -share
		}
		items[i].size = items[i].basis + share
		if items[i].size < 0 {
			remaining -= items[i].size
			items[i].size = 0
		}
	}
	for progress := true; remaining > 0 && progress; {
		progress = false
		for i := range items {
			if remaining == 0 {
				break
			}
			if weight(&items[i]) == 0 || (free < 0 && items[i].size == 0) {
				continue
			}
			if free > 0 {
				items[i].size++
			} else {
				items[i].size--
			}
			remaining--
			progress = true
		}
	}
	if free < 0 {
		return -remaining
	}
	return 0
}

// justify returns the offset of the first item and the extra space
// between items.
func justify(j style.Justify, free, n int) (offset, extra int) {
	if free <= 0 || n == 0 {
		return 0, 0
	}
	switch j {
	case style.JustifyEnd:
		return free, 0
	case style.JustifyCenter:
		return free / 2, 0
	case style.JustifySpaceBetween:
		if n > 1 {
			return 0, free / (n - 1)
		}
	case style.JustifySpaceAround:
		extra = free / n
		return extra / 2, extra
	case style.JustifySpaceEvenly:
		extra = free / (n + 1)
		return extra, extra
	}
	return 0, 0
}
