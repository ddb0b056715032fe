package layout

import (
	"fmt"
	"image"
	"sort"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/styledtree"
)

// Box is the geometry of one displayed node.
type Box struct {
	Node    *styledtree.StyNode
	Style   *style.Style
	Border  image.Rectangle // border box
	Content image.Rectangle // content box: border box minus border and padding
	Z       int             // effective z-index
	Order   int             // position in tree order
}

func (b *Box) String() string {
	return fmt.Sprintf("%s %v", b.Node, b.Border)
}

// Boxes is the result of a layout pass.
type Boxes struct {
	list   []*Box
	byNode map[*styledtree.StyNode]*Box
}

func (bs *Boxes) add(b *Box) {
	if bs.byNode == nil {
		bs.byNode = make(map[*styledtree.StyNode]*Box)
	}
	bs.list = append(bs.list, b)
	bs.byNode[b.Node] = b
}

// Len returns the number of boxes.
func (bs Boxes) Len() int {
	return len(bs.list)
}

// Of returns the box of a node. Nodes which are not displayed have no box.
func (bs Boxes) Of(n *styledtree.StyNode) (*Box, bool) {
	b, ok := bs.byNode[n]
	return b, ok
}

// All returns all boxes in tree order.
func (bs Boxes) All() []*Box {
	return bs.list
}

// PaintOrder returns the boxes of visible nodes, sorted by z-index. Boxes
// with equal z-index keep tree order, so children paint over their parents.
func (bs Boxes) PaintOrder() []*Box {
	boxes := make([]*Box, 0, len(bs.list))
	for _, b := range bs.list {
		if b.Style.Visual.Visible {
			boxes = append(boxes, b)
		}
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Z < boxes[j].Z
	})
	return boxes
}
