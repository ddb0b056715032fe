package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/style/selector"
	"github.com/npillmayer/cellstyle/tree"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	element             string
	id                  string
	classes             []string
	attrs               map[string]string
	states              map[string]bool
	text                string
	computedStyles      *style.Style
}

// NewNode creates a new styled node for a widget element, e.g. "button".
func NewNode(element string) *StyNode {
	sn := &StyNode{element: strings.ToLower(element)}
	sn.Payload = sn // Payload will always reference the node itself
	return sn
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// TreeNode returns the generic tree node of sn.
func (sn *StyNode) TreeNode() *tree.Node[*StyNode] {
	return &sn.Node
}

// Add appends children to sn and returns sn.
func (sn *StyNode) Add(children ...*StyNode) *StyNode {
	for _, ch := range children {
		if ch != nil {
			sn.AddChild(&ch.Node)
		}
	}
	return sn
}

// ParentNode returns the styled parent of sn, or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	return Node(sn.Parent())
}

// ChildNodes returns the styled children of sn.
func (sn *StyNode) ChildNodes() []*StyNode {
	chs := sn.Children()
	nodes := make([]*StyNode, len(chs))
	for i, ch := range chs {
		nodes[i] = ch.Payload
	}
	return nodes
}

// SetID sets the id of a node and returns the node.
func (sn *StyNode) SetID(id string) *StyNode {
	sn.id = id
	return sn
}

// AddClass adds classes to a node and returns the node.
func (sn *StyNode) AddClass(classes ...string) *StyNode {
	for _, c := range classes {
		if c != "" && !sn.HasClass(c) {
			sn.classes = append(sn.classes, c)
		}
	}
	return sn
}

// Classes returns the class list of a node.
func (sn *StyNode) Classes() []string {
	return sn.classes
}

// SetAttr sets an attribute and returns the node. Attributes "id" and
// "class" are mapped to SetID and AddClass.
func (sn *StyNode) SetAttr(name, value string) *StyNode {
	switch name = strings.ToLower(name); name {
	case "id":
		return sn.SetID(value)
	case "class":
		return sn.AddClass(strings.Fields(value)...)
	}
	if sn.attrs == nil {
		sn.attrs = make(map[string]string)
	}
	sn.attrs[name] = value
	return sn
}

// AttrNames returns the names of all plain attributes, sorted.
func (sn *StyNode) AttrNames() []string {
	names := make([]string, 0, len(sn.attrs))
	for k := range sn.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetState switches a dynamic state like "focus" or "hover" on or off.
func (sn *StyNode) SetState(state string, on bool) *StyNode {
	if sn.states == nil {
		sn.states = make(map[string]bool)
	}
	if on {
		sn.states[state] = true
	} else {
		delete(sn.states, state)
	}
	return sn
}

// States returns the active dynamic states of a node, sorted.
func (sn *StyNode) States() []string {
	states := make([]string, 0, len(sn.states))
	for s := range sn.states {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// SetText sets the text content of a widget and returns the node.
func (sn *StyNode) SetText(text string) *StyNode {
	sn.text = text
	return sn
}

// Text returns the text content of a widget.
func (sn *StyNode) Text() string {
	return sn.text
}

// Styles returns the computed style of a node, or nil if the node has not
// been styled yet.
func (sn *StyNode) Styles() *style.Style {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.Style) {
	sn.computedStyles = styles
}

// GetPropertyValue returns the computed value of a property. Unstyled
// nodes report values of the initial style.
func (sn *StyNode) GetPropertyValue(key string) (style.Property, error) {
	if sn.computedStyles == nil {
		st := style.Default()
		return st.Get(key)
	}
	return sn.computedStyles.Get(key)
}

func (sn *StyNode) String() string {
	var b strings.Builder
	b.WriteString(sn.element)
	if sn.id != "" {
		b.WriteString("#" + sn.id)
	}
	for _, c := range sn.classes {
		b.WriteString("." + c)
	}
	for _, s := range sn.States() {
		b.WriteString(":" + s)
	}
	return b.String()
}

// --- selector.Node ---------------------------------------------------------

var _ selector.Node = (*StyNode)(nil)

// Element is part of interface selector.Node.
func (sn *StyNode) Element() string { return sn.element }

// ID is part of interface selector.Node.
func (sn *StyNode) ID() string { return sn.id }

// HasClass is part of interface selector.Node.
func (sn *StyNode) HasClass(class string) bool {
	for _, c := range sn.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Attr is part of interface selector.Node.
func (sn *StyNode) Attr(name string) (string, bool) {
	switch name {
	case "id":
		return sn.id, sn.id != ""
	case "class":
		return strings.Join(sn.classes, " "), len(sn.classes) > 0
	}
	v, ok := sn.attrs[name]
	return v, ok
}

// InState is part of interface selector.Node.
func (sn *StyNode) InState(state string) bool {
	return sn.states[state]
}

// ParentElement is part of interface selector.Node.
func (sn *StyNode) ParentElement() selector.Node {
	if p := sn.ParentNode(); p != nil {
		return p
	}
	return nil
}

// PreviousSibling is part of interface selector.Node.
func (sn *StyNode) PreviousSibling() selector.Node {
	if prev := Node(sn.PrevSibling()); prev != nil {
		return prev
	}
	return nil
}

// SiblingPosition is part of interface selector.Node.
func (sn *StyNode) SiblingPosition() (index, count int) {
	return sn.Position()
}

// ChildElementCount is part of interface selector.Node.
func (sn *StyNode) ChildElementCount() int {
	return sn.ChildCount()
}

// --- Style pass ------------------------------------------------------------

// Style computes the styles of all nodes of the tree starting at root.
// The root inherits from parent, which may be nil.
//
// With a nil stylesheet, nodes get initial styles with the default display
// mode of their element.
func Style(root *StyNode, sheet *cssom.Stylesheet, parent *style.Style) error {
	if root == nil {
		return nil
	}
	return root.TopDown(func(n, p *tree.Node[*StyNode], _ int) error {
		sn := Node(n)
		inherited := parent
		if p != nil {
			inherited = Node(p).computedStyles
		}
		var st style.Style
		if sheet == nil {
			st = style.Inherit(inherited)
			st.Layout.Display = style.DisplayForElement(sn.element)
		} else {
			st = sheet.ComputeStyle(sn, inherited)
		}
		sn.computedStyles = &st
		tracer().Debugf("styled %s: display=%s", sn, st.Layout.Display)
		return nil
	})
}
