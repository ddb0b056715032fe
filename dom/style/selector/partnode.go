package selector

import "strings"

// PartNode creates a synthetic node from a compound selector: a parentless
// leaf with the element, id, classes, attributes and states the compound
// requires.
//
// Attributes take the value of their matcher, which satisfies every
// operator except an includes-match of a multi-word value.
func PartNode(part *Part) Node {
	pn := newPartNode(part)
	pn.run = &[]*partNode{pn}
	return pn
}

// ChainNode creates a synthetic tree from a selector, with one node per step,
// related to each other as the combinators require. It returns the node for
// the target step, or nil for an empty selector. This is what a stylesheet
// matches against when asked for the style of a bare selector, without a
// widget tree.
func ChainNode(sel Selector) Node {
	if sel.IsEmpty() {
		return nil
	}
	nodes := make([]*partNode, len(sel.Steps))
	for i := range sel.Steps {
		nodes[i] = newPartNode(&sel.Steps[i].Part)
	}
	nodes[0].run = &[]*partNode{nodes[0]}
	for i := 0; i+1 < len(nodes); i++ {
		prev, n := nodes[i], nodes[i+1]
		switch sel.Steps[i].Combinator {
		case AdjacentSibling, GeneralSibling:
			n.parent = prev.parent
			n.run = prev.run
			*n.run = append(*n.run, n)
		default:
			n.parent = prev
			n.run = &[]*partNode{n}
			prev.children = n.run
		}
	}
	return nodes[len(nodes)-1]
}

func newPartNode(part *Part) *partNode {
	pn := &partNode{
		element: part.Element,
		id:      part.ID,
		classes: part.Classes,
		attrs:   make(map[string]string, len(part.Attributes)),
		states:  make(map[string]bool),
	}
	for _, am := range part.Attributes {
		pn.attrs[am.Name] = am.Value
	}
	for _, pc := range part.Pseudo {
		if pc.Kind == PseudoState {
			pn.states[pc.Name] = true
		}
	}
	return pn
}

type partNode struct {
	element  string
	id       string
	classes  []string
	attrs    map[string]string
	states   map[string]bool
	parent   *partNode
	run      *[]*partNode // siblings, including this node
	children *[]*partNode
}

var _ Node = (*partNode)(nil)

func (pn *partNode) Element() string { return pn.element }
func (pn *partNode) ID() string      { return pn.id }

func (pn *partNode) HasClass(class string) bool {
	for _, c := range pn.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (pn *partNode) Attr(name string) (string, bool) {
	v, ok := pn.attrs[strings.ToLower(name)]
	return v, ok
}

func (pn *partNode) InState(state string) bool { return pn.states[state] }

func (pn *partNode) ParentElement() Node {
	if pn.parent == nil {
		return nil
	}
	return pn.parent
}

func (pn *partNode) PreviousSibling() Node {
	if inx, _ := pn.SiblingPosition(); inx > 0 {
		return (*pn.run)[inx-1]
	}
	return nil
}

func (pn *partNode) SiblingPosition() (index, count int) {
	for i, sib := range *pn.run {
		if sib == pn {
			return i, len(*pn.run)
		}
	}
	return 0, 1
}

func (pn *partNode) ChildElementCount() int {
	if pn.children == nil {
		return 0
	}
	return len(*pn.children)
}
