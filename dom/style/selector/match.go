package selector

import "strings"

// Node is the capability a tree has to offer for selector matching.
//
// Implementations must return an untyped nil from ParentElement and
// PreviousSibling if there is no such node, not a typed nil pointer.
type Node interface {
	Element() string                     // element (type) name, e.g. "button"
	ID() string                          // value of the id, or ""
	HasClass(class string) bool          // is class in the class list?
	Attr(name string) (string, bool)     // attribute value, if present
	InState(state string) bool           // dynamic state like "focus"
	ParentElement() Node                 // parent or nil for the root
	PreviousSibling() Node               // immediately preceding sibling or nil
	SiblingPosition() (index, count int) // 0-based index among siblings
	ChildElementCount() int
}

// Match returns true if sel matches node. Empty selectors match nothing.
func Match(sel Selector, node Node) bool {
	if sel.IsEmpty() || node == nil {
		return false
	}
	return matchStep(sel.Steps, len(sel.Steps)-1, node)
}

// MatchAny returns true if any of the selectors of a group matches node.
func MatchAny(group []Selector, node Node) bool {
	for _, sel := range group {
		if Match(sel, node) {
			return true
		}
	}
	return false
}

// matchStep matches steps[i] against n, then recurses to the left
// according to the combinator between steps[i-1] and steps[i].
func matchStep(steps []Step, i int, n Node) bool {
	if !MatchPart(&steps[i].Part, n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch steps[i-1].Combinator {
	case Descendant:
		for a := n.ParentElement(); a != nil; a = a.ParentElement() {
			if matchStep(steps, i-1, a) {
				return true
			}
		}
	case Child:
		if a := n.ParentElement(); a != nil {
			return matchStep(steps, i-1, a)
		}
	case AdjacentSibling:
		if s := n.PreviousSibling(); s != nil {
			return matchStep(steps, i-1, s)
		}
	case GeneralSibling:
		for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			if matchStep(steps, i-1, s) {
				return true
			}
		}
	default:
		tracer().Errorf("selector step %d has no combinator", i-1)
	}
	return false
}

// MatchPart matches a compound selector against a single node, disregarding
// any tree relations except those of structural pseudo-classes.
func MatchPart(part *Part, n Node) bool {
	if part.IsEmpty() {
		return false
	}
	if part.Element != "" && !strings.EqualFold(part.Element, n.Element()) {
		return false
	}
	if part.ID != "" && part.ID != n.ID() {
		return false
	}
	for _, c := range part.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	for i := range part.Attributes {
		if !matchAttr(&part.Attributes[i], n) {
			return false
		}
	}
	for i := range part.Pseudo {
		if !matchPseudo(&part.Pseudo[i], n) {
			return false
		}
	}
	return true
}

func matchAttr(am *AttrMatcher, n Node) bool {
	v, ok := n.Attr(am.Name)
	if !ok {
		return false
	}
	want := am.Value
	if am.CaseInsensitive {
		v, want = strings.ToLower(v), strings.ToLower(want)
	}
	switch am.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return v == want
	case AttrIncludes:
		if want == "" || strings.ContainsAny(want, " \t\n\r\f") {
			return false
		}
		for _, w := range strings.Fields(v) {
			if w == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return v == want || strings.HasPrefix(v, want+"-")
	case AttrPrefix:
		return want != "" && strings.HasPrefix(v, want)
	case AttrSuffix:
		return want != "" && strings.HasSuffix(v, want)
	case AttrSubstring:
		return want != "" && strings.Contains(v, want)
	}
	return false
}

func matchPseudo(pc *PseudoClass, n Node) bool {
	switch pc.Kind {
	case PseudoState:
		return n.InState(pc.Name)
	case PseudoRoot:
		return n.ParentElement() == nil
	case PseudoEmpty:
		return n.ChildElementCount() == 0
	case PseudoNot:
		return pc.Not == nil || !MatchPart(pc.Not, n)
	}
	inx, count := n.SiblingPosition()
	switch pc.Kind {
	case PseudoFirstChild:
		return inx == 0
	case PseudoLastChild:
		return inx == count-1
	case PseudoOnlyChild:
		return count == 1
	case PseudoNthChild:
		return nthMatches(pc.A, pc.B, inx+1)
	case PseudoNthLastChild:
		return nthMatches(pc.A, pc.B, count-inx)
	}
	return false
}

// nthMatches checks if pos = a·n + b for some n ≥ 0.
func nthMatches(a, b, pos int) bool {
	if a == 0 {
		return pos == b
	}
	d := pos - b
	return d%a == 0 && d/a >= 0
}
