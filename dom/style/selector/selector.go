package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Combinator is the relation between two consecutive parts of a selector.
type Combinator uint8

// Combinators. None follows the final part of a chain.
const (
	None            Combinator = iota
	Descendant                 // ancestor at any depth: "a b"
	Child                      // immediate parent: "a > b"
	AdjacentSibling            // immediately preceding sibling: "a + b"
	GeneralSibling             // any preceding sibling: "a ~ b"
)

func (c Combinator) String() string {
	return [...]string{"", " ", " > ", " + ", " ~ "}[c%5]
}

// AttrOp is the comparison operator of an attribute selector.
type AttrOp uint8

// Attribute operators.
const (
	AttrExists    AttrOp = iota // [attr]
	AttrEquals                  // [attr=v]
	AttrIncludes                // [attr~=v], whitespace-separated word list
	AttrDashMatch               // [attr|=v], v or v-…
	AttrPrefix                  // [attr^=v]
	AttrSuffix                  // [attr$=v]
	AttrSubstring               // [attr*=v]
)

var attrOpSymbols = [...]string{"", "=", "~=", "|=", "^=", "$=", "*="}

func (op AttrOp) String() string {
	return attrOpSymbols[int(op)%len(attrOpSymbols)]
}

// AttrMatcher is an attribute selector.
type AttrMatcher struct {
	Name            string
	Op              AttrOp
	Value           string
	CaseInsensitive bool // trailing " i" flag
}

func (am AttrMatcher) String() string {
	if am.Op == AttrExists {
		return "[" + am.Name + "]"
	}
	s := "[" + am.Name + am.Op.String() + quoteIfNeeded(am.Value)
	if am.CaseInsensitive {
		s += " i"
	}
	return s + "]"
}

// PseudoKind discriminates pseudo-classes.
type PseudoKind uint8

// Pseudo-class kinds. PseudoState covers every dynamic state like :focus,
// :hover or :disabled, which are queried from the node by name.
const (
	PseudoState PseudoKind = iota
	PseudoFirstChild
	PseudoLastChild
	PseudoOnlyChild
	PseudoEmpty
	PseudoRoot
	PseudoNthChild
	PseudoNthLastChild
	PseudoNot
)

// PseudoClass is a pseudo-class of a compound selector.
// Nth-pseudo-classes match positions A·n+B (n ≥ 0, 1-indexed). Not holds the
// compound selector negated by :not().
type PseudoClass struct {
	Kind PseudoKind
	Name string
	A, B int
	Not  *Part
}

func (pc PseudoClass) String() string {
	switch pc.Kind {
	case PseudoNthChild, PseudoNthLastChild:
		return ":" + pc.Name + "(" + formatNth(pc.A, pc.B) + ")"
	case PseudoNot:
		if pc.Not == nil {
			return ":not()"
		}
		return ":not(" + pc.Not.String() + ")"
	}
	return ":" + pc.Name
}

// Part is a compound selector, i.e. a chain segment without combinators.
type Part struct {
	Element    string
	ID         string
	Classes    []string
	Attributes []AttrMatcher
	Pseudo     []PseudoClass
	Universal  bool
}

// IsEmpty is true if no constraint at all is set, not even '*'.
func (p *Part) IsEmpty() bool {
	return p.Element == "" && p.ID == "" && len(p.Classes) == 0 &&
		len(p.Attributes) == 0 && len(p.Pseudo) == 0 && !p.Universal
}

// Specificity of a compound selector.
func (p *Part) Specificity() Specificity {
	var s Specificity
	if p.ID != "" {
		s[0] = 1
	}
	s[1] = len(p.Classes) + len(p.Attributes) + len(p.Pseudo)
	if p.Element != "" {
		s[2] = 1
	}
	return s
}

func (p *Part) String() string {
	var b strings.Builder
	switch {
	case p.Element != "":
		b.WriteString(p.Element)
	case p.Universal:
		b.WriteString("*")
	}
	if p.ID != "" {
		b.WriteString("#" + p.ID)
	}
	for _, c := range p.Classes {
		b.WriteString("." + c)
	}
	for _, a := range p.Attributes {
		b.WriteString(a.String())
	}
	for _, pc := range p.Pseudo {
		b.WriteString(pc.String())
	}
	return b.String()
}

// Step is a part of a selector chain, together with the combinator relating
// it to the next step.
type Step struct {
	Part       Part
	Combinator Combinator
}

// Selector is a chain of steps. The last step carries Combinator None.
type Selector struct {
	Steps []Step
}

// IsEmpty is true for a selector without steps. Empty selectors match nothing.
func (sel Selector) IsEmpty() bool {
	return len(sel.Steps) == 0
}

// Target returns the last part, which has to match the node itself.
// Earlier parts constrain ancestors and siblings only.
func (sel Selector) Target() *Part {
	if len(sel.Steps) == 0 {
		return nil
	}
	return &sel.Steps[len(sel.Steps)-1].Part
}

// Specificity sums up the specificity of all parts.
// Combinators do not add specificity.
func (sel Selector) Specificity() Specificity {
	var s Specificity
	for i := range sel.Steps {
		s = s.Add(sel.Steps[i].Part.Specificity())
	}
	return s
}

func (sel Selector) String() string {
	var b strings.Builder
	for i := range sel.Steps {
		b.WriteString(sel.Steps[i].Part.String())
		if i < len(sel.Steps)-1 {
			b.WriteString(sel.Steps[i].Combinator.String())
		}
	}
	return b.String()
}

// --- Specificity -----------------------------------------------------------

// Specificity is the 3-tuple (id count, class/attribute/pseudo-class count,
// element count). It orders lexicographically, ids most significant.
type Specificity [3]int

// Less returns true if s has lower precedence than other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// Compare returns -1, 0 or +1.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if s[i] < other[i] {
			return -1
		}
		if s[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Add returns the element-wise sum.
func (s Specificity) Add(other Specificity) Specificity {
	for i, x := range other {
		s[i] += x
	}
	return s
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

// --- Helpers ---------------------------------------------------------------

func formatNth(a, b int) string {
	switch {
	case a == 0:
		return strconv.Itoa(b)
	case a == 2 && b == 1:
		return "odd"
	case a == 2 && b == 0:
		return "even"
	}
	s := strconv.Itoa(a) + "n"
	switch a {
	case 1:
		s = "n"
	case -1:
		s = "-n"
	}
	switch {
	case b > 0:
		s += "+" + strconv.Itoa(b)
	case b < 0:
		s += strconv.Itoa(b)
	}
	return s
}

func quoteIfNeeded(v string) string {
	if v != "" && isIdent(v) {
		return v
	}
	return strconv.Quote(v)
}

func isIdent(s string) bool {
	for i, r := range s {
		if !isNameRune(r) || (i == 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
