package cssom

import (
	"sort"
	"strings"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/selector"
)

// Match is a rule matching a node.
type Match struct {
	Rule        *Rule
	Selector    selector.Selector    // most specific selector of the rule's group matching the node
	Specificity selector.Specificity // specificity of Selector
}

// MatchingRules collects every rule with a selector matching node. Matches
// are sorted ascending by specificity, then by source order. This is the
// order in which declarations are applied, except that declarations marked
// `!important` are applied after all others.
func (s *Stylesheet) MatchingRules(node selector.Node) []Match {
	if node == nil {
		return nil
	}
	var matches []Match
	for _, r := range s.Rules {
		found := false
		var m Match
		for _, sel := range r.Selectors {
			if !selector.Match(sel, node) {
				continue
			}
			if sp := sel.Specificity(); !found || m.Specificity.Less(sp) {
				m = Match{Rule: r, Selector: sel, Specificity: sp}
				found = true
			}
		}
		if found {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if c := matches[i].Specificity.Compare(matches[j].Specificity); c != 0 {
			return c < 0
		}
		return matches[i].Rule.Index < matches[j].Rule.Index
	})
	return matches
}

// ComputeStyle computes the style of a node in a tree. The style starts
// from the inheritable properties of parent, which may be nil for the root
// node. Then all matching declarations are applied in cascade order.
func (s *Stylesheet) ComputeStyle(node selector.Node, parent *style.Style) style.Style {
	st := style.Inherit(parent)
	s.cascade(&st, s.MatchingRules(node), parent)
	return st
}

// Apply applies the rules matching a selector to a copy of base and
// returns it. The selector is matched as if it described a node in a tree,
// i.e. `.a .b` matches rules for `.b`, `.a .b` and `.a > .b` alike.
// The keyword `inherit` resolves against base.
//
// A malformed selector or a selector without matching rules returns base
// unchanged.
func (s *Stylesheet) Apply(selectorText string, base style.Style) style.Style {
	st := base
	sel, err := selector.Parse(selectorText)
	if err != nil {
		tracer().Errorf("cannot apply styles to %q: %v", selectorText, err)
		return st
	}
	s.cascade(&st, s.MatchingRules(selector.ChainNode(sel)), &base)
	return st
}

// cascade applies declarations in order of importance, specificity and
// source order. Last applied wins.
func (s *Stylesheet) cascade(st *style.Style, matches []Match, parent *style.Style) {
	for _, important := range [...]bool{false, true} {
		for _, m := range matches {
			for _, d := range m.Rule.Declarations {
				if d.Important != important || d.IsCustom() {
					continue
				}
				value := s.ResolveVariables(d.Value)
				if err := st.SetWithParent(d.Property, style.Property(value), parent); err != nil {
					tracer().Debugf("ignoring declaration %q of rule %q: %v", d, m.Rule.Prelude, err)
				}
			}
		}
	}
}

// ResolveVariables substitutes references `var(--name)` and
// `var(--name, fallback)` in a value by the value of the variable from
// `:root`. Substitution is a single pass: values of variables are not
// searched for further references. References to undefined variables
// without a fallback are left in place.
func (s *Stylesheet) ResolveVariables(value string) string {
	if !strings.Contains(value, "var(") {
		return value
	}
	var b strings.Builder
	for {
		i := strings.Index(value, "var(")
		if i < 0 {
			break
		}
		end := indexTopLevel(value, i+4, ")")
		if end < 0 {
			break
		}
		b.WriteString(value[:i])
		b.WriteString(s.resolveReference(value[i : end+1]))
		value = value[end+1:]
	}
	b.WriteString(value)
	return b.String()
}

// resolveReference resolves a single "var(…)" expression.
func (s *Stylesheet) resolveReference(ref string) string {
	args := ref[4 : len(ref)-1]
	name, fallback, hasFallback := args, "", false
	if comma := indexTopLevel(args, 0, ","); comma >= 0 {
		name, fallback, hasFallback = args[:comma], strings.TrimSpace(args[comma+1:]), true
	}
	if v, ok := s.Variables[strings.TrimSpace(name)]; ok {
		return v
	}
	if hasFallback {
		return s.ResolveVariables(fallback)
	}
	return ref
}

// undefinedVariables lists variables referenced in value without a
// definition or a fallback.
func (s *Stylesheet) undefinedVariables(value string) []string {
	var undefined []string
	for {
		i := strings.Index(value, "var(")
		if i < 0 {
			return undefined
		}
		end := indexTopLevel(value, i+4, ")")
		if end < 0 {
			return undefined
		}
		ref := value[i : end+1]
		if r := s.resolveReference(ref); r == ref {
			undefined = append(undefined, strings.TrimSpace(ref[4:len(ref)-1]))
		}
		value = value[end+1:]
	}
}
