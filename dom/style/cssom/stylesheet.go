package cssom

import (
	"sort"
	"strings"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/selector"
)

// Declaration is a single `property: value` pair of a rule.
// Values are kept as raw text and will be parsed when applied to a style.
type Declaration struct {
	Property  string // lower case, except for custom properties
	Value     string // raw value, without "!important"
	Important bool
	Offset    int // byte offset of the property name in the source, or -1
}

// IsCustom is true for custom properties (variables), e.g. "--primary".
func (d Declaration) IsCustom() bool {
	return strings.HasPrefix(d.Property, "--")
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// Rule is a rule of a stylesheet: a group of selectors and the declarations
// applying to nodes matching any of them.
type Rule struct {
	Prelude      string              // selector text as written
	Selectors    []selector.Selector // parsed prelude
	Declarations []Declaration       // in source order
	Offset       int                 // byte offset of the prelude, or -1
	Index        int                 // position of the rule within its stylesheet
}

// Property returns the value of the last declaration for key within this
// rule.
func (r *Rule) Property(key string) (style.Property, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == key {
			return style.Property(r.Declarations[i].Value), true
		}
	}
	return style.NullStyle, false
}

// IsImportant returns true if a style key is marked as important ("!").
func (r *Rule) IsImportant(key string) bool {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == key {
			return r.Declarations[i].Important
		}
	}
	return false
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Prelude)
	b.WriteString(" {")
	for _, d := range r.Declarations {
		b.WriteString(" ")
		b.WriteString(d.String())
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

// Stylesheet is a parsed stylesheet. It must not be modified while it is
// used for matching.
type Stylesheet struct {
	Rules     []*Rule
	Variables map[string]string // from :root, keys include the "--" prefix
}

// NewStylesheet creates an empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{Variables: make(map[string]string)}
}

// UserAgentStylesheet returns a stylesheet with the defaults for widget
// elements. Clients usually append their author stylesheets to it.
func UserAgentStylesheet() *Stylesheet {
	sheet, err := Parse(style.UserAgentCSS)
	if err != nil {
		panic("user agent stylesheet is malformed: " + err.Error())
	}
	return sheet
}

// Empty checks if this stylesheet contains any rules.
func (s *Stylesheet) Empty() bool {
	return len(s.Rules) == 0
}

// AppendRules appends the rules of other to s. Rules of other will win
// against rules of s with equal specificity. Variables of other override
// variables with the same name.
func (s *Stylesheet) AppendRules(other *Stylesheet) {
	if other == nil {
		return
	}
	for _, r := range other.Rules {
		rule := *r
		rule.Index = len(s.Rules)
		s.Rules = append(s.Rules, &rule)
	}
	if s.Variables == nil {
		s.Variables = make(map[string]string, len(other.Variables))
	}
	for k, v := range other.Variables {
		s.Variables[k] = v
	}
}

func (s *Stylesheet) String() string {
	var b strings.Builder
	if len(s.Variables) > 0 {
		names := make([]string, 0, len(s.Variables))
		for k := range s.Variables {
			names = append(names, k)
		}
		sort.Strings(names)
		b.WriteString(":root {")
		for _, k := range names {
			b.WriteString(" " + k + ": " + s.Variables[k] + ";")
		}
		b.WriteString(" }\n")
	}
	for _, r := range s.Rules {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return b.String()
}
