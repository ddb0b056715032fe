package cssom

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/cellstyle/dom/style"
)

// Check parses a stylesheet and reports every problem found, sorted by
// position. In contrast to Parse, which stops at the first syntax error and
// silently ignores invalid declarations, Check validates every declaration
// against the property set of package style.
//
// An empty result means the stylesheet is clean.
func Check(src string) []Diagnostic {
	sheet, diags, err := parse(src)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			diags = append(diags, Diagnostic{
				Code:     pe.Code,
				Severity: Error,
				Message:  pe.Message,
				Location: SourceLocation{Offset: pe.Position},
			})
		}
	} else {
		for _, r := range sheet.Rules {
			for _, d := range r.Declarations {
				diags = append(diags, sheet.checkDeclaration(d)...)
			}
		}
	}
	for i := range diags {
		diags[i].Location = Locate(src, diags[i].Location.Offset)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Location.Offset < diags[j].Location.Offset
	})
	return diags
}

// HasErrors is true if any of diags has severity Error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (s *Stylesheet) checkDeclaration(d Declaration) []Diagnostic {
	at := SourceLocation{Offset: d.Offset}
	if d.IsCustom() {
		return []Diagnostic{{
			Code:     EUnknownProperty,
			Severity: Hint,
			Message:  "custom property " + d.Property + " outside of :root will be ignored",
			Location: at,
		}}
	}
	if !style.IsKnownProperty(d.Property) {
		return []Diagnostic{{
			Code:       EUnknownProperty,
			Severity:   Warning,
			Message:    "unknown property " + d.Property,
			Location:   at,
			Suggestion: SuggestProperty(d.Property),
		}}
	}
	var diags []Diagnostic
	for _, name := range s.undefinedVariables(d.Value) {
		diags = append(diags, Diagnostic{
			Code:     EUndefinedVariable,
			Severity: Warning,
			Message:  "undefined variable " + name,
			Location: at,
		})
	}
	value := s.ResolveVariables(d.Value)
	if isGridTemplate(d.Property) {
		if _, err := style.ParseTrackList(value); err != nil {
			diags = append(diags, Diagnostic{
				Code:     EInvalidGrid,
				Severity: Warning,
				Message:  d.Property + ": " + err.Error(),
				Location: at,
			})
		}
		return diags
	}
	scratch := style.Default()
	if err := scratch.Set(d.Property, style.Property(value)); err != nil {
		code := EInvalidValue
		if errors.Is(err, style.ErrInvalidColor) {
			code = EInvalidColor
		}
		diags = append(diags, Diagnostic{
			Code:     code,
			Severity: Warning,
			Message:  err.Error(),
			Location: at,
		})
	}
	return diags
}

func isGridTemplate(prop string) bool {
	switch prop {
	case "grid-template-columns", "grid-template-rows":
		return true
	}
	return false
}

// SuggestProperty returns the known property name closest to a misspelled
// one, or "" if nothing is reasonably close.
func SuggestProperty(name string) string {
	known := style.KnownProperties()
	sort.Strings(known)
	if ranks := fuzzy.RankFindFold(name, known); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	name = strings.ToLower(name)
	limit := len(name)/3 + 1
	best, bestDist, bestPrefix := "", limit+1, 0
	for _, k := range known {
		dist := fuzzy.LevenshteinDistance(name, k)
		if dist > limit {
			continue
		}
		prefix := commonPrefix(name, k)
		if dist < bestDist || (dist == bestDist && prefix > bestPrefix) {
			best, bestDist, bestPrefix = k, dist, prefix
		}
	}
	return best
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
