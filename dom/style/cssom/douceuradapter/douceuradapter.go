/*
Package douceuradapter creates stylesheets with the CSS parser of
github.com/aymerick/douceur, as an alternative to cssom.Parse.

Douceur is more lenient than cssom.Parse and understands more of CSS3, but
does not report source positions. Declarations and rules of stylesheets
created by this package have an offset of -1.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/style/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cellstyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.cssom")
}

// Parse parses a stylesheet with douceur and converts it.
func Parse(src string) (*cssom.Stylesheet, error) {
	c, err := parser.Parse(src)
	if err != nil {
		return nil, &cssom.ParseError{Code: cssom.EInvalidSelector, Message: err.Error(), Position: -1}
	}
	return Wrap(c)
}

// Wrap converts a douceur stylesheet. At-rules are skipped, a `:root` rule
// contributes its custom properties to the variables of the stylesheet.
// A rule with a selector not understood by package selector results in
// an error.
func Wrap(c *css.Stylesheet) (*cssom.Stylesheet, error) {
	sheet := cssom.NewStylesheet()
	for _, r := range c.Rules {
		if r.Kind == css.AtRule {
			tracer().Infof("stylesheet: skipping unsupported at-rule %s", r.Name)
			continue
		}
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(rule.Prelude, ":root") {
			decls := rule.Declarations[:0]
			for _, d := range rule.Declarations {
				if d.IsCustom() {
					sheet.Variables[d.Property] = d.Value
				} else {
					decls = append(decls, d)
				}
			}
			if rule.Declarations = decls; len(decls) == 0 {
				continue
			}
		}
		rule.Index = len(sheet.Rules)
		sheet.Rules = append(sheet.Rules, rule)
	}
	return sheet, nil
}

func convertRule(r *css.Rule) (*cssom.Rule, error) {
	prelude := strings.TrimSpace(r.Prelude)
	group, err := selector.ParseGroup(prelude)
	if err != nil {
		return nil, &cssom.ParseError{
			Code:     cssom.EInvalidSelector,
			Message:  "invalid selector " + prelude + ": " + err.Error(),
			Position: -1,
		}
	}
	rule := &cssom.Rule{Prelude: prelude, Selectors: group, Offset: -1}
	for _, d := range r.Declarations {
		prop := strings.TrimSpace(d.Property)
		if !strings.HasPrefix(prop, "--") {
			prop = strings.ToLower(prop)
		}
		rule.Declarations = append(rule.Declarations, cssom.Declaration{
			Property:  prop,
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
			Offset:    -1,
		})
	}
	return rule, nil
}
