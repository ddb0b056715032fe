/*
Package cssom provides stylesheets for terminal widgets: parsing, the
cascade, and diagnostics.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. A Stylesheet
is an ordered list of rules, each with a group of selectors and a list of
declarations, plus a table of variables from `:root`. Stylesheets are
immutable after parsing and may be shared between concurrent layout passes.

The stylesheet language is a subset of CSS:

   :root {
       --primary: #ff0000;
       --spacing: 2;
   }
   .button {
       display: flex;
       color: var(--primary);
       padding: var(--spacing);
   }

Comments are ignored, at-rules are skipped. Values are kept as raw text and
parsed when a declaration is applied to a style, after substituting
`var(--name)` references. A malformed declaration is ignored, not fatal,
the way browsers ignore it.

The cascade follows CSS for the parts we support: matching rules are sorted
by specificity and source order, with declarations marked `!important`
applied after all others. A child starts from a style inheriting only
color, opacity and visibility from its parent (see style.Inherit).

Check reports everything Parse and the cascade would silently skip, with
error codes, line/column positions and suggestions for misspelled
properties. It is meant for tooling, not for the layout pass.

Package douceuradapter provides an alternative front-end, based on the
parser of https://github.com/aymerick/douceur.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cellstyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.cssom")
}
