/*
Package styledtree is a straightforward default implementation of a styled widget tree.

Overview

A StyNode carries what selectors match against (element name, id, classes,
attributes and dynamic state) together with the style computed for it.
Nodes build on the general purpose tree of package tree and implement
selector.Node, so a stylesheet may compute styles directly on them.

Style runs the style pass over a whole tree: parents are styled before
their children, and every child inherits from its parent's computed style.

Hosts with their own widget types may implement selector.Node themselves;
the cascade does not depend on this package.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cellstyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.dom")
}
