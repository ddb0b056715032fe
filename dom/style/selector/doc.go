/*
Package selector implements CSS selectors for widget trees.

A selector is a chain of compound selectors (parts), joined by combinators:

    row > .button:focus ~ label[for^=name i]

Selectors are matched against any tree whose nodes implement the Node
capability interface. Matching starts at the last part of the chain, the
target, and walks backwards along the combinators, backtracking where a
combinator may relate to more than one node (descendant and general
sibling).

Specificity is the 3-tuple (ids, classes+attributes+pseudo-classes,
element names), summed over all parts of a chain.

For matching HTML documents, there is the great
https://godoc.org/github.com/andybalholm/cascadia, which we use for
document queries. Widget trees are not HTML trees, however, and carry
pseudo-states like :focus, which is why we do not use cascadia here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package selector

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cellstyle.selector'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.selector")
}
