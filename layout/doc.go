/*
Package layout converts a styled widget tree into cell geometry.

Layout is a single top-down pass. Every displayed node gets a border box
and a content box, in terminal cells. Widths and heights are border-box
sizes: padding and border are part of them, margins are not. A border of
any style takes up one cell per side.

Children are arranged according to the display mode of their parent:

    block   children are stacked vertically and fill the parent's width
    flex    children are distributed along a row or column (flex-grow,
            flex-shrink, flex-basis, gap, justify-content, align-items)
    grid    tracks and item cells are computed by package layout/grid

Absolutely positioned children are taken out of the flow and placed
relative to the content box of their parent with top, right, bottom and
left. Display "none" removes a node and its subtree.

Content is not measured beyond the text of leaf widgets, which is
taken as lines of terminal cells. Auto heights shrink-wrap the laid-out
children.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cellstyle.layout'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.layout")
}
