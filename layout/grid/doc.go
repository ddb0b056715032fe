/*
Package grid implements grid layout for terminal cells: track sizing,
track positions and auto-placement of grid items.

Track sizing is a single deferred-weight pass. Fixed and percentage tracks
are served first; the remaining space is shared by fr tracks according to
their weights. Content-sized tracks (auto, min-content, max-content) weigh
1fr, as widget content is not measured. minmax(a, b) is sized like b and
then clamped to at least a. Fractional cells are truncated, never rounded,
so the sum of all tracks never exceeds the available space.

Auto-placement follows the CSS grid algorithm in a simplified form: items
with explicit row and column positions are placed first, then all others
in source order, scanning cells in row-major or column-major order. The
grid never grows beyond MaxGridSize rows or columns and the search for a
free area is bounded. Items which cannot be placed are skipped.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grid

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cellstyle.grid'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.grid")
}
