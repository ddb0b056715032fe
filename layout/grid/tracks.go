package grid

import "github.com/npillmayer/cellstyle/dom/style"

// CalculateTracks computes the sizes of tracks in cells.
//
// gap cells are reserved between neighbouring tracks. Fixed tracks take
// their size, percentage tracks a share of available. Whatever is left is
// divided among flexible tracks by weight, truncating fractions. An empty
// track list is treated as a single track of autoSize.
//
// Sizes are never negative and no single track is larger than available.
func CalculateTracks(available int, tracks []style.TrackSize, autoSize style.TrackSize, gap int) []int {
	if len(tracks) == 0 {
		tracks = []style.TrackSize{autoSize}
	}
	if available < 0 {
		available = 0
	}
	if gap < 0 {
		gap = 0
	}
	sizes := make([]int, len(tracks))
	remaining := available - (len(tracks)-1)*gap
	totalFr := 0.0
	for i, t := range tracks {
		if t.IsFlexible() {
			totalFr += t.FrWeight()
			continue
		}
		sizes[i] = fixedSize(t, available)
		remaining -= sizes[i]
	}
	if totalFr > 0 && remaining > 0 {
		perFr := float64(remaining) / totalFr
		for i, t := range tracks {
			if t.IsFlexible() {
				sizes[i] = int(t.FrWeight() * perFr)
			}
		}
	}
	for i, t := range tracks {
		if t.Kind == style.TrackMinMax {
			if lower := fixedSize(t.Lower.Track(), available); sizes[i] < lower {
				sizes[i] = lower
			}
		}
		sizes[i] = clamp(sizes[i], 0, available)
	}
	tracer().Debugf("tracks %v in %d cells (gap %d) -> %v", tracks, available, gap, sizes)
	return sizes
}

// fixedSize resolves a non-flexible track. Flexible tracks resolve to 0,
// which makes them a neutral lower bound for minmax().
func fixedSize(t style.TrackSize, available int) int {
	switch t.Kind {
	case style.TrackFixed:
		return int(t.Value)
	case style.TrackPercent:
		return int(float64(available) * t.Value / 100.0)
	case style.TrackMinMax:
		return fixedSize(t.Upper.Track(), available)
	}
	return 0
}

// TrackPositions returns the start offsets of tracks with the given sizes,
// with gap cells between tracks. The result has one more entry than sizes:
// a trailing sentinel holding the total extent, without a trailing gap.
func TrackPositions(sizes []int, gap int) []int {
	if gap < 0 {
		gap = 0
	}
	positions := make([]int, len(sizes)+1)
	for i, sz := range sizes {
		positions[i+1] = positions[i] + sz
		if i < len(sizes)-1 {
			positions[i+1] += gap
		}
	}
	return positions
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
