package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TrackKind is the variant of a grid track size rule.
type TrackKind uint8

// Track kinds. Fr, Auto, MinContent and MaxContent compete for the space
// left over after fixed and percentage tracks are subtracted.
const (
	TrackFixed TrackKind = iota
	TrackPercent
	TrackFr
	TrackAuto
	TrackMinContent
	TrackMaxContent
	TrackMinMax
)

// TrackBound is one bound of a minmax() track.
type TrackBound struct {
	Kind  TrackKind
	Value float64
}

// TrackSize is the size rule of one grid column or row.
// Value holds cells for fixed tracks, the percentage for percent tracks
// and the weight for fr tracks. Lower and Upper are set for minmax() only.
type TrackSize struct {
	Kind  TrackKind
	Value float64
	Lower TrackBound
	Upper TrackBound
}

// FixedTrack is a track of n cells.
func FixedTrack(n int) TrackSize { return TrackSize{Kind: TrackFixed, Value: float64(n)} }

// PercentTrack is a track of p percent of the available space.
func PercentTrack(p float64) TrackSize { return TrackSize{Kind: TrackPercent, Value: p} }

// FrTrack is a flexible track of weight w.
func FrTrack(w float64) TrackSize { return TrackSize{Kind: TrackFr, Value: w} }

// AutoTrack is an auto-sized track.
func AutoTrack() TrackSize { return TrackSize{Kind: TrackAuto} }

// MinMaxTrack is a track clamped between lower and upper. Bounds which are
// themselves minmax() tracks are flattened to their upper bound.
func MinMaxTrack(lower, upper TrackSize) TrackSize {
	return TrackSize{Kind: TrackMinMax, Lower: lower.bound(false), Upper: upper.bound(true)}
}

func (t TrackSize) bound(upper bool) TrackBound {
	if t.Kind == TrackMinMax {
		if upper {
			return t.Upper
		}
		return t.Lower
	}
	return TrackBound{Kind: t.Kind, Value: t.Value}
}

// Track turns a bound into a plain track size.
func (b TrackBound) Track() TrackSize {
	return TrackSize{Kind: b.Kind, Value: b.Value}
}

// IsFlexible is true for tracks sharing leftover space.
func (t TrackSize) IsFlexible() bool {
	switch t.Kind {
	case TrackFr, TrackAuto, TrackMinContent, TrackMaxContent:
		return true
	case TrackMinMax:
		return t.Upper.Track().IsFlexible()
	}
	return false
}

// FrWeight is the share of leftover space a flexible track claims.
// Content-sized tracks weigh 1, as content is not measured.
func (t TrackSize) FrWeight() float64 {
	switch t.Kind {
	case TrackFr:
		return t.Value
	case TrackAuto, TrackMinContent, TrackMaxContent:
		return 1.0
	case TrackMinMax:
		return t.Upper.Track().FrWeight()
	}
	return 0
}

func (t TrackSize) String() string {
	switch t.Kind {
	case TrackFixed:
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	case TrackPercent:
		return strconv.FormatFloat(t.Value, 'f', -1, 64) + "%"
	case TrackFr:
		return strconv.FormatFloat(t.Value, 'f', -1, 64) + "fr"
	case TrackMinContent:
		return "min-content"
	case TrackMaxContent:
		return "max-content"
	case TrackMinMax:
		return "minmax(" + t.Lower.Track().String() + ", " + t.Upper.Track().String() + ")"
	}
	return "auto"
}

// FormatTrackList is the inverse of ParseGridTemplate, without repeat().
func FormatTrackList(tracks []TrackSize) string {
	if len(tracks) == 0 {
		return "none"
	}
	s := make([]string, len(tracks))
	for i, t := range tracks {
		s[i] = t.String()
	}
	return strings.Join(s, " ")
}

// maxRepeat caps repeat() counts so that a hostile count cannot blow up
// memory before grid dimensions are clamped.
const maxRepeat = 1000

// maxTrackValue bounds numbers in track sizes.
const maxTrackValue = 1e6

// ErrInvalidGridTemplate is returned by ParseTrackList for malformed
// track lists.
var ErrInvalidGridTemplate = errors.New("invalid grid template")

// ParseGridTemplate parses a track list for grid-template-columns/-rows.
// Tokens are whitespace separated and one of: N or Npx (fixed), N%, Nfr,
// auto, min-content, max-content, repeat(N, <track-list>) or minmax(a, b).
//
// Any malformed token results in zero tracks, so a bad declaration degrades
// to "no grid".
func ParseGridTemplate(s string) []TrackSize {
	tracks, err := ParseTrackList(s)
	if err != nil {
		tracer().Debugf("grid template %q ignored: %v", s, err)
		return nil
	}
	return tracks
}

// ParseTrackList is like ParseGridTemplate, but reports why a track list
// is malformed.
func ParseTrackList(s string) ([]TrackSize, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return nil, nil
	}
	tokens, err := splitTopLevel(s)
	if err != nil {
		return nil, err
	}
	var tracks []TrackSize
	for _, tok := range tokens {
		t, err := parseTrackToken(tok)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t...)
		if len(tracks) > maxRepeat {
			return nil, fmt.Errorf("more than %d tracks: %w", maxRepeat, ErrInvalidGridTemplate)
		}
	}
	return tracks, nil
}

// splitTopLevel splits at whitespace outside of parentheses.
func splitTopLevel(s string) ([]string, error) {
	var tokens []string
	depth, start := 0, -1
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' at %d: %w", i, ErrInvalidGridTemplate)
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(': %w", ErrInvalidGridTemplate)
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens, nil
}

// splitArgs splits function arguments at top-level commas.
func splitArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}

func parseTrackToken(tok string) ([]TrackSize, error) {
	tok = strings.ToLower(tok)
	if name, args, ok := functionCall(tok); ok {
		switch name {
		case "repeat":
			return parseRepeat(args)
		case "minmax":
			t, err := parseMinMax(args)
			if err != nil {
				return nil, err
			}
			return []TrackSize{t}, nil
		}
		return nil, fmt.Errorf("unknown track function %s(): %w", name, ErrInvalidGridTemplate)
	}
	t, err := parseSingleTrack(tok)
	if err != nil {
		return nil, err
	}
	return []TrackSize{t}, nil
}

func functionCall(tok string) (name, args string, ok bool) {
	open := strings.IndexByte(tok, '(')
	if open <= 0 || !strings.HasSuffix(tok, ")") {
		return "", "", false
	}
	return tok[:open], tok[open+1 : len(tok)-1], true
}

func parseRepeat(args string) ([]TrackSize, error) {
	a := splitArgs(args)
	if len(a) != 2 {
		return nil, fmt.Errorf("repeat() expects 2 arguments: %w", ErrInvalidGridTemplate)
	}
	n, err := strconv.Atoi(a[0])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("repeat() count %q: %w", a[0], ErrInvalidGridTemplate)
	}
	if n > maxRepeat {
		return nil, fmt.Errorf("repeat() count %d exceeds %d: %w", n, maxRepeat, ErrInvalidGridTemplate)
	}
	inner, err := ParseTrackList(a[1])
	if err != nil {
		return nil, err
	}
	if len(inner) == 0 || n*len(inner) > maxRepeat {
		return nil, fmt.Errorf("repeat() of %d×%d tracks: %w", n, len(inner), ErrInvalidGridTemplate)
	}
	tracks := make([]TrackSize, 0, n*len(inner))
	for i := 0; i < n; i++ {
		tracks = append(tracks, inner...)
	}
	return tracks, nil
}

func parseMinMax(args string) (TrackSize, error) {
	a := splitArgs(args)
	if len(a) != 2 {
		return TrackSize{}, fmt.Errorf("minmax() expects 2 arguments: %w", ErrInvalidGridTemplate)
	}
	lo, err := parseSingleTrack(a[0])
	if err != nil {
		return TrackSize{}, err
	}
	hi, err := parseSingleTrack(a[1])
	if err != nil {
		return TrackSize{}, err
	}
	return MinMaxTrack(lo, hi), nil
}

func parseSingleTrack(tok string) (TrackSize, error) {
	switch tok {
	case "auto":
		return AutoTrack(), nil
	case "min-content":
		return TrackSize{Kind: TrackMinContent}, nil
	case "max-content":
		return TrackSize{Kind: TrackMaxContent}, nil
	}
	kind, num := TrackFixed, tok
	switch {
	case strings.HasSuffix(tok, "fr"):
		kind, num = TrackFr, strings.TrimSuffix(tok, "fr")
	case strings.HasSuffix(tok, "%"):
		kind, num = TrackPercent, strings.TrimSuffix(tok, "%")
	case strings.HasSuffix(tok, "px"):
		num = strings.TrimSuffix(tok, "px")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || !(v >= 0 && v <= maxTrackValue) {
		return TrackSize{}, fmt.Errorf("malformed track size %q: %w", tok, ErrInvalidGridTemplate)
	}
	if kind == TrackFixed {
		v = float64(int(v))
	}
	return TrackSize{Kind: kind, Value: v}, nil
}

// --- Grid lines and placement ----------------------------------------------

// MaxGridTracks bounds the tracks of a grid per axis. Line numbers range
// from 1 to MaxGridTracks+1, spans from 1 to MaxGridTracks.
const MaxGridTracks = 1000

// GridLine is the value of a grid-column or grid-row property: a 1-indexed
// start line and an exclusive end line. 0 means unset, a negative end
// encodes "span N".
type GridLine struct {
	Start, End int
}

// Span returns the number of tracks covered, at least 1.
func (l GridLine) Span() int {
	switch {
	case l.End < 0:
		return max(1, -l.End)
	case l.Start > 0 && l.End > l.Start:
		return l.End - l.Start
	}
	return 1
}

// IsAuto is true if no start line is given.
func (l GridLine) IsAuto() bool {
	return l.Start <= 0
}

func (l GridLine) String() string {
	start := "auto"
	if l.Start > 0 {
		start = strconv.Itoa(l.Start)
	}
	switch {
	case l.End < 0:
		if l.Start <= 0 {
			return "span " + strconv.Itoa(-l.End)
		}
		return start + " / span " + strconv.Itoa(-l.End)
	case l.End > 0:
		return start + " / " + strconv.Itoa(l.End)
	}
	return start
}

// ParseGridLine parses "auto", "N", "N / M", "span N", "N / span M" and
// "span N / M".
func ParseGridLine(p Property) (GridLine, error) {
	s := string(p.Normalized())
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return GridLine{}, fmt.Errorf("grid line %q: %w", s, ErrInvalidValue)
	}
	start, startSpan, err := parseLineToken(parts[0])
	if err != nil {
		return GridLine{}, err
	}
	if len(parts) == 1 {
		if startSpan > 0 {
			return GridLine{End: -startSpan}, nil
		}
		return GridLine{Start: start}, nil
	}
	end, endSpan, err := parseLineToken(parts[1])
	if err != nil {
		return GridLine{}, err
	}
	switch {
	case startSpan > 0 && endSpan > 0:
		return GridLine{}, fmt.Errorf("grid line %q spans twice: %w", s, ErrInvalidValue)
	case startSpan > 0:
		if end-startSpan < 1 {
			return GridLine{End: -startSpan}, nil
		}
		return GridLine{Start: end - startSpan, End: end}, nil
	case endSpan > 0:
		return GridLine{Start: start, End: -endSpan}, nil
	case start > 0 && end > 0 && end <= start:
		return GridLine{}, fmt.Errorf("grid line %q ends before it starts: %w", s, ErrInvalidValue)
	}
	return GridLine{Start: start, End: end}, nil
}

// parseLineToken returns either a line number or a span count (> 0).
func parseLineToken(tok string) (line, span int, err error) {
	f := strings.Fields(tok)
	switch {
	case len(f) == 1 && f[0] == "auto":
		return 0, 0, nil
	case len(f) == 1:
		n, err := strconv.Atoi(f[0])
		if err != nil || n < 1 || n > MaxGridTracks+1 {
			return 0, 0, fmt.Errorf("grid line number %q: %w", tok, ErrInvalidValue)
		}
		return n, 0, nil
	case len(f) == 2 && f[0] == "span":
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 1 || n > MaxGridTracks {
			return 0, 0, fmt.Errorf("grid span %q: %w", tok, ErrInvalidValue)
		}
		return 0, n, nil
	}
	return 0, 0, fmt.Errorf("grid line %q: %w", tok, ErrInvalidValue)
}

// GridPlacement is one item's column and row range: 1-indexed, exclusive
// end, 0 = unset, negative end = span N.
type GridPlacement struct {
	ColStart, ColEnd, RowStart, RowEnd int
}

// Placement combines the grid-column and grid-row properties.
func (l Layout) Placement() GridPlacement {
	return GridPlacement{
		ColStart: l.GridColumn.Start, ColEnd: l.GridColumn.End,
		RowStart: l.GridRow.Start, RowEnd: l.GridRow.End,
	}
}

// ColSpan returns the number of columns covered, at least 1.
func (p GridPlacement) ColSpan() int {
	return GridLine{p.ColStart, p.ColEnd}.Span()
}

// RowSpan returns the number of rows covered, at least 1.
func (p GridPlacement) RowSpan() int {
	return GridLine{p.RowStart, p.RowEnd}.Span()
}

// IsExplicit is true if both a column and a row start line are given.
func (p GridPlacement) IsExplicit() bool {
	return p.ColStart > 0 && p.RowStart > 0
}

// Overlaps is true if p and q share at least one cell. Both placements
// must be resolved, i.e. have start lines.
func (p GridPlacement) Overlaps(q GridPlacement) bool {
	return p.ColStart < q.ColStart+q.ColSpan() && q.ColStart < p.ColStart+p.ColSpan() &&
		p.RowStart < q.RowStart+q.RowSpan() && q.RowStart < p.RowStart+p.RowSpan()
}

// AutoFlow is the value of grid-auto-flow.
type AutoFlow struct {
	Column bool // column-major instead of row-major
	Dense  bool // back-fill holes left by earlier items
}

// ParseAutoFlow parses "row", "column", "dense", "row dense" and
// "column dense".
func ParseAutoFlow(p Property) (AutoFlow, error) {
	var flow AutoFlow
	f := strings.Fields(string(p.Normalized()))
	if len(f) == 0 || len(f) > 2 {
		return flow, fmt.Errorf("grid-auto-flow %q: %w", p, ErrInvalidValue)
	}
	axis := false
	for _, w := range f {
		switch {
		case w == "row" && !axis:
			axis = true
		case w == "column" && !axis:
			flow.Column, axis = true, true
		case w == "dense" && !flow.Dense:
			flow.Dense = true
		default:
			return AutoFlow{}, fmt.Errorf("grid-auto-flow %q: %w", p, ErrInvalidValue)
		}
	}
	return flow, nil
}

func (f AutoFlow) String() string {
	s := "row"
	if f.Column {
		s = "column"
	}
	if f.Dense {
		s += " dense"
	}
	return s
}
