package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/cellstyle/maybe"
)

// Style is the resolved property bag of one widget. Properties are grouped
// into layout, spacing, sizing and visual properties.
//
// Next to the values, a style records which properties have been declared
// explicitly. This lets a declaration override an earlier one even if it
// sets a property back to its default value.
//
// Styles are values. A cascade computes a new style for every pass.
type Style struct {
	Layout   Layout
	Spacing  Spacing
	Sizing   Sizing
	Visual   Visual
	declared propertySet
}

// Layout holds properties concerning the formatting context of a widget.
type Layout struct {
	Display             Display
	Position            Position
	FlexDirection       FlexDirection
	JustifyContent      Justify
	AlignItems          Align
	FlexGrow            int
	FlexShrink          int
	FlexBasis           Size
	RowGap              int
	ColumnGap           int
	GridTemplateColumns []TrackSize
	GridTemplateRows    []TrackSize
	GridAutoColumns     TrackSize
	GridAutoRows        TrackSize
	GridAutoFlow        AutoFlow
	GridColumn          GridLine
	GridRow             GridLine
	Overflow            Overflow
}

// Spacing holds padding, margin and the offsets of positioned widgets.
type Spacing struct {
	Padding Edges
	Margin  Edges
	Top     maybe.Maybe[int]
	Right   maybe.Maybe[int]
	Bottom  maybe.Maybe[int]
	Left    maybe.Maybe[int]
}

// Sizing holds width and height, together with their constraints.
type Sizing struct {
	Width     Size
	Height    Size
	MinWidth  Size
	MinHeight Size
	MaxWidth  Size
	MaxHeight Size
}

// Visual holds properties which do not influence geometry, except for
// the border, which takes up one cell per side if set.
type Visual struct {
	Color           Color
	BackgroundColor Color
	BorderColor     Color
	Border          BorderStyle
	Opacity         float64
	Visible         bool
	ZIndex          int
	Bold            bool
	Italic          bool
	Underline       bool
	TextAlign       TextAlign
}

// Default returns a style with every property set to its initial value.
func Default() Style {
	return Style{
		Layout: Layout{
			FlexShrink:      1,
			GridAutoColumns: AutoTrack(),
			GridAutoRows:    AutoTrack(),
		},
		Visual: Visual{
			Opacity: 1.0,
			Visible: true,
		},
	}
}

// Inherit creates a fresh style for a child of parent. Only color, opacity
// and visibility are inherited, everything else starts from its initial
// value. parent may be nil.
func Inherit(parent *Style) Style {
	s := Default()
	if parent == nil {
		return s
	}
	s.Visual.Color = parent.Visual.Color
	s.Visual.Opacity = parent.Visual.Opacity
	s.Visual.Visible = parent.Visual.Visible
	return s
}

// Set sets a property from its textual value, as in a declaration
// `key: value`. Shorthand properties are split into their longhands.
// The keyword `inherit` takes the initial value, as there is no parent
// style; use SetWithParent for cascading.
func (s *Style) Set(key string, value Property) error {
	return s.SetWithParent(key, value, nil)
}

// SetWithParent is Set with support for the keyword `inherit`, which copies
// the value from parent.
//
// Invalid values leave the style unchanged and return an error wrapping
// ErrInvalidValue or ErrInvalidColor. Unknown properties return an error
// wrapping ErrUnknownProperty.
func (s *Style) SetWithParent(key string, value Property, parent *Style) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = Property(strings.TrimSpace(string(value)))
	if def, ok := lookupProperty(key); ok {
		return s.setLonghand(def, value, parent)
	}
	if _, ok := shorthands[key]; !ok {
		return fmt.Errorf("%q: %w", key, ErrUnknownProperty)
	}
	kvs, err := SplitCompoundProperty(key, value)
	if err != nil {
		return err
	}
	// all or nothing: apply to a scratch copy first
	scratch := *s
	for _, kv := range kvs {
		def, _ := lookupProperty(kv.Key)
		if err := scratch.setLonghand(def, kv.Value, parent); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	*s = scratch
	return nil
}

func (s *Style) setLonghand(def *propertyDef, value Property, parent *Style) error {
	switch {
	case value.IsInherit():
		if parent == nil {
			def.copy(s, &initial)
		} else {
			def.copy(s, parent)
		}
	case value.IsInitial():
		def.copy(s, &initial)
	default:
		if err := def.set(s, value); err != nil {
			return fmt.Errorf("%s: %w", def.name, err)
		}
	}
	s.declared.add(def.bit)
	return nil
}

// Get returns the textual value of a (longhand) property.
func (s *Style) Get(key string) (Property, error) {
	def, ok := lookupProperty(strings.ToLower(key))
	if !ok {
		return NullStyle, fmt.Errorf("%q: %w", key, ErrUnknownProperty)
	}
	return def.format(s), nil
}

// IsDeclared is true if a property has been set explicitly. Shorthands are
// declared if any of their longhands is.
func (s *Style) IsDeclared(key string) bool {
	if def, ok := lookupProperty(key); ok {
		return s.declared.has(def.bit)
	}
	for _, lh := range shorthands[key] {
		if s.IsDeclared(lh) {
			return true
		}
	}
	return false
}

// Overlay copies every declared property of other onto s.
func (s *Style) Overlay(other *Style) {
	for _, def := range registry {
		if other.declared.has(def.bit) {
			def.copy(s, other)
			s.declared.add(def.bit)
		}
	}
}

// Properties returns the properties of a group, in registration order.
// Only declared properties are listed, unless all is set.
func (s *Style) Properties(group string, all bool) []KeyValue {
	var kvs []KeyValue
	for _, def := range registry {
		if def.group != group || (!all && !s.declared.has(def.bit)) {
			continue
		}
		kvs = append(kvs, KeyValue{Key: def.name, Value: def.format(s)})
	}
	return kvs
}

// Declared returns all declared properties, sorted by key.
func (s *Style) Declared() []KeyValue {
	var kvs []KeyValue
	for _, g := range Groups {
		kvs = append(kvs, s.Properties(g, false)...)
	}
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].Key < kvs[j].Key })
	return kvs
}

func (s Style) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, kv := range s.Declared() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(kv.Key)
		b.WriteString(": ")
		b.WriteString(kv.Value.String())
	}
	b.WriteString("}")
	return b.String()
}

// HasBorder is true if a border takes up space.
func (v Visual) HasBorder() bool {
	return v.Border != BorderNone
}

// --- Property registry -----------------------------------------------------

type propertySet uint64

func (ps *propertySet) add(bit uint)     { *ps |= 1 << bit }
func (ps propertySet) has(bit uint) bool { return ps&(1<<bit) != 0 }

// propertyDef binds a property name to a field of Style.
type propertyDef struct {
	name   string
	group  string
	bit    uint
	set    func(s *Style, v Property) error
	copy   func(dst, src *Style)
	format func(s *Style) Property
}

func prop[T any](name, group string, field func(*Style) *T,
	parse func(Property) (T, error), format func(T) string) *propertyDef {
	return &propertyDef{
		name:  name,
		group: group,
		set: func(s *Style, v Property) error {
			x, err := parse(v)
			if err != nil {
				return err
			}
			*field(s) = x
			return nil
		},
		copy:   func(dst, src *Style) { *field(dst) = *field(src) },
		format: func(s *Style) Property { return Property(format(*field(s))) },
	}
}

func str[T fmt.Stringer](x T) string { return x.String() }

func parseOffset(p Property) (maybe.Maybe[int], error) {
	if p.Normalized() == "auto" {
		return maybe.Nothing[int](), nil
	}
	n, err := ParseCells(p)
	if err != nil {
		return maybe.Nothing[int](), err
	}
	return maybe.Just(n), nil
}

func formatOffset(m maybe.Maybe[int]) string {
	if n, ok := m.Get(); ok {
		return strconv.Itoa(n)
	}
	return "auto"
}

func parseNonNegative(p Property) (int, error) {
	n, err := ParseCells(p)
	if err == nil && n < 0 {
		return 0, fmt.Errorf("negative value %q: %w", p, ErrInvalidValue)
	}
	return n, err
}

func parseFlexFactor(p Property) (int, error) {
	n, err := ParseInt(p)
	if err == nil && (n < 0 || n > MaxCells) {
		return 0, fmt.Errorf("flex factor %q out of range: %w", p, ErrInvalidValue)
	}
	return n, err
}

func parseTracks(p Property) ([]TrackSize, error) {
	return ParseGridTemplate(p.String()), nil
}

func parseSingleTrackProperty(p Property) (TrackSize, error) {
	tracks, err := ParseTrackList(p.String())
	if err != nil || len(tracks) != 1 {
		return TrackSize{}, fmt.Errorf("track size %q: %w", p, ErrInvalidValue)
	}
	return tracks[0], nil
}

func flag(on, off string) (func(Property) (bool, error), func(bool) string) {
	parse := func(p Property) (bool, error) {
		switch p.Normalized() {
		case Property(on):
			return true, nil
		case Property(off), "none":
			return false, nil
		}
		if on == "bold" { // numeric font weights
			if n, err := strconv.Atoi(p.Normalized().String()); err == nil {
				return n >= 600, nil
			}
		}
		return false, fmt.Errorf("expected %s or %s, have %q: %w", on, off, p, ErrInvalidValue)
	}
	format := func(b bool) string {
		if b {
			return on
		}
		return off
	}
	return parse, format
}

func parseColor(p Property) (Color, error) { return ParseColor(p) }

func formatOpacity(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func formatVisibility(b bool) string {
	if b {
		return "visible"
	}
	return "hidden"
}

var boldParse, boldFormat = flag("bold", "normal")
var italicParse, italicFormat = flag("italic", "normal")
var underlineParse, underlineFormat = flag("underline", "none")

// registry lists all longhand properties. The order is used for display.
var registry = []*propertyDef{
	prop("display", PGLayout, func(s *Style) *Display { return &s.Layout.Display }, ParseDisplay, str[Display]),
	prop("position", PGLayout, func(s *Style) *Position { return &s.Layout.Position }, ParsePosition, str[Position]),
	prop("flex-direction", PGLayout, func(s *Style) *FlexDirection { return &s.Layout.FlexDirection }, ParseFlexDirection, str[FlexDirection]),
	prop("justify-content", PGLayout, func(s *Style) *Justify { return &s.Layout.JustifyContent }, ParseJustify, str[Justify]),
	prop("align-items", PGLayout, func(s *Style) *Align { return &s.Layout.AlignItems }, ParseAlign, str[Align]),
	prop("flex-grow", PGLayout, func(s *Style) *int { return &s.Layout.FlexGrow }, parseFlexFactor, strconv.Itoa),
	prop("flex-shrink", PGLayout, func(s *Style) *int { return &s.Layout.FlexShrink }, parseFlexFactor, strconv.Itoa),
	prop("flex-basis", PGLayout, func(s *Style) *Size { return &s.Layout.FlexBasis }, ParseSize, str[Size]),
	prop("row-gap", PGLayout, func(s *Style) *int { return &s.Layout.RowGap }, parseNonNegative, strconv.Itoa),
	prop("column-gap", PGLayout, func(s *Style) *int { return &s.Layout.ColumnGap }, parseNonNegative, strconv.Itoa),
	prop("grid-template-columns", PGLayout, func(s *Style) *[]TrackSize { return &s.Layout.GridTemplateColumns }, parseTracks, FormatTrackList),
	prop("grid-template-rows", PGLayout, func(s *Style) *[]TrackSize { return &s.Layout.GridTemplateRows }, parseTracks, FormatTrackList),
	prop("grid-auto-columns", PGLayout, func(s *Style) *TrackSize { return &s.Layout.GridAutoColumns }, parseSingleTrackProperty, str[TrackSize]),
	prop("grid-auto-rows", PGLayout, func(s *Style) *TrackSize { return &s.Layout.GridAutoRows }, parseSingleTrackProperty, str[TrackSize]),
	prop("grid-auto-flow", PGLayout, func(s *Style) *AutoFlow { return &s.Layout.GridAutoFlow }, ParseAutoFlow, str[AutoFlow]),
	prop("grid-column", PGLayout, func(s *Style) *GridLine { return &s.Layout.GridColumn }, ParseGridLine, str[GridLine]),
	prop("grid-row", PGLayout, func(s *Style) *GridLine { return &s.Layout.GridRow }, ParseGridLine, str[GridLine]),
	prop("overflow", PGLayout, func(s *Style) *Overflow { return &s.Layout.Overflow }, ParseOverflow, str[Overflow]),
	//
	prop("padding-top", PGSpacing, func(s *Style) *int { return &s.Spacing.Padding.Top }, parseNonNegative, strconv.Itoa),
	prop("padding-right", PGSpacing, func(s *Style) *int { return &s.Spacing.Padding.Right }, parseNonNegative, strconv.Itoa),
	prop("padding-bottom", PGSpacing, func(s *Style) *int { return &s.Spacing.Padding.Bottom }, parseNonNegative, strconv.Itoa),
	prop("padding-left", PGSpacing, func(s *Style) *int { return &s.Spacing.Padding.Left }, parseNonNegative, strconv.Itoa),
	prop("margin-top", PGSpacing, func(s *Style) *int { return &s.Spacing.Margin.Top }, ParseCells, strconv.Itoa),
	prop("margin-right", PGSpacing, func(s *Style) *int { return &s.Spacing.Margin.Right }, ParseCells, strconv.Itoa),
	prop("margin-bottom", PGSpacing, func(s *Style) *int { return &s.Spacing.Margin.Bottom }, ParseCells, strconv.Itoa),
	prop("margin-left", PGSpacing, func(s *Style) *int { return &s.Spacing.Margin.Left }, ParseCells, strconv.Itoa),
	prop("top", PGSpacing, func(s *Style) *maybe.Maybe[int] { return &s.Spacing.Top }, parseOffset, formatOffset),
	prop("right", PGSpacing, func(s *Style) *maybe.Maybe[int] { return &s.Spacing.Right }, parseOffset, formatOffset),
	prop("bottom", PGSpacing, func(s *Style) *maybe.Maybe[int] { return &s.Spacing.Bottom }, parseOffset, formatOffset),
	prop("left", PGSpacing, func(s *Style) *maybe.Maybe[int] { return &s.Spacing.Left }, parseOffset, formatOffset),
	//
	prop("width", PGSizing, func(s *Style) *Size { return &s.Sizing.Width }, ParseSize, str[Size]),
	prop("height", PGSizing, func(s *Style) *Size { return &s.Sizing.Height }, ParseSize, str[Size]),
	prop("min-width", PGSizing, func(s *Style) *Size { return &s.Sizing.MinWidth }, ParseSize, str[Size]),
	prop("min-height", PGSizing, func(s *Style) *Size { return &s.Sizing.MinHeight }, ParseSize, str[Size]),
	prop("max-width", PGSizing, func(s *Style) *Size { return &s.Sizing.MaxWidth }, ParseSize, str[Size]),
	prop("max-height", PGSizing, func(s *Style) *Size { return &s.Sizing.MaxHeight }, ParseSize, str[Size]),
	//
	prop("color", PGVisual, func(s *Style) *Color { return &s.Visual.Color }, parseColor, str[Color]),
	prop("background-color", PGVisual, func(s *Style) *Color { return &s.Visual.BackgroundColor }, parseColor, str[Color]),
	prop("border-color", PGVisual, func(s *Style) *Color { return &s.Visual.BorderColor }, parseColor, str[Color]),
	prop("border-style", PGVisual, func(s *Style) *BorderStyle { return &s.Visual.Border }, ParseBorderStyle, str[BorderStyle]),
	prop("opacity", PGVisual, func(s *Style) *float64 { return &s.Visual.Opacity }, ParseOpacity, formatOpacity),
	prop("visibility", PGVisual, func(s *Style) *bool { return &s.Visual.Visible }, ParseVisibility, formatVisibility),
	prop("z-index", PGVisual, func(s *Style) *int { return &s.Visual.ZIndex }, ParseInt, strconv.Itoa),
	prop("font-weight", PGVisual, func(s *Style) *bool { return &s.Visual.Bold }, boldParse, boldFormat),
	prop("font-style", PGVisual, func(s *Style) *bool { return &s.Visual.Italic }, italicParse, italicFormat),
	prop("text-decoration", PGVisual, func(s *Style) *bool { return &s.Visual.Underline }, underlineParse, underlineFormat),
	prop("text-align", PGVisual, func(s *Style) *TextAlign { return &s.Visual.TextAlign }, ParseTextAlign, str[TextAlign]),
}

var registryByName map[string]*propertyDef

// initial is the style holding all initial values, used for `initial`.
var initial = Default()

func init() {
	registryByName = make(map[string]*propertyDef, len(registry))
	for i, def := range registry {
		def.bit = uint(i)
		registryByName[def.name] = def
	}
}

func lookupProperty(key string) (*propertyDef, bool) {
	def, ok := registryByName[key]
	return def, ok
}
