package style

import (
	"fmt"
	"strings"
)

// Display is a type for CSS property "display". Terminal widgets know
// block, flex and grid containers only.
type Display uint8

// Display modes. Block is the default.
const (
	DisplayBlock Display = iota
	DisplayFlex
	DisplayGrid
	DisplayNone
)

var displayNames = map[Display]string{
	DisplayBlock: "block",
	DisplayFlex:  "flex",
	DisplayGrid:  "grid",
	DisplayNone:  "none",
}

var displayKeywords = map[string]Display{
	"block":        DisplayBlock,
	"inline":       DisplayBlock,
	"inline-block": DisplayBlock,
	"flow-root":    DisplayBlock,
	"flex":         DisplayFlex,
	"inline-flex":  DisplayFlex,
	"grid":         DisplayGrid,
	"inline-grid":  DisplayGrid,
	"none":         DisplayNone,
}

// ParseDisplay parses an input string for a display property value.
func ParseDisplay(p Property) (Display, error) {
	return parseKeyword(p, displayKeywords, "display")
}

func (d Display) String() string {
	return displayNames[d]
}

// Symbol returns a Unicode symbol for a mode.
func (d Display) Symbol() string {
	switch d {
	case DisplayFlex:
		return "▤"
	case DisplayGrid:
		return "◰"
	case DisplayNone:
		return "□"
	}
	return "▩"
}

// --- Position --------------------------------------------------------------

// Position is an enum type for the CSS position property.
type Position uint8

// Enum values for type Position. Relative is the default, static is
// treated as relative and fixed as absolute.
const (
	PositionRelative Position = iota
	PositionAbsolute
)

var positionNames = map[Position]string{
	PositionRelative: "relative",
	PositionAbsolute: "absolute",
}

var positionKeywords = map[string]Position{
	"static":   PositionRelative,
	"relative": PositionRelative,
	"sticky":   PositionRelative,
	"absolute": PositionAbsolute,
	"fixed":    PositionAbsolute,
}

// ParsePosition returns a position from a property string.
func ParsePosition(p Property) (Position, error) {
	return parseKeyword(p, positionKeywords, "position")
}

func (pos Position) String() string {
	return positionNames[pos]
}

// PositionPatterns holds one value per position kind, for pattern matching.
type PositionPatterns[T any] struct {
	Relative T
	Absolute T
}

// PositionPattern starts a pattern match on a position.
//
//	inFlow := style.PositionPattern[bool](pos).OneOf(style.PositionPatterns[bool]{
//	    Relative: true,
//	    Absolute: false,
//	})
func PositionPattern[T any](p Position) *PMatchExpr[T] {
	return &PMatchExpr[T]{pos: p}
}

// PMatchExpr is part of pattern matching for Position types and intended to be instantiated
// using `PositionPattern()` only.
type PMatchExpr[T any] struct {
	pos Position
}

// OneOf selects the pattern value for the position.
func (m *PMatchExpr[T]) OneOf(patterns PositionPatterns[T]) T {
	if m.pos == PositionAbsolute {
		return patterns.Absolute
	}
	return patterns.Relative
}

// --- Flex and alignment ----------------------------------------------------

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

// Flex directions. Row is the default.
const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

var flexDirectionKeywords = map[string]FlexDirection{
	"row":            FlexRow,
	"column":         FlexColumn,
	"row-reverse":    FlexRowReverse,
	"column-reverse": FlexColumnReverse,
}

// ParseFlexDirection parses property "flex-direction".
func ParseFlexDirection(p Property) (FlexDirection, error) {
	return parseKeyword(p, flexDirectionKeywords, "flex-direction")
}

// IsColumn is true if the main axis is vertical.
func (fd FlexDirection) IsColumn() bool {
	return fd == FlexColumn || fd == FlexColumnReverse
}

// IsReverse is true for reversed main axis directions.
func (fd FlexDirection) IsReverse() bool {
	return fd == FlexRowReverse || fd == FlexColumnReverse
}

func (fd FlexDirection) String() string {
	return keywordName(flexDirectionKeywords, fd)
}

// Justify distributes free space along the main axis.
type Justify uint8

// Values for "justify-content". Start is the default.
const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

var justifyKeywords = map[string]Justify{
	"start":         JustifyStart,
	"end":           JustifyEnd,
	"center":        JustifyCenter,
	"space-between": JustifySpaceBetween,
	"space-around":  JustifySpaceAround,
	"space-evenly":  JustifySpaceEvenly,
}

// ParseJustify parses property "justify-content". The flex- prefixed
// keywords are accepted as well.
func ParseJustify(p Property) (Justify, error) {
	return parseKeyword(Property(strings.TrimPrefix(string(p.Normalized()), "flex-")),
		justifyKeywords, "justify-content")
}

func (j Justify) String() string {
	return keywordName(justifyKeywords, j)
}

// Align positions items on the cross axis.
type Align uint8

// Values for "align-items". Stretch is the default.
const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
)

var alignKeywords = map[string]Align{
	"stretch": AlignStretch,
	"start":   AlignStart,
	"end":     AlignEnd,
	"center":  AlignCenter,
}

// ParseAlign parses property "align-items".
func ParseAlign(p Property) (Align, error) {
	return parseKeyword(Property(strings.TrimPrefix(string(p.Normalized()), "flex-")),
		alignKeywords, "align-items")
}

func (a Align) String() string {
	return keywordName(alignKeywords, a)
}

// --- Visual keywords -------------------------------------------------------

// BorderStyle selects the box-drawing characters of a border. Any style
// other than BorderNone occupies one cell on each side.
type BorderStyle uint8

// Border styles. None is the default.
const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderRounded
	BorderDouble
	BorderHeavy
	BorderDashed
	BorderASCII
)

var borderKeywords = map[string]BorderStyle{
	"none":    BorderNone,
	"hidden":  BorderNone,
	"solid":   BorderSolid,
	"rounded": BorderRounded,
	"double":  BorderDouble,
	"heavy":   BorderHeavy,
	"thick":   BorderHeavy,
	"dashed":  BorderDashed,
	"ascii":   BorderASCII,
}

// ParseBorderStyle parses property "border-style".
func ParseBorderStyle(p Property) (BorderStyle, error) {
	return parseKeyword(p, borderKeywords, "border-style")
}

// Width is the number of cells a border occupies per side.
func (b BorderStyle) Width() int {
	if b == BorderNone {
		return 0
	}
	return 1
}

func (b BorderStyle) String() string {
	return keywordName(borderKeywords, b)
}

// Overflow tells what to do with content exceeding a box.
type Overflow uint8

// Overflow modes. Visible is the default.
const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

var overflowKeywords = map[string]Overflow{
	"visible": OverflowVisible,
	"hidden":  OverflowHidden,
	"clip":    OverflowHidden,
	"scroll":  OverflowScroll,
	"auto":    OverflowAuto,
}

// ParseOverflow parses property "overflow".
func ParseOverflow(p Property) (Overflow, error) {
	return parseKeyword(p, overflowKeywords, "overflow")
}

func (o Overflow) String() string {
	return [...]string{"visible", "hidden", "scroll", "auto"}[o&3]
}

// TextAlign is the horizontal alignment of text within a box.
type TextAlign uint8

// Text alignments. Left is the default.
const (
	TextLeft TextAlign = iota
	TextCenter
	TextRight
)

var textAlignKeywords = map[string]TextAlign{
	"left":   TextLeft,
	"start":  TextLeft,
	"center": TextCenter,
	"right":  TextRight,
	"end":    TextRight,
}

// ParseTextAlign parses property "text-align".
func ParseTextAlign(p Property) (TextAlign, error) {
	return parseKeyword(p, textAlignKeywords, "text-align")
}

func (t TextAlign) String() string {
	switch t {
	case TextCenter:
		return "center"
	case TextRight:
		return "right"
	}
	return "left"
}

// ParseVisibility maps "visible" to true and "hidden"/"collapse" to false.
func ParseVisibility(p Property) (bool, error) {
	switch p.Normalized() {
	case "visible":
		return true, nil
	case "hidden", "collapse":
		return false, nil
	}
	return false, fmt.Errorf("unknown visibility %q: %w", p, ErrInvalidValue)
}

// --- Helpers ---------------------------------------------------------------

func parseKeyword[T comparable](p Property, keywords map[string]T, what string) (T, error) {
	if v, ok := keywords[string(p.Normalized())]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q: %w", what, p, ErrInvalidValue)
}

// keywordName returns the shortest keyword mapping to v, preferring the
// lexically smaller one for equal length.
func keywordName[T comparable](keywords map[string]T, v T) string {
	name := ""
	for k, x := range keywords {
		if x != v {
			continue
		}
		if name == "" || len(k) < len(name) || (len(k) == len(name) && k < name) {
			name = k
		}
	}
	return name
}
