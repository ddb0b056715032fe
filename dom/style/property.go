package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'cellstyle.style'
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.style")
}

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return strings.EqualFold(string(p), "initial")
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return strings.EqualFold(string(p), "inherit")
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return strings.TrimSpace(string(p)) == ""
}

// Normalized returns p trimmed and converted to lower case.
func (p Property) Normalized() Property {
	return Property(strings.ToLower(strings.TrimSpace(string(p))))
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// Errors returned when applying property values to a style.
var (
	ErrUnknownProperty = errors.New("unknown style property")
	ErrInvalidValue    = errors.New("invalid property value")
	ErrInvalidColor    = errors.New("invalid color")
)

// --- Property Groups --------------------------------------------------

// Symbolic names for string literals, denoting property groups.
// Every property belongs to exactly one of the four groups of a Style.
const (
	PGLayout  = "Layout"
	PGSpacing = "Spacing"
	PGSizing  = "Sizing"
	PGVisual  = "Visual"
)

// Groups lists the property groups in display order.
var Groups = []string{PGLayout, PGSpacing, PGSizing, PGVisual}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//    GroupNameFromPropertyKey("margin-top") => "Spacing"
//
// Unknown style property keys will return an empty group name. Shorthand
// properties report the group of their longhands.
func GroupNameFromPropertyKey(key string) string {
	if def, ok := lookupProperty(key); ok {
		return def.group
	}
	if sh, ok := shorthands[key]; ok {
		return GroupNameFromPropertyKey(sh[0])
	}
	return ""
}

// IsInheritable returns wether the standard behaviour for a propery is to be
// inherited or not. Terminal widgets only inherit their foreground color,
// opacity and visibility from their parent.
func IsInheritable(key string) bool {
	switch key {
	case "color", "opacity", "visibility":
		return true
	}
	return false
}

// IsKnownProperty returns true if key is a longhand or shorthand property
// understood by Style.Set.
func IsKnownProperty(key string) bool {
	if _, ok := lookupProperty(key); ok {
		return true
	}
	_, ok := shorthands[key]
	return ok
}

// KnownProperties returns the names of all longhand and shorthand properties.
func KnownProperties() []string {
	names := make([]string, 0, len(registry)+len(shorthands))
	for _, def := range registry {
		names = append(names, def.name)
	}
	for sh := range shorthands {
		names = append(names, sh)
	}
	return names
}

// shorthands lists compound properties and the longhands they distribute to.
// For 4-valued shorthands the longhands are in top, right, bottom, left order.
var shorthands = map[string][]string{
	"padding":      {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"margin":       {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"gap":          {"row-gap", "column-gap"},
	"border":       {"border-style", "border-color"},
	"background":   {"background-color"},
	"inset":        {"top", "right", "bottom", "left"},
	"flex":         {"flex-grow", "flex-shrink", "flex-basis"},
	"grid-gap":     {"row-gap", "column-gap"},
	"text-style":   {"font-weight", "font-style", "text-decoration"},
	"place-items":  {"align-items"},
	"overflow-x":   {"overflow"},
	"overflow-y":   {"overflow"},
	"grid-columns": {"grid-template-columns"},
	"grid-rows":    {"grid-template-rows"},
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left  " => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	longhands, ok := shorthands[key]
	if !ok {
		return nil, fmt.Errorf("not recognized as compound property: %s: %w", key, ErrUnknownProperty)
	}
	fields := strings.Fields(value.String())
	if value.IsInherit() || value.IsInitial() || len(longhands) == 1 {
		return spreadAll(longhands, value), nil
	}
	switch key {
	case "padding", "margin", "inset":
		return feazeCompound4(longhands, fields)
	case "gap", "grid-gap":
		if len(fields) == 1 {
			return spreadAll(longhands, value), nil
		} else if len(fields) == 2 {
			return []KeyValue{{longhands[0], Property(fields[0])}, {longhands[1], Property(fields[1])}}, nil
		}
	case "border":
		return splitBorder(fields)
	case "flex":
		return splitFlex(fields)
	case "text-style":
		return splitTextStyle(fields)
	}
	return nil, fmt.Errorf("cannot split %s: %q: %w", key, value, ErrInvalidValue)
}

func spreadAll(longhands []string, value Property) []KeyValue {
	r := make([]KeyValue, len(longhands))
	for i, lh := range longhands {
		r[i] = KeyValue{lh, value}
	}
	return r
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(dirs []string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s: %w", dirs[0], ErrInvalidValue)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{dirs[0], Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{dirs[1], Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{dirs[2], Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{dirs[3], Property(fields[3])}
			} else {
				r[3] = KeyValue{dirs[3], Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{dirs[2], Property(fields[0])}
			r[3] = KeyValue{dirs[3], Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{dirs[1], Property(fields[0])}
		r[2] = KeyValue{dirs[2], Property(fields[0])}
		r[3] = KeyValue{dirs[3], Property(fields[0])}
	}
	return r, nil
}

// `border: rounded #ff0000` – the style keyword may appear at any position,
// everything else is taken as the color.
func splitBorder(fields []string) ([]KeyValue, error) {
	var r []KeyValue
	var rest []string
	for _, f := range fields {
		if _, err := ParseBorderStyle(Property(f)); err == nil && r == nil {
			r = append(r, KeyValue{"border-style", Property(f)})
			continue
		}
		rest = append(rest, f)
	}
	if len(rest) > 0 {
		r = append(r, KeyValue{"border-color", Property(strings.Join(rest, " "))})
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("empty border shorthand: %w", ErrInvalidValue)
	}
	return r, nil
}

// `flex: 1` is shorthand for `flex: 1 1 0`.
func splitFlex(fields []string) ([]KeyValue, error) {
	if len(fields) == 1 && strings.EqualFold(fields[0], "none") {
		return []KeyValue{{"flex-grow", "0"}, {"flex-shrink", "0"}, {"flex-basis", "auto"}}, nil
	}
	if len(fields) == 0 || len(fields) > 3 {
		return nil, fmt.Errorf("expecting 1-3 values for flex: %w", ErrInvalidValue)
	}
	r := []KeyValue{{"flex-grow", Property(fields[0])}, {"flex-shrink", "1"}, {"flex-basis", "0"}}
	if len(fields) >= 2 {
		r[1].Value = Property(fields[1])
	}
	if len(fields) == 3 {
		r[2].Value = Property(fields[2])
	}
	return r, nil
}

// `text-style: bold underline`
func splitTextStyle(fields []string) ([]KeyValue, error) {
	r := []KeyValue{{"font-weight", "normal"}, {"font-style", "normal"}, {"text-decoration", "none"}}
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "bold":
			r[0].Value = "bold"
		case "italic":
			r[1].Value = "italic"
		case "underline":
			r[2].Value = "underline"
		case "none", "normal":
		default:
			return nil, fmt.Errorf("unknown text style %q: %w", f, ErrInvalidValue)
		}
	}
	return r, nil
}
