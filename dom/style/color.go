package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit terminal color. The zero value is the terminal's default
// color, i.e. no color has been requested.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB creates a valid color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// FromHex creates a color from "#rgb" or "#rrggbb". Invalid input
// results in the default color.
func FromHex(hex string) Color {
	c, err := parseHex(hex)
	if err != nil {
		return Color{}
	}
	return c
}

// IsDefault is true for the terminal's default color.
func (c Color) IsDefault() bool {
	return !c.Valid
}

// Hex returns "#rrggbb" or "default".
func (c Color) Hex() string {
	if !c.Valid {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Colorful converts c into a go-colorful color for blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Blend mixes c with background bg, where alpha is the opacity of c.
// Default colors are not blended.
func (c Color) Blend(bg Color, alpha float64) Color {
	if !c.Valid || !bg.Valid || alpha >= 1.0 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	r, g, b := bg.Colorful().BlendRgb(c.Colorful(), alpha).Clamped().RGB255()
	return RGB(r, g, b)
}

// ParseColor interprets a color property. Accepted are "#rgb", "#rrggbb",
// "rgb(r, g, b)" and named colors (case-insensitive). "default",
// "transparent" and "none" denote the terminal's default color.
func ParseColor(p Property) (Color, error) {
	s := string(p.Normalized())
	switch {
	case s == "":
		return Color{}, fmt.Errorf("empty color: %w", ErrInvalidColor)
	case s == "default" || s == "transparent" || s == "none" || s == "reset":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[4 : len(s)-1])
	}
	if c, ok := tcell.ColorNames[s]; ok {
		r, g, b := c.RGB()
		if r < 0 {
			return Color{}, fmt.Errorf("color %q has no RGB value: %w", s, ErrInvalidColor)
		}
		return RGB(uint8(r), uint8(g), uint8(b)), nil
	}
	return Color{}, fmt.Errorf("unknown color %q: %w", s, ErrInvalidColor)
}

func parseHex(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("malformed hex color %q: %w", s, ErrInvalidColor)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("malformed hex color %q: %w", s, ErrInvalidColor)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// rgb(255, 0, 0) or rgb(100%, 0%, 0%)
func parseRGBFunc(args string) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("rgb() expects 3 arguments, have %d: %w", len(parts), ErrInvalidColor)
	}
	var comp [3]uint8
	for i, part := range parts {
		part = strings.TrimSpace(part)
		pct := strings.HasSuffix(part, "%")
		n, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return Color{}, fmt.Errorf("rgb() argument %q: %w", part, ErrInvalidColor)
		}
		if pct {
			n = n * 255.0 / 100.0
		}
		switch {
		case n < 0:
			n = 0
		case n > 255:
			n = 255
		}
		comp[i] = uint8(n + 0.5)
	}
	return RGB(comp[0], comp[1], comp[2]), nil
}
