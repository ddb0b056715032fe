/*
Package termstyle connects computed styles and laid out boxes to a tcell
screen.

ToTcell converts the visual properties of a style into a tcell.Style.
Paint draws the boxes of a layout pass onto a screen, in paint order:
background, border and text of every visible box.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package termstyle

import (
	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cellstyle.paint'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.paint")
}

// Color converts a color. The default color maps to tcell.ColorDefault.
func Color(c style.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// ToTcell converts the visual properties of a style into a tcell.Style for
// text. An opacity below 1 blends the foreground into the background if
// both colors are known. Otherwise the text is dimmed.
func ToTcell(v style.Visual) tcell.Style {
	fg := v.Color
	st := tcell.StyleDefault
	if v.Opacity < 1 {
		if !fg.IsDefault() && !v.BackgroundColor.IsDefault() {
			fg = fg.Blend(v.BackgroundColor, v.Opacity)
		} else {
			st = st.Dim(true)
		}
	}
	st = st.Foreground(Color(fg)).Background(Color(v.BackgroundColor))
	if v.Bold {
		st = st.Bold(true)
	}
	if v.Italic {
		st = st.Italic(true)
	}
	if v.Underline {
		st = st.Underline(true)
	}
	return st
}

// BorderStyle returns the tcell.Style for drawing a border: the border
// color, falling back to the text color, on the background color.
func BorderStyle(v style.Visual) tcell.Style {
	fg := v.BorderColor
	if fg.IsDefault() {
		fg = v.Color
	}
	return tcell.StyleDefault.Foreground(Color(fg)).Background(Color(v.BackgroundColor))
}

// BorderRunes holds the characters of a border.
type BorderRunes struct {
	Horizontal, Vertical                       rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

var borderRunes = map[style.BorderStyle]BorderRunes{
	style.BorderSolid:   {'─', '│', '┌', '┐', '└', '┘'},
	style.BorderRounded: {'─', '│', '╭', '╮', '╰', '╯'},
	style.BorderDouble:  {'═', '║', '╔', '╗', '╚', '╝'},
	style.BorderHeavy:   {'━', '┃', '┏', '┓', '┗', '┛'},
	style.BorderDashed:  {'┄', '┆', '┌', '┐', '└', '┘'},
	style.BorderASCII:   {'-', '|', '+', '+', '+', '+'},
}

// Runes returns the characters for a border style. BorderNone has none.
func Runes(b style.BorderStyle) (BorderRunes, bool) {
	r, ok := borderRunes[b]
	return r, ok
}
