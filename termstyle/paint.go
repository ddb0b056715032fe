package termstyle

import (
	"image"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/layout"
)

// Screen is the part of tcell.Screen needed for painting.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Paint draws boxes onto a screen in paint order. Boxes without a
// background color show the background of the nearest ancestor box which
// has one. Text is clipped to the content box, everything is clipped to
// the screen.
func Paint(s Screen, boxes layout.Boxes) {
	c := newCanvas(s)
	for _, b := range boxes.PaintOrder() {
		v := b.Style.Visual
		if v.BackgroundColor.IsDefault() {
			v.BackgroundColor = inheritedBackground(b, boxes)
		}
		if !v.BackgroundColor.IsDefault() {
			c.fill(b.Border, tcell.StyleDefault.Background(Color(v.BackgroundColor)))
		}
		if r, ok := Runes(v.Border); ok {
			c.drawBorder(b.Border, r, BorderStyle(v))
		}
		if text := b.Node.Text(); text != "" {
			c.drawText(b.Content, text, v.TextAlign, ToTcell(v))
		}
	}
}

func inheritedBackground(b *layout.Box, boxes layout.Boxes) style.Color {
	for n := b.Node.ParentNode(); n != nil; n = n.ParentNode() {
		if pb, ok := boxes.Of(n); ok && !pb.Style.Visual.BackgroundColor.IsDefault() {
			return pb.Style.Visual.BackgroundColor
		}
	}
	return style.Color{}
}

// canvas writes to the visible cells of a screen only.
type canvas struct {
	s    Screen
	clip image.Rectangle
}

func newCanvas(s Screen) canvas {
	w, h := s.Size()
	return canvas{s: s, clip: image.Rect(0, 0, w, h)}
}

func (c canvas) set(x, y int, r rune, st tcell.Style) {
	if image.Pt(x, y).In(c.clip) {
		c.s.SetContent(x, y, r, nil, st)
	}
}

func (c canvas) fill(r image.Rectangle, st tcell.Style) {
	r = r.Intersect(c.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.s.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (c canvas) drawBorder(r image.Rectangle, br BorderRunes, st tcell.Style) {
	if r.Dx() < 2 || r.Dy() < 2 {
		tracer().Debugf("box %v too small for a border", r)
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	for x := max(x0+1, c.clip.Min.X); x < min(x1, c.clip.Max.X); x++ {
		c.set(x, y0, br.Horizontal, st)
		c.set(x, y1, br.Horizontal, st)
	}
	for y := max(y0+1, c.clip.Min.Y); y < min(y1, c.clip.Max.Y); y++ {
		c.set(x0, y, br.Vertical, st)
		c.set(x1, y, br.Vertical, st)
	}
	c.set(x0, y0, br.TopLeft, st)
	c.set(x1, y0, br.TopRight, st)
	c.set(x0, y1, br.BottomLeft, st)
	c.set(x1, y1, br.BottomRight, st)
}

// drawText writes lines of text into r. Wide characters take two cells
// and are not split at the right edge.
func (c canvas) drawText(r image.Rectangle, text string, align style.TextAlign, st tcell.Style) {
	for i, line := range strings.Split(text, "\n") {
		y := r.Min.Y + i
		if y >= r.Max.Y || y >= c.clip.Max.Y {
			return
		}
		if y < c.clip.Min.Y {
			continue
		}
		line = runewidth.Truncate(line, r.Dx(), "")
		x := r.Min.X
		switch free := r.Dx() - runewidth.StringWidth(line); align {
		case style.TextCenter:
			x += free / 2
		case style.TextRight:
			x += free
		}
		for _, ch := range line {
			if x >= c.clip.Max.X {
				break
			}
			c.set(x, y, ch, st)
			x += runewidth.RuneWidth(ch)
		}
	}
}
