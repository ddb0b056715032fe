package termstyle

import (
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	"github.com/npillmayer/cellstyle/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTcell(t *testing.T) {
	red, white, black := style.RGB(255, 0, 0), style.RGB(255, 255, 255), style.RGB(0, 0, 0)
	tests := []struct {
		name   string
		visual style.Visual
		want   tcell.Style
	}{
		{"default", style.Visual{Opacity: 1},
			tcell.StyleDefault.Foreground(tcell.ColorDefault).Background(tcell.ColorDefault)},
		{"bold red", style.Visual{Color: red, Opacity: 1, Bold: true},
			tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Background(tcell.ColorDefault).Bold(true)},
		{"italic underlined", style.Visual{BackgroundColor: black, Opacity: 1, Italic: true, Underline: true},
			tcell.StyleDefault.Foreground(tcell.ColorDefault).Background(tcell.NewRGBColor(0, 0, 0)).
				Italic(true).Underline(true)},
		{"blended", style.Visual{Color: white, BackgroundColor: black, Opacity: 0.5},
			tcell.StyleDefault.Foreground(Color(white.Blend(black, 0.5))).Background(tcell.NewRGBColor(0, 0, 0))},
		{"dimmed", style.Visual{Color: white, Opacity: 0.5},
			tcell.StyleDefault.Dim(true).Foreground(tcell.NewRGBColor(255, 255, 255)).Background(tcell.ColorDefault)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToTcell(tt.visual))
		})
	}
}

func TestBorderStyleAndRunes(t *testing.T) {
	v := style.Visual{Color: style.RGB(1, 2, 3)}
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(1, 2, 3)).Background(tcell.ColorDefault),
		BorderStyle(v))
	v.BorderColor = style.RGB(9, 9, 9)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(9, 9, 9)).Background(tcell.ColorDefault),
		BorderStyle(v))
	_, ok := Runes(style.BorderNone)
	assert.False(t, ok)
	r, ok := Runes(style.BorderDouble)
	assert.True(t, ok)
	assert.Equal(t, '╔', r.TopLeft)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestPaint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.paint")
	defer teardown()
	//
	panel := styledtree.NewNode("panel").SetText("hi")
	label := styledtree.NewNode("label").SetText("ok")
	hidden := styledtree.NewNode("note").SetText("secret")
	root := styledtree.NewNode("app").Add(panel, label, hidden)
	sheet, err := cssom.Parse(`
		app { background-color: #000080 }
		panel { border-style: rounded; width: 10; height: 3 }
		label { text-align: right }
		note { visibility: hidden }
	`)
	require.NoError(t, err)
	require.NoError(t, styledtree.Style(root, sheet, nil))
	screen := newScreen(t, 20, 6)
	Paint(screen, layout.Layout(root, image.Rect(0, 0, 20, 6)))
	//
	assert.Equal(t, '╭', runeAt(screen, 0, 0))
	assert.Equal(t, '─', runeAt(screen, 5, 0))
	assert.Equal(t, '╮', runeAt(screen, 9, 0))
	assert.Equal(t, '│', runeAt(screen, 0, 1))
	assert.Equal(t, '╯', runeAt(screen, 9, 2))
	assert.Equal(t, 'h', runeAt(screen, 1, 1))
	assert.Equal(t, 'i', runeAt(screen, 2, 1))
	assert.Equal(t, 'o', runeAt(screen, 18, 3))
	assert.Equal(t, 'k', runeAt(screen, 19, 3))
	assert.Equal(t, ' ', runeAt(screen, 0, 4))
	navy := tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 128))
	_, _, st, _ := screen.GetContent(15, 1)
	assert.Equal(t, navy, st)
	_, _, st, _ = screen.GetContent(1, 1)
	assert.Equal(t, navy.Foreground(tcell.ColorDefault), st)
}

func TestDrawTextClips(t *testing.T) {
	screen := newScreen(t, 10, 3)
	c := newCanvas(screen)
	c.drawText(image.Rect(1, 0, 4, 1), "日本語\nsecond line", style.TextLeft, tcell.StyleDefault)
	assert.Equal(t, '日', runeAt(screen, 1, 0))
	assert.Equal(t, ' ', runeAt(screen, 3, 0))
	assert.Equal(t, ' ', runeAt(screen, 1, 1))
	c.drawText(image.Rect(0, 2, 10, 3), "abcd", style.TextCenter, tcell.StyleDefault)
	assert.Equal(t, 'a', runeAt(screen, 3, 2))
}

// recorder is a screen which remembers every cell written.
type recorder struct {
	w, h  int
	cells []image.Point
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) SetContent(x, y int, _ rune, _ []rune, _ tcell.Style) {
	r.cells = append(r.cells, image.Pt(x, y))
}

func TestPaintClipsToScreen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.paint")
	defer teardown()
	//
	huge := image.Rect(-style.MaxCells, -style.MaxCells, style.MaxCells, style.MaxCells)
	rec := &recorder{w: 8, h: 4}
	c := newCanvas(rec)
	c.fill(huge, tcell.StyleDefault)
	c.drawBorder(huge, BorderRunes{'-', '|', '+', '+', '+', '+'}, tcell.StyleDefault)
	c.drawText(huge, "x\ny", style.TextRight, tcell.StyleDefault)
	c.drawText(image.Rect(-3, 1, 20, 2), "abcdefghij", style.TextLeft, tcell.StyleDefault)
	assert.Len(t, rec.cells, 8*4+7)
	//
	panel := styledtree.NewNode("panel").SetText("far away")
	root := styledtree.NewNode("app").Add(panel)
	sheet, err := cssom.Parse(`
		app { background-color: #000080 }
		panel { border-style: double; width: 1048576; height: 1048576; margin: -5 }
	`)
	require.NoError(t, err)
	require.NoError(t, styledtree.Style(root, sheet, nil))
	rec = &recorder{w: 20, h: 6}
	Paint(rec, layout.Layout(root, image.Rect(0, 0, 20, 6)))
	screen := image.Rect(0, 0, 20, 6)
	for _, p := range rec.cells {
		require.True(t, p.In(screen), "cell %v is off screen", p)
	}
	assert.LessOrEqual(t, len(rec.cells), 3*20*6)
}
