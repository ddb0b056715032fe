package cssom

import (
	"strings"
	"testing"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainNode(t *testing.T, sel string) selector.Node {
	t.Helper()
	s, err := selector.Parse(sel)
	require.NoError(t, err)
	return selector.ChainNode(s)
}

const appCSS = `
/* header comment */
:root {
    --primary: #ff0000;
    --spacing: 2;
}
.button, button:focus {
    display: flex;
    color: var(--primary);   /* inline */
    padding: var(--spacing) !important;
}
@media (max-width: 80) { .x { color: red; } }
@import "other.css";
#main > label { font-weight: bold }
`

func TestParseStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(appCSS)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"--primary": "#ff0000", "--spacing": "2"}, sheet.Variables)
	require.Len(t, sheet.Rules, 2)
	r := sheet.Rules[0]
	assert.Equal(t, ".button, button:focus", r.Prelude)
	assert.Len(t, r.Selectors, 2)
	require.Len(t, r.Declarations, 3)
	assert.Equal(t, Declaration{Property: "color", Value: "var(--primary)", Offset: r.Declarations[1].Offset},
		r.Declarations[1])
	assert.True(t, r.Declarations[2].Important)
	assert.Equal(t, "var(--spacing)", r.Declarations[2].Value)
	assert.True(t, r.IsImportant("padding"))
	for _, d := range r.Declarations {
		assert.True(t, strings.HasPrefix(appCSS[d.Offset:], d.Property), "offset of %s", d.Property)
	}
	assert.True(t, strings.HasPrefix(appCSS[r.Offset:], ".button"))
	r = sheet.Rules[1]
	assert.Equal(t, 1, r.Index)
	v, ok := r.Property("font-weight")
	assert.True(t, ok)
	assert.Equal(t, style.Property("bold"), v)
}

func TestParseIsFailSoftForDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(`a { color: #111111; bogus; : x; width: ; height: 3 ;; }`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	decls := sheet.Rules[0].Declarations
	require.Len(t, decls, 2)
	assert.Equal(t, "color", decls[0].Property)
	assert.Equal(t, "height", decls[1].Property)
	assert.Equal(t, "3", decls[1].Value)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	for _, tc := range []struct {
		src  string
		code ErrorCode
		pos  int
	}{
		{".a { color: red;", EUnterminated, 3},
		{".a { color: red; } }", EUnexpectedBrace, 19},
		{"/* open", EUnterminated, 0},
		{".a > { }", EInvalidSelector, 5},
		{"}", EUnexpectedBrace, 0},
		{"a { b { } }", EUnterminated, 6},
		{"a; b {}", EInvalidSelector, 1},
		{"@media screen { a { }", EUnterminated, 14},
		{".a { color: 'red }", EUnterminated, 3},
		{"  p:hover:has(x) { }", EInvalidSelector, 10},
	} {
		sheet, err := Parse(tc.src)
		assert.Nil(t, sheet, tc.src)
		var pe *ParseError
		if !assert.ErrorAs(t, err, &pe, tc.src) {
			continue
		}
		assert.Equal(t, tc.code, pe.Code, "code for %q: %s", tc.src, pe.Message)
		assert.Equal(t, tc.pos, pe.Position, "position for %q: %s", tc.src, pe.Message)
		assert.Equal(t, tc.code, Code(err))
	}
}

func TestParseNeverPanics(t *testing.T) {
	for _, src := range []string{
		"", "{", "}{", "@", "@x", "a{;;;}", "a{:}", "a{b:}", "::", "a[", `"`, "/*/",
		"a{color:red}/*", "a{color:var(}", ":root{--x:}", "a{b:c!}", "@media{", "*{}*{}",
		"a{color:rgb(1,2,3}", "\x00{\x00:\x00}", "é{ü:ö}",
	} {
		assert.NotPanics(t, func() { _, _ = Parse(src) }, src)
		assert.NotPanics(t, func() { _ = Check(src) }, src)
	}
}

func TestSpecificityBeatsSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	for _, src := range []string{
		".x { color: #111111 } #y { color: #222222 }",
		"#y { color: #222222 } .x { color: #111111 }",
	} {
		sheet, err := Parse(src)
		require.NoError(t, err)
		st := sheet.Apply("#y.x", style.Default())
		assert.Equal(t, style.FromHex("#222222"), st.Visual.Color, src)
	}
}

func TestSourceOrderTiebreak(t *testing.T) {
	sheet, err := Parse(".a { color: #111111; width: 3 } .a { color: #222222 }")
	require.NoError(t, err)
	st := sheet.Apply(".a", style.Default())
	assert.Equal(t, style.FromHex("#222222"), st.Visual.Color)
	assert.Equal(t, style.Cells(3), st.Sizing.Width)
}

func TestImportantWins(t *testing.T) {
	sheet, err := Parse(`
		#y { color: #111111 }
		.x { color: #222222 !important }
		.a { padding: 1 !important }
		#i { padding-left: 3 }
	`)
	require.NoError(t, err)
	st := sheet.Apply("#y.x", style.Default())
	assert.Equal(t, style.FromHex("#222222"), st.Visual.Color)
	st = sheet.Apply("#i.a", style.Default())
	assert.Equal(t, style.EdgesAll(1), st.Spacing.Padding)
}

func TestMatchingRulesOrder(t *testing.T) {
	sheet, err := Parse("#y {} .x {} .x {} * {} a, #y {} b {}")
	require.NoError(t, err)
	matches := sheet.MatchingRules(chainNode(t, "a#y.x"))
	var order []int
	for _, m := range matches {
		order = append(order, m.Rule.Index)
	}
	assert.Equal(t, []int{3, 1, 2, 0, 4}, order)
	assert.Equal(t, "#y", matches[4].Selector.String(), "most specific selector of a group")
	assert.Empty(t, sheet.MatchingRules(nil))
}

func TestVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(`:root { --c: #112233; } .a { color: var(--c); }`)
	require.NoError(t, err)
	st := sheet.Apply(".a", style.Default())
	assert.Equal(t, style.FromHex("#112233"), st.Visual.Color)
	//
	sheet, err = Parse(`
		.a { color: var(--late); padding: var(--p, 1) var(--q, 2); }
		.b { background-color: var(--nope, var(--late)); width: var(--w); }
		:root { --late: #445566; --p: 3 }
	`)
	require.NoError(t, err)
	st = sheet.Apply(".a", style.Default())
	assert.Equal(t, style.FromHex("#445566"), st.Visual.Color, "variables defined after use resolve")
	assert.Equal(t, style.Edges{Top: 3, Right: 2, Bottom: 3, Left: 2}, st.Spacing.Padding)
	st = sheet.Apply(".b", style.Default())
	assert.Equal(t, style.FromHex("#445566"), st.Visual.BackgroundColor)
	assert.True(t, st.Sizing.Width.IsAuto(), "unresolved variable leaves property untouched")
	assert.False(t, st.IsDeclared("width"))
	//
	assert.Equal(t, "var(--w)", sheet.ResolveVariables("var(--w)"))
	assert.Equal(t, "1 #445566 x", sheet.ResolveVariables("1 var(--late) x"))
	assert.Equal(t, "rgb(1, 2, 3)", sheet.ResolveVariables("var(--none, rgb(1, 2, 3))"))
	assert.Equal(t, "var(--late", sheet.ResolveVariables("var(--late"))
}

func TestVariablesAreSinglePass(t *testing.T) {
	sheet, err := Parse(`:root { --a: var(--b); --b: 1; }`)
	require.NoError(t, err)
	assert.Equal(t, "var(--b)", sheet.ResolveVariables("var(--a)"))
}

func TestApplyDegradesGracefully(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(".a { color: #123456 }")
	require.NoError(t, err)
	base := style.Default()
	_ = base.Set("width", "7")
	assert.Equal(t, base, sheet.Apply(".zzz", base))
	assert.Equal(t, base, sheet.Apply("a >", base))
	assert.Equal(t, base, sheet.Apply("", base))
	st := sheet.Apply(".a", base)
	assert.Equal(t, style.Cells(7), st.Sizing.Width, "base is kept")
}

func TestApplyWithCombinators(t *testing.T) {
	sheet, err := Parse(`
		.dialog .title { font-weight: bold }
		.dialog > .title { text-decoration: underline }
		label + .title { font-style: italic }
	`)
	require.NoError(t, err)
	st := sheet.Apply(".dialog .title", style.Default())
	assert.True(t, st.Visual.Bold)
	assert.True(t, st.Visual.Underline)
	assert.False(t, st.Visual.Italic)
	st = sheet.Apply(".title", style.Default())
	assert.False(t, st.Visual.Bold)
	st = sheet.Apply(".dialog label + .title", style.Default())
	assert.True(t, st.Visual.Bold)
	assert.True(t, st.Visual.Italic)
}

func TestComputeStyleInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(`
		.parent { color: #abcdef; opacity: 0.5; visibility: hidden; width: 20; padding: 2; border-color: #010101 }
		.copy { border-color: inherit; padding: inherit; }
		.reset { color: initial }
	`)
	require.NoError(t, err)
	parent := sheet.ComputeStyle(chainNode(t, ".parent"), nil)
	child := sheet.ComputeStyle(chainNode(t, ".parent > .child"), &parent)
	assert.Equal(t, style.FromHex("#abcdef"), child.Visual.Color)
	assert.Equal(t, 0.5, child.Visual.Opacity)
	assert.False(t, child.Visual.Visible)
	assert.True(t, child.Sizing.Width.IsAuto())
	assert.Equal(t, style.Edges{}, child.Spacing.Padding)
	assert.True(t, child.Visual.BorderColor.IsDefault())
	//
	cp := sheet.ComputeStyle(chainNode(t, ".parent > .copy"), &parent)
	assert.Equal(t, style.FromHex("#010101"), cp.Visual.BorderColor)
	assert.Equal(t, style.EdgesAll(2), cp.Spacing.Padding)
	//
	reset := sheet.ComputeStyle(chainNode(t, ".parent > .reset"), &parent)
	assert.True(t, reset.Visual.Color.IsDefault())
}

func TestDeclaredDefaultOverrides(t *testing.T) {
	sheet, err := Parse(".a { display: flex; z-index: 3 } .a.b { display: block; z-index: 0 }")
	require.NoError(t, err)
	st := sheet.Apply(".a.b", style.Default())
	assert.Equal(t, style.DisplayBlock, st.Layout.Display)
	assert.Equal(t, 0, st.Visual.ZIndex)
}

func TestScenarios(t *testing.T) {
	sheet, err := Parse(`
		.card { display: flex; flex-direction: column; width: 200; padding: 10; }
		.modal { position: absolute; top: 10; left: 20; z-index: 100; }
	`)
	require.NoError(t, err)
	card := sheet.Apply(".card", style.Default())
	assert.Equal(t, style.DisplayFlex, card.Layout.Display)
	assert.Equal(t, style.FlexColumn, card.Layout.FlexDirection)
	assert.Equal(t, style.Cells(200), card.Sizing.Width)
	assert.Equal(t, style.EdgesAll(10), card.Spacing.Padding)
	modal := sheet.Apply(".modal", style.Default())
	assert.Equal(t, style.PositionAbsolute, modal.Layout.Position)
	top, _ := modal.Spacing.Top.Get()
	left, _ := modal.Spacing.Left.Get()
	assert.Equal(t, 10, top)
	assert.Equal(t, 20, left)
	assert.True(t, modal.Spacing.Bottom.IsNothing())
	assert.Equal(t, 100, modal.Visual.ZIndex)
}

func TestUserAgentAndAppendRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	ua := UserAgentStylesheet()
	require.False(t, ua.Empty())
	n := len(ua.Rules)
	author, err := Parse(":root { --w: 9 } button { padding: 2; width: var(--w) }")
	require.NoError(t, err)
	ua.AppendRules(author)
	require.Len(t, ua.Rules, n+1)
	assert.Equal(t, n, ua.Rules[n].Index)
	assert.Equal(t, 0, author.Rules[0].Index, "appending must not modify the source sheet")
	st := ua.Apply("button", style.Default())
	assert.Equal(t, style.EdgesAll(2), st.Spacing.Padding)
	assert.Equal(t, style.BorderSolid, st.Visual.Border)
	assert.Equal(t, style.Cells(9), st.Sizing.Width)
	assert.Equal(t, style.DisplayNone, ua.Apply("[hidden]", style.Default()).Layout.Display)
	assert.Equal(t, 0.5, ua.Apply("button:disabled", style.Default()).Visual.Opacity)
	assert.Equal(t, style.DisplayGrid, ua.Apply("grid", style.Default()).Layout.Display)
	assert.Contains(t, ua.String(), "--w: 9;")
}
