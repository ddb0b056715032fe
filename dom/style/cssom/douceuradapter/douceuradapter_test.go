package douceuradapter

import (
	"testing"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetCSS = `
/* widgets */
.button, .link {
    display: flex;
    padding: 1 2;
}
@media print { .button { display: none; } }
#ok.button { color: #112233 !important; }
label > .button { Font-Weight: bold; }
`

func TestParseParity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	d, err := Parse(sheetCSS)
	require.NoError(t, err)
	c, err := cssom.Parse(sheetCSS)
	require.NoError(t, err)
	require.Len(t, d.Rules, len(c.Rules))
	for i := range c.Rules {
		assert.Equal(t, c.Rules[i].Prelude, d.Rules[i].Prelude)
		assert.Equal(t, i, d.Rules[i].Index)
		assert.Equal(t, -1, d.Rules[i].Offset)
		require.Len(t, d.Rules[i].Declarations, len(c.Rules[i].Declarations))
		for j, decl := range c.Rules[i].Declarations {
			dd := d.Rules[i].Declarations[j]
			assert.Equal(t, decl.Property, dd.Property)
			assert.Equal(t, decl.Value, dd.Value)
			assert.Equal(t, decl.Important, dd.Important)
		}
	}
	for _, sel := range []string{".button", "#ok.button", "label > .button"} {
		assert.Equal(t, c.Apply(sel, style.Default()), d.Apply(sel, style.Default()), sel)
	}
	st := d.Apply("label > #ok.button", style.Default())
	assert.True(t, st.Visual.Bold)
	assert.Equal(t, style.FromHex("#112233"), st.Visual.Color)
	assert.Equal(t, style.Edges{Top: 1, Right: 2, Bottom: 1, Left: 2}, st.Spacing.Padding)
}

func TestWrapRootVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	c, err := parser.Parse(`:root { --fg: #445566; } .a { color: var(--fg); }`)
	require.NoError(t, err)
	sheet, err := Wrap(c)
	require.NoError(t, err)
	assert.Equal(t, "#445566", sheet.Variables["--fg"])
	require.Len(t, sheet.Rules, 1)
	st := sheet.Apply(".a", style.Default())
	assert.Equal(t, style.FromHex("#445566"), st.Visual.Color)
}

func TestWrapRejectsUnknownSelectors(t *testing.T) {
	_, err := Parse(`p::first-line { color: red }`)
	var pe *cssom.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, cssom.EInvalidSelector, pe.Code)
	assert.Equal(t, -1, pe.Position)
}
