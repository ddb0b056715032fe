package cssom

import (
	"fmt"
	"testing"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const brokenCSS = `.a {
  colr: red;
  width: abc;
  color: #12;
  grid-template-columns: repeat(x, 1fr);
  background-color: var(--undefined);
  bogus
}
@media print { }
.b { --local: 1 }
`

func TestCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	diags := Check(brokenCSS)
	type brief struct {
		code     ErrorCode
		sev      Severity
		line     int
		col      int
		suggests string
	}
	var have []brief
	for _, d := range diags {
		t.Logf("%s", d)
		have = append(have, brief{d.Code, d.Severity, d.Location.Line, d.Location.Column, d.Suggestion})
	}
	assert.Equal(t, []brief{
		{EUnknownProperty, Warning, 2, 3, "color"},
		{EInvalidValue, Warning, 3, 3, ""},
		{EInvalidColor, Warning, 4, 3, ""},
		{EInvalidGrid, Warning, 5, 3, ""},
		{EUndefinedVariable, Warning, 6, 3, ""},
		{EInvalidColor, Warning, 6, 3, ""},
		{EMalformedDecl, Warning, 7, 3, ""},
		{EUnsupportedAtRule, Warning, 9, 1, ""},
		{EUnknownProperty, Hint, 10, 6, ""},
	}, have)
	assert.False(t, HasErrors(diags))
	assert.Empty(t, Check(".ok { color: red; padding: 1 2 }"))
}

func TestCheckGridPropertyNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	diags := Check(".g { grid-rows: 1fr; grid-columns: 3 fr }")
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, EUnknownProperty, d.Code, "%s", d)
	}
	assert.False(t, isGridTemplate("grid-rows"))
	assert.True(t, isGridTemplate("grid-template-rows"))
	diags = Check(".g { grid-template-rows: 3 fr }")
	require.Len(t, diags, 1)
	assert.Equal(t, EInvalidGrid, diags[0].Code)
}

func TestCheckSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	diags := Check("a { x }\n.b {\n  color: red;\n")
	require.Len(t, diags, 2)
	assert.Equal(t, EMalformedDecl, diags[0].Code)
	assert.Equal(t, EUnterminated, diags[1].Code)
	assert.Equal(t, Error, diags[1].Severity)
	assert.Equal(t, SourceLocation{Offset: 11, Line: 2, Column: 4}, diags[1].Location)
	assert.True(t, HasErrors(diags))
	//
	diags = Check("a > { }")
	require.Len(t, diags, 1)
	assert.Equal(t, "E002", diags[0].Code.String())
	assert.Equal(t, "invalid selector", diags[0].Code.Text())
}

func TestSuggestProperty(t *testing.T) {
	for misspelled, want := range map[string]string{
		"colr":             "color",
		"widht":            "width",
		"backgroud-color":  "background-color",
		"Padding-Lef":      "padding-left",
		"z-indx":           "z-index",
		"justify-contents": "justify-content",
		"qqqqqqqq":         "",
	} {
		assert.Equal(t, want, SuggestProperty(misspelled), misspelled)
	}
}

func TestLocate(t *testing.T) {
	src := "ab\nçd\n\nx"
	assert.Equal(t, SourceLocation{Offset: 0, Line: 1, Column: 1}, Locate(src, 0))
	assert.Equal(t, SourceLocation{Offset: 6, Line: 2, Column: 3}, Locate(src, 6))
	assert.Equal(t, SourceLocation{Offset: 8, Line: 4, Column: 1}, Locate(src, 8))
	assert.Equal(t, Locate(src, len(src)), Locate(src, 1000))
	assert.Equal(t, "4:1", Locate(src, 8).String())
}

// A parsed stylesheet is read-only and may be shared by concurrent layout
// passes.
func TestConcurrentReaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.cssom")
	defer teardown()
	//
	sheet, err := Parse(appCSS + `
		.item:nth-child(odd) { background-color: #202020 }
		.item:nth-child(even) { background-color: #303030 }
	`)
	require.NoError(t, err)
	want := sheet.Apply(".button", style.Default())
	item := chainNode(t, "list > .item + .item")
	var g errgroup.Group
	results := make([]style.Style, 32)
	for i := range results {
		i := i
		g.Go(func() error {
			st := sheet.Apply(".button", style.Default())
			if st.Visual.Color != want.Visual.Color || st.Spacing.Padding != want.Spacing.Padding {
				return fmt.Errorf("worker %d: styles differ", i)
			}
			results[i] = sheet.ComputeStyle(item, &st)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, st := range results {
		assert.Equal(t, style.FromHex("#303030"), st.Visual.BackgroundColor)
		assert.Equal(t, want.Visual.Color, st.Visual.Color)
	}
}
