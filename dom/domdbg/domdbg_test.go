package domdbg

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styledTree(t *testing.T) *styledtree.StyNode {
	t.Helper()
	item := styledtree.NewNode("item").AddClass("entry").SetText("first\nsecond")
	root := styledtree.NewNode("app").Add(
		styledtree.NewNode("label").SetID("title").SetText("Hello"),
		styledtree.NewNode("list").Add(item),
	)
	sheet, err := cssom.Parse(`
		list { display: flex; padding: 1 }
		.entry { margin-left: 2 }
	`)
	require.NoError(t, err)
	require.NoError(t, styledtree.Style(root, sheet, nil))
	return root
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.dom")
	defer teardown()
	//
	out := Dump(styledTree(t))
	t.Logf("\n%s", out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "▩ app", lines[0])
	assert.Contains(t, lines[1], `▩ label#title "Hello"`)
	assert.Contains(t, lines[2], "▤ list")
	assert.Contains(t, lines[3], `▩ item.entry "first\\nsecond"`)
	assert.True(t, strings.Index(lines[3], "item") > strings.Index(lines[2], "list"))
	//
	out = DumpWith(styledtree.NewNode("x"), func(n *styledtree.StyNode) string { return "[0 0 1 1]" })
	assert.Equal(t, "x [0 0 1 1]", strings.TrimSpace(out))
	assert.Empty(t, Dump(nil))
}

func TestToGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.dom")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, ToGraphViz(styledTree(t), &buf, nil))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, "node00001 -> node00002")
	assert.Contains(t, dot, "node00003 -> node00004")
	assert.Contains(t, dot, `node00003_Spacing -> node00003_Layout`)
	assert.Contains(t, dot, "<td>flex</td>")
	assert.Contains(t, dot, "<td align=\"right\">padding-top:</td><td>1</td>")
	//
	buf.Reset()
	require.NoError(t, ToGraphViz(styledTree(t), &buf, []string{style.PGVisual}))
	assert.Contains(t, buf.String(), "no styles")
}

func TestDotty(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("GraphViz dot is not installed")
	}
	teardown := gotestingadapter.QuickConfig(t, "cellstyle.dom")
	defer teardown()
	//
	svg := Dotty(styledTree(t), t)
	require.NotEmpty(t, svg)
	img, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(img), "<svg")
	assert.Contains(t, string(img), "padding-top:")
}
