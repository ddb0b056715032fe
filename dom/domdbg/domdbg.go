/*
Package domdbg implements helpers to debug a styled widget tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	tp "github.com/xlab/treeprint"
)

// Dump returns an indented outline of the tree starting at root. Every
// node is shown with the symbol of its display mode, if it has been
// styled, and its text content, if any.
func Dump(root *styledtree.StyNode) string {
	return DumpWith(root, nil)
}

// DumpWith is like Dump, but appends the result of annotate (which may be
// nil) to every node.
func DumpWith(root *styledtree.StyNode, annotate func(*styledtree.StyNode) string) string {
	if root == nil {
		return ""
	}
	p := tp.New()
	p.SetValue(label(root, annotate))
	dumpChildren(p, root, annotate)
	return p.String()
}

func dumpChildren(p tp.Tree, n *styledtree.StyNode, annotate func(*styledtree.StyNode) string) {
	for _, ch := range n.ChildNodes() {
		if ch.ChildCount() == 0 {
			p.AddNode(label(ch, annotate))
			continue
		}
		dumpChildren(p.AddBranch(label(ch, annotate)), ch, annotate)
	}
}

func label(n *styledtree.StyNode, annotate func(*styledtree.StyNode) string) string {
	var b strings.Builder
	if st := n.Styles(); st != nil {
		b.WriteString(st.Layout.Display.Symbol())
		b.WriteString(" ")
	}
	b.WriteString(n.String())
	if t := n.Text(); t != "" {
		fmt.Fprintf(&b, " %q", shortText(t, 20))
	}
	if annotate != nil {
		if s := annotate(n); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
}

var defaultGroups = []string{
	style.PGSpacing,
	style.PGLayout,
}

// ToGraphViz outputs a diagram for a styled tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the tree, a Writer, and an optional list of style property groups.
// The diagram will include the declared properties of every group.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//   - Spacing
//   - Layout
func ToGraphViz(root *styledtree.StyNode, w io.Writer, styleGroups []string) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": func(s string) string { return shortText(s, 10) },
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	if root != nil {
		dict := make(map[*styledtree.StyNode]string, 256)
		if err = nodes(root, w, dict, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty renders the tree under root as an SVG image with GraphViz and
// returns the path of the image. Both the dot source and the image are
// written to a temporary directory of t, and removed with it.
//
// Dotty needs the `dot` command. Failures are reported with t.Error, in
// which case the returned path is empty.
func Dotty(root *styledtree.StyNode, t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "styledtree.dot")
	f, err := os.Create(src)
	if err != nil {
		t.Error(err)
		return ""
	}
	err = ToGraphViz(root, f, nil)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		t.Error(err)
		return ""
	}
	svg := strings.TrimSuffix(src, ".dot") + ".svg"
	out, err := exec.Command("dot", "-Tsvg", "-o"+svg, src).CombinedOutput()
	if err != nil {
		t.Errorf("dot: %v: %s", err, out)
		return ""
	}
	t.Logf("styled tree image written to %s", svg)
	return svg
}

type node struct {
	N    *styledtree.StyNode
	Name string
}

type propGroup struct {
	ID         string
	Name       string
	Properties []style.KeyValue
}

func nodes(n *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string,
	gparams *graphParamsType) error {
	//
	if err := domNode(n, w, dict, gparams); err != nil {
		return err
	}
	for _, ch := range n.ChildNodes() {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		e := edge{node{n, dict[n]}, node{ch, dict[ch]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func domNode(n *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string,
	gparams *graphParamsType) error {
	//
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[n] = name
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		return err
	}
	return domStyles(n, name, w, gparams)
}

func domStyles(n *styledtree.StyNode, name string, w io.Writer, gparams *graphParamsType) error {
	st := n.Styles()
	if st == nil {
		return nil
	}
	var prev *propGroup
	for _, g := range gparams.StyleGroups {
		pg := &propGroup{ID: name + "_" + g, Name: g, Properties: st.Properties(g, false)}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		var err error
		if prev == nil {
			err = gparams.PgedgeTmpl.Execute(w, pgedge{name, pg})
		} else {
			err = gparams.PgpgTmpl.Execute(w, []*propGroup{prev, pg})
		}
		if err != nil {
			return err
		}
		prev = pg
	}
	return nil
}

type edge struct {
	N1, N2 node
}

type pgedge struct {
	Name      string
	PropGroup *propGroup
}

func shortText(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		s = string(r[:limit]) + "…"
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.Text }}
{{ .Name }}	[ label={{ printf "%s\n%s" .N.String (shortstring .N.Text) | printf "%q" }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.String }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ .ID }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ .PropGroup.ID }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ (index . 0).ID }} -> {{ (index . 1).ID }} [dir=none weight=1 style="dashed"] ;
`
