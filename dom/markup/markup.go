/*
Package markup builds styled widget trees from HTML-like markup.

Markup is parsed with the HTML5 parser of golang.org/x/net/html, so
element names are case-insensitive and unknown elements are accepted as
they are. Every element inside <body> becomes a styledtree.StyNode:

	<app>
	  <style> row { gap: 1 } </style>
	  <row id="toolbar" data-state="focus">
	    <button class="primary">OK</button>
	  </row>
	</app>

Attributes `id` and `class` map to the node's id and classes. Attribute
`data-state` holds a space separated list of pseudo-states, and boolean
attributes `disabled` and `checked` set the state of the same name. Text
content is trimmed line by line and set as the node's text.

Contents of <style> elements are collected into the document's
stylesheet, in document order. <style>, <script> and <head> elements are
not part of the widget tree.

As the HTML5 parser is used, self-closing tags of non-void elements are
not honoured and elements with special parsing rules (table, p, input)
behave as in HTML. Widget markup should use explicit end tags.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'cellstyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.dom")
}

// Document is a parsed markup document.
type Document struct {
	Root  *styledtree.StyNode // widget tree
	Sheet *cssom.Stylesheet   // rules of all <style> elements
	html  *html.Node
	nodes map[*html.Node]*styledtree.StyNode
}

// SheetParser parses the contents of a <style> element.
type SheetParser func(src string) (*cssom.Stylesheet, error)

// Parse reads markup from r and builds a widget tree. Style elements are
// parsed with cssom.Parse.
func Parse(r io.Reader) (*Document, error) {
	return ParseWith(r, cssom.Parse)
}

// ParseWith is like Parse, but parses style elements with parseSheet.
//
// If <body> contains exactly one element, this element is the root of the
// widget tree. Otherwise the body element itself becomes the root.
func ParseWith(r io.Reader, parseSheet SheetParser) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse markup: %w", err)
	}
	doc := &Document{
		Sheet: cssom.NewStylesheet(),
		html:  h,
		nodes: make(map[*html.Node]*styledtree.StyNode),
	}
	if err := doc.collectStyles(h, parseSheet); err != nil {
		return nil, err
	}
	body := findElement(h, "body")
	if body == nil {
		return doc, nil
	}
	root := body
	if elems := elementChildren(body); len(elems) == 1 {
		root = elems[0]
	}
	doc.Root = doc.build(root)
	return doc, nil
}

// Query returns the widget nodes matching a CSS selector group, in
// document order. Matching is done by cascadia on the markup tree, so the
// full selector syntax of cascadia is available, including pseudo-classes
// our own selector package does not know.
func (doc *Document) Query(sel string) ([]*styledtree.StyNode, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", sel, err)
	}
	var result []*styledtree.StyNode
	for _, h := range m.MatchAll(doc.html) {
		if sn, ok := doc.nodes[h]; ok {
			result = append(result, sn)
		}
	}
	return result, nil
}

// Style runs the style pass over the widget tree, with the user-agent
// stylesheet followed by the document's stylesheet.
func (doc *Document) Style() error {
	if doc.Root == nil {
		return nil
	}
	sheet := cssom.UserAgentStylesheet()
	sheet.AppendRules(doc.Sheet)
	return styledtree.Style(doc.Root, sheet, nil)
}

func (doc *Document) collectStyles(h *html.Node, parseSheet SheetParser) error {
	count := 0
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.Data == "style" {
			count++
			sheet, err := parseSheet(textOf(n))
			if err != nil {
				return fmt.Errorf("style element #%d: %w", count, err)
			}
			doc.Sheet.AppendRules(sheet)
			return nil
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if err := walk(ch); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(h); err != nil {
		return err
	}
	tracer().Debugf("markup contains %d style elements with %d rules", count, len(doc.Sheet.Rules))
	return nil
}

func (doc *Document) build(h *html.Node) *styledtree.StyNode {
	sn := styledtree.NewNode(h.Data)
	doc.nodes[h] = sn
	for _, a := range h.Attr {
		switch a.Key {
		case "data-state":
			for _, state := range strings.Fields(a.Val) {
				sn.SetState(state, true)
			}
			continue
		case "disabled", "checked":
			sn.SetState(a.Key, true)
		}
		sn.SetAttr(a.Key, a.Val)
	}
	var text []string
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.TextNode:
			text = append(text, ch.Data)
		case html.ElementNode:
			if isWidget(ch) {
				sn.Add(doc.build(ch))
			}
		}
	}
	if t := trimText(strings.Join(text, "")); t != "" {
		sn.SetText(t)
	}
	return sn
}

func isWidget(h *html.Node) bool {
	switch h.Data {
	case "style", "script", "head":
		return false
	}
	return true
}

func elementChildren(h *html.Node) []*html.Node {
	var elems []*html.Node
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && isWidget(ch) {
			elems = append(elems, ch)
		}
	}
	return elems
}

func findElement(h *html.Node, name string) *html.Node {
	if h.Type == html.ElementNode && h.Data == name {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if found := findElement(ch, name); found != nil {
			return found
		}
	}
	return nil
}

func textOf(h *html.Node) string {
	var b strings.Builder
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			b.WriteString(ch.Data)
		}
	}
	return b.String()
}

// trimText trims every line and drops blank lines at start and end.
func trimText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
