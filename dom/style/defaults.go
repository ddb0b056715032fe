package style

// UserAgentCSS holds the user-agent defaults for widget elements, in
// stylesheet syntax. Author stylesheets are appended to it, so every author
// rule of equal specificity wins.
//
// Elements not listed here are block boxes.
const UserAgentCSS = `
head, script, style, template, meta, link, title { display: none; }
row, hbox, nav, menu { display: flex; flex-direction: row; }
column, vbox { display: flex; flex-direction: column; }
grid, table { display: grid; }
button { padding: 0 1; border-style: solid; }
input, textarea { border-style: solid; }
b, strong, th { font-weight: bold; }
i, em { font-style: italic; }
u, a { text-decoration: underline; }
dialog, popup, tooltip { position: absolute; z-index: 10; }
[hidden] { display: none; }
:disabled { opacity: 0.5; }
`

// DisplayForElement returns the default display mode for an element name,
// without consulting a stylesheet.
func DisplayForElement(element string) Display {
	switch element {
	case "head", "script", "style", "template", "meta", "link", "title":
		return DisplayNone
	case "row", "hbox", "nav", "menu", "column", "vbox":
		return DisplayFlex
	case "grid", "table":
		return DisplayGrid
	}
	tracer().Debugf("element %q will be set to display: block", element)
	return DisplayBlock
}
