package main

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/cellstyle/dom/domdbg"
	"github.com/npillmayer/cellstyle/dom/markup"
	"github.com/npillmayer/cellstyle/dom/style"
	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/styledtree"
	"github.com/npillmayer/cellstyle/layout"
	"github.com/npillmayer/cellstyle/termstyle"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report problems in stylesheets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, name := range args {
				src, err := readFile(name)
				if err != nil {
					return err
				}
				diags := cssom.Check(src)
				for _, d := range diags {
					switch d.Severity {
					case cssom.Error:
						pterm.Error.Printfln("%s:%s", name, d)
					case cssom.Warning:
						pterm.Warning.Printfln("%s:%s", name, d)
					default:
						pterm.Info.Printfln("%s:%s", name, d)
					}
				}
				if cssom.HasErrors(diags) {
					failed = true
				} else if len(diags) == 0 {
					pterm.Success.Printfln("%s: ok", name)
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
}

func (a *app) applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE SELECTOR",
		Short: "Print the style a stylesheet computes for a selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFile(args[0])
			if err != nil {
				return err
			}
			author, err := a.parseSheet(src)
			if err != nil {
				return err
			}
			sheet := cssom.UserAgentStylesheet()
			sheet.AppendRules(author)
			st := sheet.Apply(args[1], style.Default())
			data := pterm.TableData{{"Group", "Property", "Value"}}
			for _, g := range style.Groups {
				for _, kv := range st.Properties(g, false) {
					data = append(data, []string{g, kv.Key, string(kv.Value)})
				}
			}
			if len(data) == 1 {
				pterm.Info.Printfln("no declarations apply to %q", args[1])
				return nil
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func (a *app) layoutCmd() *cobra.Command {
	paint := false
	cmd := &cobra.Command{
		Use:   "layout MARKUP",
		Short: "Style and lay out a markup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			doc, err := markup.ParseWith(f, a.parseSheet)
			if err != nil {
				return err
			}
			if doc.Root == nil {
				pterm.Info.Println("document is empty")
				return nil
			}
			if err := doc.Style(); err != nil {
				return err
			}
			viewport := image.Rect(0, 0, a.v.GetInt("width"), a.v.GetInt("height"))
			boxes := layout.Layout(doc.Root, viewport)
			pterm.Println(domdbg.DumpWith(doc.Root, func(n *styledtree.StyNode) string {
				if b, ok := boxes.Of(n); ok {
					return fmt.Sprintf("%v", b.Border)
				}
				return ""
			}))
			if paint {
				screen, err := render(boxes, viewport)
				if err != nil {
					return err
				}
				pterm.Println(screen)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&paint, "paint", false, "paint the boxes as plain text")
	return cmd
}

// render paints boxes onto an off-screen terminal and returns its
// characters, one line per row.
func render(boxes layout.Boxes, viewport image.Rectangle) (string, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return "", err
	}
	defer screen.Fini()
	screen.SetSize(viewport.Dx(), viewport.Dy())
	termstyle.Paint(screen, boxes)
	var b strings.Builder
	for y := 0; y < viewport.Dy(); y++ {
		var line strings.Builder
		for x := 0; x < viewport.Dx(); {
			r, _, _, width := screen.GetContent(x, y)
			line.WriteRune(r)
			x += max(1, width)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}
