package markdown

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/dgallion1/inkpost/internal/slug"
)

// anchoredLevel reports whether headings of this level get an id.
func anchoredLevel(level int) bool {
	return level >= 2 && level <= 4
}

// headingRenderer replaces goldmark's heading output. h2-h4 are written as
// one literal block <hN id="anchor">text</hN>; other levels render as usual.
type headingRenderer struct{}

func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)

	if anchoredLevel(n.Level) {
		if !entering {
			return ast.WalkContinue, nil
		}
		text := headingText(n, source)
		fmt.Fprintf(w, "<h%d id=\"%s\">%s</h%d>\n",
			n.Level, util.EscapeHTML([]byte(slug.Anchor(text))), util.EscapeHTML([]byte(text)), n.Level)
		return ast.WalkSkipChildren, nil
	}

	if !entering {
		fmt.Fprintf(w, "</h%d>\n", n.Level)
		return ast.WalkContinue, nil
	}
	fmt.Fprintf(w, "<h%d", n.Level)
	if n.Attributes() != nil {
		html.RenderAttributes(w, node, html.HeadingAttributeFilter)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}
