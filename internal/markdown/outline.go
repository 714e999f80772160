package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/inkpost/internal/post"
	"github.com/dgallion1/inkpost/internal/slug"
)

// Outline lists every heading of body, all levels, in document order.
// Anchors follow the same rule as HTML.
func (r *Renderer) Outline(body string) []post.OutlineEntry {
	src := []byte(body)
	doc := r.plain.Parser().Parse(text.NewReader(src))

	var entries []post.OutlineEntry
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := headingText(h, src)
		entries = append(entries, post.OutlineEntry{
			Level:  h.Level,
			Text:   title,
			Anchor: slug.Anchor(title),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		r.log.Warn("outline walk failed", "error", err)
	}
	return entries
}
