// Package markdown renders post bodies to HTML, outlines and plain-text
// summaries. Rendering never fails the caller: errors degrade to empty or
// partial output and are logged.
package markdown

import (
	"bytes"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer is safe for concurrent use.
type Renderer struct {
	plain    goldmark.Markdown
	anchored goldmark.Markdown
	log      *slog.Logger
}

// New creates a Renderer. A nil logger discards warnings.
func New(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	// Post bodies are trusted; inline HTML passes through untouched.
	return &Renderer{
		plain: goldmark.New(
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		anchored: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
				renderer.WithNodeRenderers(util.Prioritized(&headingRenderer{}, 100)),
			),
		),
		log: log,
	}
}

// HTML renders body with id anchors on h2, h3 and h4.
func (r *Renderer) HTML(body string) string {
	var buf bytes.Buffer
	if err := r.anchored.Convert([]byte(body), &buf); err != nil {
		r.log.Warn("markdown render failed", "error", err)
	}
	return buf.String()
}

// plainHTML renders body without the heading rewrite.
func (r *Renderer) plainHTML(body string) (string, error) {
	var buf bytes.Buffer
	err := r.plain.Convert([]byte(body), &buf)
	return buf.String(), err
}

// headingText concatenates the text segments below n in document order.
// Inline markup inside the heading is dropped; only its text is kept.
// Backslash escapes and character references are decoded, except in raw
// segments such as code spans.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			value := t.Segment.Value(source)
			if !t.IsRaw() {
				value = decodeText(value)
			}
			buf.Write(value)
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func decodeText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
